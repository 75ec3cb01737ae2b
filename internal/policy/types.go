package policy

import "fmt"

// Kind identifies one intervention policy family
type Kind string

const (
	// KindDistancing covers contact-reduction interventions
	KindDistancing Kind = "distancing"
	// KindTesting covers case-detection interventions
	KindTesting Kind = "testing"
	// KindTracing covers contact-tracing interventions
	KindTracing Kind = "tracing"
	// KindQuarantine covers isolation interventions
	KindQuarantine Kind = "quarantine"
)

// Kinds lists all policy kinds in their canonical order. This order is
// load-bearing: the calibration schema and the theta codec both walk
// policies in exactly this sequence.
var Kinds = []Kind{KindDistancing, KindTesting, KindTracing, KindQuarantine}

// Record is a per-date policy object whose fields are independently
// settable by name
type Record interface {
	// Kind returns the policy family this record belongs to
	Kind() Kind
	// Field reads a named field value
	Field(name string) (float64, error)
	// SetField writes a named field value
	SetField(name string, value float64) error
	// clone returns a copy of the record
	clone() Record
}

// NewRecord creates a zero-valued record for the given policy kind
func NewRecord(kind Kind) (Record, error) {
	switch kind {
	case KindDistancing:
		return &Distancing{}, nil
	case KindTesting:
		return &Testing{}, nil
	case KindTracing:
		return &Tracing{}, nil
	case KindQuarantine:
		return &Quarantine{}, nil
	default:
		return nil, fmt.Errorf("unknown policy kind %q", kind)
	}
}

// Distancing reduces contact rates in different settings. Each field is a
// fractional reduction in [0, 1] applied to transmission.
type Distancing struct {
	Contact float64
	Work    float64
	School  float64
	Home    float64
}

func (d *Distancing) Kind() Kind { return KindDistancing }

func (d *Distancing) Field(name string) (float64, error) {
	switch name {
	case "contact":
		return d.Contact, nil
	case "work":
		return d.Work, nil
	case "school":
		return d.School, nil
	case "home":
		return d.Home, nil
	default:
		return 0, fmt.Errorf("distancing policy has no field %q", name)
	}
}

func (d *Distancing) SetField(name string, value float64) error {
	switch name {
	case "contact":
		d.Contact = value
	case "work":
		d.Work = value
	case "school":
		d.School = value
	case "home":
		d.Home = value
	default:
		return fmt.Errorf("distancing policy has no field %q", name)
	}
	return nil
}

func (d *Distancing) clone() Record {
	c := *d
	return &c
}

// Testing controls case detection. Rate is the per-day probability that an
// infectious individual is detected; Delay shifts reporting in days.
type Testing struct {
	Rate  float64
	Delay float64
}

func (t *Testing) Kind() Kind { return KindTesting }

func (t *Testing) Field(name string) (float64, error) {
	switch name {
	case "rate":
		return t.Rate, nil
	case "delay":
		return t.Delay, nil
	default:
		return 0, fmt.Errorf("testing policy has no field %q", name)
	}
}

func (t *Testing) SetField(name string, value float64) error {
	switch name {
	case "rate":
		t.Rate = value
	case "delay":
		t.Delay = value
	default:
		return fmt.Errorf("testing policy has no field %q", name)
	}
	return nil
}

func (t *Testing) clone() Record {
	c := *t
	return &c
}

// Tracing controls contact tracing. Prob is the probability a contact of a
// detected case is found and removed from the infectious pool.
type Tracing struct {
	Prob  float64
	Delay float64
}

func (t *Tracing) Kind() Kind { return KindTracing }

func (t *Tracing) Field(name string) (float64, error) {
	switch name {
	case "prob":
		return t.Prob, nil
	case "delay":
		return t.Delay, nil
	default:
		return 0, fmt.Errorf("tracing policy has no field %q", name)
	}
}

func (t *Tracing) SetField(name string, value float64) error {
	switch name {
	case "prob":
		t.Prob = value
	case "delay":
		t.Delay = value
	default:
		return fmt.Errorf("tracing policy has no field %q", name)
	}
	return nil
}

func (t *Tracing) clone() Record {
	c := *t
	return &c
}

// Quarantine controls isolation of detected cases. Compliance is the
// fraction of detected cases that stop transmitting; Duration is in days.
type Quarantine struct {
	Compliance float64
	Duration   float64
}

func (q *Quarantine) Kind() Kind { return KindQuarantine }

func (q *Quarantine) Field(name string) (float64, error) {
	switch name {
	case "compliance":
		return q.Compliance, nil
	case "duration":
		return q.Duration, nil
	default:
		return 0, fmt.Errorf("quarantine policy has no field %q", name)
	}
}

func (q *Quarantine) SetField(name string, value float64) error {
	switch name {
	case "compliance":
		q.Compliance = value
	case "duration":
		q.Duration = value
	default:
		return fmt.Errorf("quarantine policy has no field %q", name)
	}
	return nil
}

func (q *Quarantine) clone() Record {
	c := *q
	return &c
}
