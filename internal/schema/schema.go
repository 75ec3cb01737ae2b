// Package schema builds the calibration schema: the ordered declaration of
// which scalar parameters and date-indexed policy fields are free variables.
// The flattened entry order defined here is the single source of truth for
// the theta vector layout; the codec walks it on both encode and decode.
package schema

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/epifit/calibration-core/internal/policy"
	"github.com/epifit/calibration-core/pkg/config"
	"github.com/epifit/calibration-core/pkg/utils"
)

// DateFields names the free fields of one scheduled policy change
type DateFields struct {
	Date   time.Time
	Fields []string
}

// Schema is the ordered calibration schema. Section order is fixed: scalar
// params first, then the policy kinds in policy.Kinds order; within a kind
// dates ascend; within a date fields keep declaration order.
type Schema struct {
	Params   []string
	Policies map[policy.Kind][]DateFields
}

// EntryType distinguishes the two kinds of free dimensions
type EntryType int

const (
	// EntryScalar is a free scalar simulator parameter
	EntryScalar EntryType = iota
	// EntryPolicyField is a free field of a dated policy record
	EntryPolicyField
)

// Entry is one free dimension in canonical order
type Entry struct {
	Type EntryType
	Name string
	Kind policy.Kind // policy entries only
	Date time.Time   // policy entries only
}

// Build validates the unknowns declaration into a schema and returns it
// together with the total free-dimension count
func Build(unknowns *config.Unknowns) (*Schema, int, error) {
	s := &Schema{
		Policies: make(map[policy.Kind][]DateFields),
	}

	params, err := namesFromNode(&unknowns.Params, "params")
	if err != nil {
		return nil, 0, err
	}
	s.Params = params
	count := len(params)

	sections := []struct {
		kind    policy.Kind
		entries map[string]yaml.Node
	}{
		{policy.KindDistancing, unknowns.DistancingPolicy},
		{policy.KindTesting, unknowns.TestingPolicy},
		{policy.KindTracing, unknowns.TracingPolicy},
		{policy.KindQuarantine, unknowns.QuarantinePolicy},
	}

	for _, section := range sections {
		if len(section.entries) == 0 {
			continue
		}

		dated := make([]DateFields, 0, len(section.entries))
		for dateKey, node := range section.entries {
			date, err := utils.ParseDate(dateKey)
			if err != nil {
				return nil, 0, fmt.Errorf("unknown %s_policy: %w", section.kind, err)
			}
			fields, err := namesFromNode(&node, fmt.Sprintf("%s_policy %s", section.kind, dateKey))
			if err != nil {
				return nil, 0, err
			}
			if len(fields) == 0 {
				continue
			}
			dated = append(dated, DateFields{Date: date, Fields: fields})
			count += len(fields)
		}

		// Calibration would work with any fixed order, but downstream
		// tooling assumes ascending dates for inspection.
		sort.Slice(dated, func(i, j int) bool {
			return dated[i].Date.Before(dated[j].Date)
		})
		s.Policies[section.kind] = dated
	}

	return s, count, nil
}

// Entries flattens the schema into its canonical dimension order
func (s *Schema) Entries() []Entry {
	entries := make([]Entry, 0, s.Dim())
	for _, name := range s.Params {
		entries = append(entries, Entry{Type: EntryScalar, Name: name})
	}
	for _, kind := range policy.Kinds {
		for _, df := range s.Policies[kind] {
			for _, field := range df.Fields {
				entries = append(entries, Entry{
					Type: EntryPolicyField,
					Name: field,
					Kind: kind,
					Date: df.Date,
				})
			}
		}
	}
	return entries
}

// Dim returns the total number of free dimensions
func (s *Schema) Dim() int {
	count := len(s.Params)
	for _, kind := range policy.Kinds {
		for _, df := range s.Policies[kind] {
			count += len(df.Fields)
		}
	}
	return count
}

// namesFromNode accepts a single name or a list of names. Any other YAML
// shape is a configuration error, reported before any simulation runs.
func namesFromNode(node *yaml.Node, section string) ([]string, error) {
	switch node.Kind {
	case 0:
		// Absent section
		return nil, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		if node.Tag != "!!str" {
			return nil, fmt.Errorf("unknown %s must be a single name or list of names, got %s", section, node.Tag)
		}
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		names := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return nil, fmt.Errorf("unknown %s must be a single name or list of names, got %s in list", section, item.Tag)
			}
			names = append(names, item.Value)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("unknown %s must be a single name or list of names", section)
	}
}
