package policy

import (
	"sort"
	"time"
)

// Change is one scheduled policy record taking effect at a date
type Change struct {
	Date   time.Time
	Record Record
}

// Set holds the scheduled policy changes for all kinds, each kind's
// changes sorted ascending by date
type Set struct {
	changes map[Kind][]*Change
}

// NewSet creates an empty policy set
func NewSet() *Set {
	return &Set{changes: make(map[Kind][]*Change)}
}

// Ensure returns the record scheduled for (kind, date), creating a zero
// record at that date if none exists yet. Insertion keeps dates sorted.
func (s *Set) Ensure(kind Kind, date time.Time) (Record, error) {
	for _, c := range s.changes[kind] {
		if c.Date.Equal(date) {
			return c.Record, nil
		}
	}

	rec, err := NewRecord(kind)
	if err != nil {
		return nil, err
	}

	s.changes[kind] = append(s.changes[kind], &Change{Date: date, Record: rec})
	sort.Slice(s.changes[kind], func(i, j int) bool {
		return s.changes[kind][i].Date.Before(s.changes[kind][j].Date)
	})
	return rec, nil
}

// At returns the record scheduled exactly at (kind, date)
func (s *Set) At(kind Kind, date time.Time) (Record, bool) {
	for _, c := range s.changes[kind] {
		if c.Date.Equal(date) {
			return c.Record, true
		}
	}
	return nil, false
}

// ActiveAt returns the latest record of the kind whose date is at or
// before the given date. A policy stays in force until superseded.
func (s *Set) ActiveAt(kind Kind, date time.Time) (Record, bool) {
	var active Record
	for _, c := range s.changes[kind] {
		if c.Date.After(date) {
			break
		}
		active = c.Record
	}
	return active, active != nil
}

// Changes returns the scheduled changes for a kind, dates ascending
func (s *Set) Changes(kind Kind) []*Change {
	return s.changes[kind]
}

// Clone returns a deep copy of the set
func (s *Set) Clone() *Set {
	cloned := NewSet()
	for kind, changes := range s.changes {
		list := make([]*Change, len(changes))
		for i, c := range changes {
			list[i] = &Change{Date: c.Date, Record: c.Record.clone()}
		}
		cloned.changes[kind] = list
	}
	return cloned
}
