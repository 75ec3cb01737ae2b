// Package theta converts between the flat numeric vector searched by the
// solver and the simulator's structured state. Encode and Decode share one
// traversal of the schema's canonical entry order; if the two ever walked
// different orders, values would be silently assigned to the wrong targets.
package theta

import (
	"fmt"

	"github.com/epifit/calibration-core/internal/schema"
	"github.com/epifit/calibration-core/internal/sim"
)

// Encode flattens the schema-covered simulator state into a theta vector.
// Decode is the operation used during calibration; Encode exists to recover
// a baseline vector from current state.
func Encode(s *schema.Schema, m *sim.Model) ([]float64, error) {
	entries := s.Entries()
	vec := make([]float64, 0, len(entries))

	for _, e := range entries {
		switch e.Type {
		case schema.EntryScalar:
			vec = append(vec, m.Param(e.Name))
		case schema.EntryPolicyField:
			rec, err := m.Policies.Ensure(e.Kind, e.Date)
			if err != nil {
				return nil, err
			}
			v, err := rec.Field(e.Name)
			if err != nil {
				return nil, fmt.Errorf("encode %s policy at %s: %w", e.Kind, e.Date.Format("2006-01-02"), err)
			}
			vec = append(vec, v)
		}
	}

	return vec, nil
}

// Decode writes a theta vector back into the simulator's parameter map and
// policy records, mutating the model in place
func Decode(vec []float64, s *schema.Schema, m *sim.Model) error {
	entries := s.Entries()
	if len(vec) != len(entries) {
		return fmt.Errorf("theta has %d values but schema has %d dimensions", len(vec), len(entries))
	}

	for i, e := range entries {
		switch e.Type {
		case schema.EntryScalar:
			m.Params[e.Name] = vec[i]
		case schema.EntryPolicyField:
			rec, err := m.Policies.Ensure(e.Kind, e.Date)
			if err != nil {
				return err
			}
			if err := rec.SetField(e.Name, vec[i]); err != nil {
				return fmt.Errorf("decode %s policy at %s: %w", e.Kind, e.Date.Format("2006-01-02"), err)
			}
		}
	}

	return nil
}
