package theta

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/epifit/calibration-core/internal/policy"
	"github.com/epifit/calibration-core/internal/schema"
	"github.com/epifit/calibration-core/internal/sim"
	"github.com/epifit/calibration-core/pkg/config"
	"github.com/epifit/calibration-core/pkg/utils"
)

func buildSchema(t *testing.T, yamlText string) (*schema.Schema, int) {
	t.Helper()
	var u config.Unknowns
	if err := yaml.Unmarshal([]byte(yamlText), &u); err != nil {
		t.Fatalf("failed to parse unknowns: %v", err)
	}
	s, dim, err := schema.Build(&u)
	if err != nil {
		t.Fatalf("schema.Build failed: %v", err)
	}
	return s, dim
}

func TestDecodeEndToEnd(t *testing.T) {
	s, dim := buildSchema(t, `
params: [beta]
distancing_policy:
  2020-03-01: [contact]
`)
	if dim != 2 {
		t.Fatalf("dim = %d, expected 2", dim)
	}

	m := sim.NewModel(map[string]float64{"population": 1000}, 1)
	if err := Decode([]float64{0.03, 0.5}, s, m); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if m.Param("beta") != 0.03 {
		t.Errorf("beta = %f, expected 0.03", m.Param("beta"))
	}
	date, _ := utils.ParseDate("2020-03-01")
	rec, ok := m.Policies.At(policy.KindDistancing, date)
	if !ok {
		t.Fatal("decode did not create the dated policy record")
	}
	if v, _ := rec.Field("contact"); v != 0.5 {
		t.Errorf("contact = %f, expected 0.5", v)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	s, _ := buildSchema(t, "params: [beta, gamma]")
	m := sim.NewModel(nil, 1)

	if err := Decode([]float64{0.1}, s, m); err == nil {
		t.Fatal("expected error for short theta")
	}
	if err := Decode([]float64{0.1, 0.2, 0.3}, s, m); err == nil {
		t.Fatal("expected error for long theta")
	}
}

func TestDecodeUnknownPolicyField(t *testing.T) {
	s, _ := buildSchema(t, `
testing_policy:
  2020-03-01: turbo
`)
	m := sim.NewModel(nil, 1)
	if err := Decode([]float64{0.1}, s, m); err == nil {
		t.Fatal("expected error for unknown policy field")
	}
}

func TestRoundTrip(t *testing.T) {
	s, dim := buildSchema(t, `
params: [beta, detection_rate]
distancing_policy:
  2020-03-15: [contact, work]
  2020-04-01: contact
testing_policy:
  2020-03-20: rate
quarantine_policy:
  2020-03-25: compliance
`)

	m := sim.NewModel(map[string]float64{"population": 1000}, 1)
	original := []float64{0.42, 0.07, 0.5, 0.3, 0.65, 0.25, 0.8}
	if len(original) != dim {
		t.Fatalf("test vector has %d values for %d dimensions", len(original), dim)
	}

	if err := Decode(original, s, m); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	encoded, err := Encode(s, m)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if len(encoded) != dim {
		t.Fatalf("encoded length = %d, expected %d", len(encoded), dim)
	}
	for i := range original {
		if encoded[i] != original[i] {
			t.Errorf("round trip mismatch at dimension %d: %f != %f", i, encoded[i], original[i])
		}
	}

	// Decoding the encoded vector into a second model reproduces the state
	m2 := sim.NewModel(map[string]float64{"population": 1000}, 2)
	if err := Decode(encoded, s, m2); err != nil {
		t.Fatalf("Decode into second model failed: %v", err)
	}
	again, err := Encode(s, m2)
	if err != nil {
		t.Fatalf("Encode of second model failed: %v", err)
	}
	for i := range original {
		if again[i] != original[i] {
			t.Errorf("second round trip mismatch at dimension %d", i)
		}
	}
}

func TestEncodeZeroBaseline(t *testing.T) {
	s, dim := buildSchema(t, `
params: beta
tracing_policy:
  2020-03-01: prob
`)

	m := sim.NewModel(nil, 1)
	vec, err := Encode(s, m)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(vec) != dim {
		t.Fatalf("len = %d, expected %d", len(vec), dim)
	}
	for i, v := range vec {
		if v != 0 {
			t.Errorf("baseline dimension %d = %f, expected 0", i, v)
		}
	}
}
