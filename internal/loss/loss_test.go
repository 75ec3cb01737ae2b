package loss

import (
	"math"
	"testing"
)

func TestRMSE(t *testing.T) {
	tests := []struct {
		name      string
		observed  []float64
		simulated []float64
		expected  float64
	}{
		{"Reference case", []float64{2, 4, 6}, []float64{1, 4, 7}, math.Sqrt(2.0 / 3.0)},
		{"Identical series", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Single day", []float64{5}, []float64{2}, 3},
		{"Empty series", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RMSE(tt.observed, tt.simulated)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RMSE = %f, expected %f", result, tt.expected)
			}
		})
	}
}

func TestPoissonLogLikelihood(t *testing.T) {
	observed := []float64{3, 0, 5}
	simulated := []float64{2.5, 1.0, 4.0}

	want := 0.0
	want += 3*math.Log(2.5) - 2.5
	want += 0*math.Log(1.0) - 1.0
	want += 5*math.Log(4.0) - 4.0
	want /= 3

	got := PoissonLogLikelihood(observed, simulated)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("PoissonLogLikelihood = %f, expected %f", got, want)
	}
}

func TestPoissonLogLikelihoodSkipsNearZeroRates(t *testing.T) {
	// Day two's rate is below the cutoff and must contribute zero, not -Inf
	observed := []float64{3, 7}
	simulated := []float64{2.0, 0.001}

	want := (3*math.Log(2.0) - 2.0) / 2

	got := PoissonLogLikelihood(observed, simulated)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("near-zero rate produced %f", got)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("PoissonLogLikelihood = %f, expected %f", got, want)
	}
}

func TestPoissonLogLikelihoodPrefersBetterFit(t *testing.T) {
	observed := []float64{10, 20, 30}
	good := []float64{11, 19, 31}
	bad := []float64{1, 2, 3}

	if PoissonLogLikelihood(observed, good) <= PoissonLogLikelihood(observed, bad) {
		t.Error("closer simulation did not score a higher likelihood")
	}
}

func TestNegPoissonLogLikelihood(t *testing.T) {
	observed := []float64{4, 6}
	simulated := []float64{3, 7}

	if NegPoissonLogLikelihood(observed, simulated) != -PoissonLogLikelihood(observed, simulated) {
		t.Error("NegPoissonLogLikelihood is not the negation of the likelihood")
	}
}
