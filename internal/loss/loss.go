// Package loss provides the distance and likelihood functions used to
// compare observed and simulated daily case series.
package loss

import "math"

// minRate is the smallest simulated rate allowed into the logarithm;
// smaller values contribute zero instead of a singularity.
const minRate = 0.01

// RMSE returns the root mean squared error between two equal-length series
func RMSE(observed, simulated []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sum := 0.0
	for i := range observed {
		diff := observed[i] - simulated[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(observed)))
}

// PoissonLogLikelihood treats each simulated value as a Poisson rate and
// returns the mean per-day log likelihood of the observations (up to the
// observation-only constant term). Higher is better. Days where the
// simulated rate is below 0.01 contribute zero.
func PoissonLogLikelihood(observed, simulated []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sum := 0.0
	for i := range observed {
		rate := simulated[i]
		if rate < minRate {
			continue
		}
		sum += observed[i]*math.Log(rate) - rate
	}
	return sum / float64(len(observed))
}

// NegPoissonLogLikelihood negates PoissonLogLikelihood so it can be used
// where a distance (lower is better) is required
func NegPoissonLogLikelihood(observed, simulated []float64) float64 {
	return -PoissonLogLikelihood(observed, simulated)
}
