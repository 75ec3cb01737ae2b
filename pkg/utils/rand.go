package utils

import (
	"math"
	"math/rand"
	"time"
)

// RandSource is a seedable random number generator for the stochastic
// simulation draws. It is not safe for concurrent use; each evaluation
// context owns its own source.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a new random source with the given seed.
// A zero seed is replaced with the current time.
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandSource) Intn(n int) int {
	return r.rng.Intn(n)
}

// Int63 returns a non-negative random int64
func (r *RandSource) Int63() int64 {
	return r.rng.Int63()
}

// NormFloat64 returns a normally distributed random number with mean and stddev
func (r *RandSource) NormFloat64(mean, stddev float64) float64 {
	return r.rng.NormFloat64()*stddev + mean
}

// Poisson returns a Poisson-distributed random integer with rate lambda.
// Small rates use Knuth's algorithm; large rates fall back to the normal
// approximation, since exp(-lambda) underflows to zero near lambda = 745
// and the product loop would stall around that count regardless of rate.
func (r *RandSource) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda > 500 {
		draw := math.Round(r.NormFloat64(lambda, math.Sqrt(lambda)))
		if draw < 0 {
			return 0
		}
		return int(draw)
	}

	L := math.Exp(-lambda)
	k := 0
	p := 1.0

	for p > L {
		k++
		p *= r.rng.Float64()
	}

	return k - 1
}

// Binomial returns the number of successes out of n independent trials
// each succeeding with probability p
func (r *RandSource) Binomial(n int, p float64) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}

	successes := 0
	for i := 0; i < n; i++ {
		if r.rng.Float64() < p {
			successes++
		}
	}
	return successes
}
