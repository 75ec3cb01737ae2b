package abc

import (
	"math"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Prior is the distribution candidate theta vectors are drawn from. A
// proposal falling outside the prior's support is rejected without being
// simulated.
type Prior interface {
	// Dim returns the dimensionality of the parameter space
	Dim() int
	// Sample draws one theta vector
	Sample() []float64
	// LogProb returns the log density of a theta vector, -Inf outside
	// the support
	LogProb(theta []float64) float64
}

// UniformPrior is an independent Uniform(min, max) prior on every axis
type UniformPrior struct {
	dists []distuv.Uniform
}

// NewUniformPrior creates a uniform prior over dim axes sharing one seeded
// random source
func NewUniformPrior(min, max float64, dim int, seed uint64) *UniformPrior {
	src := xrand.NewSource(seed)
	dists := make([]distuv.Uniform, dim)
	for i := range dists {
		dists[i] = distuv.Uniform{Min: min, Max: max, Src: src}
	}
	return &UniformPrior{dists: dists}
}

// Dim returns the dimensionality of the parameter space
func (p *UniformPrior) Dim() int {
	return len(p.dists)
}

// Sample draws one theta vector
func (p *UniformPrior) Sample() []float64 {
	theta := make([]float64, len(p.dists))
	for i := range p.dists {
		theta[i] = p.dists[i].Rand()
	}
	return theta
}

// LogProb returns the joint log density, -Inf when any coordinate is
// outside its axis support
func (p *UniformPrior) LogProb(theta []float64) float64 {
	if len(theta) != len(p.dists) {
		return math.Inf(-1)
	}
	sum := 0.0
	for i := range p.dists {
		lp := p.dists[i].LogProb(theta[i])
		if math.IsInf(lp, -1) {
			return lp
		}
		sum += lp
	}
	return sum
}
