package mcmc

import (
	"fmt"
	"math"
	"math/rand"
)

// Proposal returns a new candidate value given the current one.
type Proposal func(float64) float64

// Rand returns a random value in the range [0, 1], including 1.
func Rand(rng *rand.Rand) float64 {
	// 1.0 is not included and we would like to be symmetric
	r := float64(1)
	for r > 0.999 {
		r = rng.Float64()
	}
	return r / 0.999
}

// NormalProposal returns normal random walk proposal function. Zero sd
// always proposes the current value.
func NormalProposal(rng *rand.Rand, sd float64) (Proposal, error) {
	if !(sd >= 0) || math.IsInf(sd, 0) {
		return nil, fmt.Errorf("proposal sd should be finite and >= 0, got %v", sd)
	}
	return func(x float64) float64 {
		return x + rng.NormFloat64()*sd
	}, nil
}

// UniformProposal returns uniform random walk proposal function on
// [x-width/2, x+width/2].
func UniformProposal(rng *rand.Rand, width float64) (Proposal, error) {
	if !(width >= 0) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("proposal width should be finite and >= 0, got %v", width)
	}
	return func(x float64) float64 {
		return x + Rand(rng)*width - width/2
	}, nil
}
