package mcmc

import (
	"fmt"
	"math"
	"math/rand"
)

// Proposal kinds.
const (
	NormalKind  = "normal"
	UniformKind = "uniform"
)

// Settings are the sampler settings.
type Settings struct {
	// Iterations is the total number of iterations including burn-in.
	Iterations int
	// BurnIn is the number of first samples to discard.
	BurnIn int
	// ProposalSD is the standard deviation of the random walk.
	ProposalSD float64
	// ProposalKind is either NormalKind or UniformKind. The uniform
	// proposal width is chosen to have the same ProposalSD.
	ProposalKind string

	ModelParameters
}

// NewSettings creates new settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Iterations:   10000,
		BurnIn:       1000,
		ProposalSD:   0.2,
		ProposalKind: NormalKind,
		ModelParameters: ModelParameters{
			PriorMean: 0,
			PriorSD:   1,
		},
	}
}

// Validate checks the settings. BurnIn >= Iterations is valid and
// results in an empty sample.
func (s *Settings) Validate() error {
	if s.Iterations <= 0 {
		return fmt.Errorf("number of iterations should be > 0, got %d", s.Iterations)
	}
	if s.BurnIn < 0 {
		return fmt.Errorf("burn-in should be >= 0, got %d", s.BurnIn)
	}
	if !(s.ProposalSD >= 0) || math.IsInf(s.ProposalSD, 0) {
		return fmt.Errorf("proposal sd should be finite and >= 0, got %v", s.ProposalSD)
	}
	switch s.ProposalKind {
	case NormalKind, UniformKind, "":
	default:
		return fmt.Errorf("unknown proposal: %s", s.ProposalKind)
	}
	return s.ModelParameters.Validate()
}

// proposal creates the proposal function.
func (s *Settings) proposal(rng *rand.Rand) (Proposal, error) {
	if s.ProposalKind == UniformKind {
		return UniformProposal(rng, s.ProposalSD*math.Sqrt(12))
	}
	return NormalProposal(rng, s.ProposalSD)
}
