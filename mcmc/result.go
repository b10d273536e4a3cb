package mcmc

import (
	"errors"
	"time"

	"bitbucket.org/Davydov/gomh/checkpoint"
	"bitbucket.org/Davydov/gomh/simulate"
)

// Result is a finished chain.
type Result struct {
	// Chain is the full chain in the iteration order, burn-in
	// included.
	Chain      []float64
	BurnIn     int
	Accepted   int
	Iterations int
	Time       time.Duration
}

// ResultFromCheckpoint restores a finished chain from checkpoint.
func ResultFromCheckpoint(data *checkpoint.CheckpointData) (*Result, error) {
	if data == nil || !data.Final {
		return nil, errors.New("checkpoint is not final")
	}
	if len(data.Chain) != data.Iterations || data.Iter != data.Iterations {
		return nil, errors.New("checkpoint chain length mismatch")
	}
	return &Result{
		Chain:      data.Chain,
		BurnIn:     data.BurnIn,
		Accepted:   data.Accepted,
		Iterations: data.Iterations,
		Time:       time.Duration(data.Seconds * float64(time.Second)),
	}, nil
}

// Samples returns the chain after the burn-in. It is empty if the
// burn-in is not shorter than the chain.
func (r *Result) Samples() []float64 {
	if r.BurnIn >= len(r.Chain) {
		return []float64{}
	}
	return r.Chain[r.BurnIn:]
}

// AcceptanceRate returns the fraction of accepted proposals over all
// the iterations, including the burn-in.
func (r *Result) AcceptanceRate() float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Iterations)
}

// MeanSD returns mean and standard deviation of the samples. Both
// are NaN for an empty sample.
func (r *Result) MeanSD() (mean, sd float64) {
	return simulate.MeanSD(r.Samples())
}

// EffectiveSampleSize returns the effective sample size of the
// samples after the burn-in.
func (r *Result) EffectiveSampleSize() int {
	return EffectiveSampleSize(r.Samples())
}
