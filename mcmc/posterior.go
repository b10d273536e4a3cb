package mcmc

import (
	"errors"
	"fmt"
	"math"

	"bitbucket.org/Davydov/gomh/dist"
)

// LikelihoodSD is the fixed standard deviation of the likelihood.
const LikelihoodSD = 1.0

// ModelParameters are the prior parameters of the normal model.
type ModelParameters struct {
	PriorMean float64
	PriorSD   float64
}

// Validate checks that the prior is well defined.
func (mp ModelParameters) Validate() error {
	if math.IsNaN(mp.PriorMean) || math.IsInf(mp.PriorMean, 0) {
		return errors.New("prior mean should be finite")
	}
	if !(mp.PriorSD > 0) || math.IsInf(mp.PriorSD, 0) {
		return fmt.Errorf("prior sd should be finite and > 0, got %v", mp.PriorSD)
	}
	return nil
}

// LogPrior returns log density of the prior at theta.
func (mp ModelParameters) LogPrior(theta float64) float64 {
	return dist.NormLogPDF(theta, mp.PriorMean, mp.PriorSD)
}

// LogLikelihood returns log likelihood of the observations x given
// the mean theta.
func LogLikelihood(x []float64, theta float64) (res float64) {
	for _, v := range x {
		res += dist.NormLogPDF(v, theta, LikelihoodSD)
	}
	return
}

// LogPosterior returns unnormalized log posterior density of theta
// given the observations x. For empty x it is exactly the log prior.
func LogPosterior(x []float64, theta float64, mp ModelParameters) float64 {
	return LogLikelihood(x, theta) + mp.LogPrior(theta)
}

// ValidateData checks that all the observations are finite.
func ValidateData(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("observation %d is not finite: %v", i, v)
		}
	}
	return nil
}

// Posterior is the log posterior bound to a data set.
type Posterior struct {
	x []float64
	ModelParameters
}

// NewPosterior creates a new Posterior. Observations are copied.
func NewPosterior(x []float64, mp ModelParameters) (*Posterior, error) {
	if err := mp.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateData(x); err != nil {
		return nil, err
	}
	data := make([]float64, len(x))
	copy(data, x)
	return &Posterior{x: data, ModelParameters: mp}, nil
}

// Data returns the observations.
func (p *Posterior) Data() []float64 {
	return p.x
}

// LogPosterior returns log posterior density at theta.
func (p *Posterior) LogPosterior(theta float64) float64 {
	return LogPosterior(p.x, theta, p.ModelParameters)
}
