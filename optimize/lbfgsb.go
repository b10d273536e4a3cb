// Package optimize finds the posterior mode of the normal model.
package optimize

import (
	"errors"
	"math"

	"github.com/op/go-logging"

	lbfgsb "github.com/idavydov/go-lbfgsb"

	"bitbucket.org/Davydov/gomh/mcmc"
)

// log is the global logging variable.
var log = logging.MustGetLogger("optimize")

// LBFGSB maximizes the log posterior using L-BFGS-B.
type LBFGSB struct {
	*mcmc.Posterior
	dH    float64
	grad  []float64
	calls int // log posterior calls
	maxL  float64
	maxX  float64
}

// NewLBFGSB creates a new optimizer for the posterior.
func NewLBFGSB(post *mcmc.Posterior) (l *LBFGSB) {
	l = &LBFGSB{
		Posterior: post,
		dH:        1e-6,
		maxL:      math.Inf(-1),
	}
	return
}

// EvaluateFunction returns minus log posterior.
func (l *LBFGSB) EvaluateFunction(x []float64) float64 {
	L := l.LogPosterior(x[0])
	l.calls++
	if L > l.maxL {
		l.maxL = L
		l.maxX = x[0]
	}
	return -L
}

// EvaluateGradient computes gradient of minus log posterior using
// central differences.
func (l *LBFGSB) EvaluateGradient(x []float64) (grad []float64) {
	if l.grad == nil {
		l.grad = make([]float64, len(x))
	}
	grad = l.grad
	l1 := -l.LogPosterior(x[0] - l.dH)
	l2 := -l.LogPosterior(x[0] + l.dH)
	l.calls += 2
	grad[0] = (l2 - l1) / 2 / l.dH
	return
}

// Run starts the optimization from start and returns the mode and
// the log posterior at the mode.
func (l *LBFGSB) Run(start float64) (mode, lnP float64, err error) {
	opt := new(lbfgsb.Lbfgsb)
	opt.SetApproximationSize(10)
	opt.SetFTolerance(1e-12)
	opt.SetGTolerance(1e-9)

	res, exitStatus := opt.Minimize(l, []float64{start})
	log.Debug("Exit status: ", exitStatus)

	mode, lnP = l.maxX, l.maxL
	if len(res.X) == 1 {
		if v := l.LogPosterior(res.X[0]); v >= lnP {
			mode, lnP = res.X[0], v
		}
	}
	if math.IsNaN(mode) || math.IsInf(mode, 0) || math.IsInf(lnP, -1) {
		return mode, lnP, errors.New("optimization diverged")
	}
	log.Infof("Posterior mode: %v (lnP=%v, %d calls)", mode, lnP, l.calls)
	return mode, lnP, nil
}

// MAP returns the maximum a posteriori estimate of the normal mean
// given the observations x.
func MAP(x []float64, mp mcmc.ModelParameters, start float64) (float64, error) {
	post, err := mcmc.NewPosterior(x, mp)
	if err != nil {
		return math.NaN(), err
	}
	mode, _, err := NewLBFGSB(post).Run(start)
	return mode, err
}
