// Package mcmc implements a random walk Metropolis-Hastings sampler
// for the mean of a normal distribution with a normal prior, and the
// effective sample size estimation for the resulting chains.
package mcmc

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gomh/checkpoint"
)

// log is the global logging variable.
var log = logging.MustGetLogger("mcmc")

// MH is a Metropolis-Hastings sampler. It is not safe for concurrent
// use; independent chains should use independent samplers and
// random generators.
type MH struct {
	*Posterior
	settings Settings
	rng      *rand.Rand
	propose  Proposal

	theta    float64
	l        float64
	i        int
	accepted int
	chain    []float64

	// RepPeriod is how often the state is reported.
	RepPeriod int
	// AccPeriod is how often the acceptance rate is reported.
	AccPeriod int
	// Quiet disables the trajectory output.
	Quiet bool

	out   io.Writer
	cio   *checkpoint.CheckpointIO
	start time.Time
}

// NewMH creates a new MH sampler starting from thetaInit. All the
// settings are checked before the chain is created.
func NewMH(rng *rand.Rand, x []float64, thetaInit float64, s *Settings) (*MH, error) {
	if rng == nil {
		return nil, errors.New("random generator is required")
	}
	if s == nil {
		return nil, errors.New("settings are required")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(thetaInit) || math.IsInf(thetaInit, 0) {
		return nil, fmt.Errorf("initial value should be finite, got %v", thetaInit)
	}
	post, err := NewPosterior(x, s.ModelParameters)
	if err != nil {
		return nil, err
	}
	propose, err := s.proposal(rng)
	if err != nil {
		return nil, err
	}
	m := &MH{
		Posterior: post,
		settings:  *s,
		rng:       rng,
		propose:   propose,
		theta:     thetaInit,
		chain:     make([]float64, 0, s.Iterations),
		RepPeriod: 10,
		AccPeriod: 10,
		start:     time.Now(),
	}
	m.l = m.LogPosterior(thetaInit)
	return m, nil
}

// SetOutput sets the trajectory output.
func (m *MH) SetOutput(w io.Writer) {
	m.out = w
}

// SetCheckpointIO enables periodic checkpoints.
func (m *MH) SetCheckpointIO(cio *checkpoint.CheckpointIO) {
	m.cio = cio
}

// Theta returns the current state of the chain.
func (m *MH) Theta() float64 {
	return m.theta
}

// Done returns true if all the iterations were performed.
func (m *MH) Done() bool {
	return m.i >= m.settings.Iterations
}

// acceptanceProbability returns min(1, exp(logRatio)) without
// overflowing. NaN log ratio is never accepted.
func acceptanceProbability(logRatio float64) float64 {
	switch {
	case math.IsNaN(logRatio):
		return 0
	case logRatio >= 0:
		return 1
	}
	return math.Exp(logRatio)
}

// Next performs one iteration and returns the recorded value and
// whether the proposal was accepted. ok is false if the chain is
// already complete.
func (m *MH) Next() (theta float64, accepted bool, ok bool) {
	if m.Done() {
		return m.theta, false, false
	}
	proposal := m.propose(m.theta)
	newL := m.LogPosterior(proposal)
	a := acceptanceProbability(newL - m.l)
	if m.rng.Float64() < a {
		m.theta = proposal
		m.l = newL
		m.accepted++
		accepted = true
	}
	m.chain = append(m.chain, m.theta)
	m.i++
	return m.theta, accepted, true
}

// Run performs all the remaining iterations and returns the result.
func (m *MH) Run() *Result {
	m.PrintHeader()
	periodAccepted := 0
	for !m.Done() {
		if m.i > 0 && m.AccPeriod > 0 && m.i%m.AccPeriod == 0 {
			log.Infof("Acceptance rate %.2f%%", 100*float64(periodAccepted)/float64(m.AccPeriod))
			periodAccepted = 0
		}
		if m.i == m.settings.BurnIn && m.i > 0 {
			log.Info("Burn-in finished")
		}

		_, accepted, _ := m.Next()
		if accepted {
			periodAccepted++
		}

		if m.RepPeriod > 0 && m.i%m.RepPeriod == 0 {
			log.Debugf("%d: lnP=%f", m.i, m.l)
			m.PrintLine()
		}

		if m.cio != nil && m.cio.Old() {
			m.SaveCheckpoint(false)
		}
	}
	log.Info("Finished MCMC")

	if m.cio != nil {
		m.SaveCheckpoint(true)
	}

	return m.Result()
}

// Result returns the result for the iterations performed so far.
func (m *MH) Result() *Result {
	chain := make([]float64, len(m.chain))
	copy(chain, m.chain)
	return &Result{
		Chain:      chain,
		BurnIn:     m.settings.BurnIn,
		Accepted:   m.accepted,
		Iterations: m.i,
		Time:       time.Since(m.start),
	}
}

// SaveCheckpoint saves the chain state. The full chain is only
// stored if final is true.
func (m *MH) SaveCheckpoint(final bool) {
	data := &checkpoint.CheckpointData{
		Theta:        m.theta,
		LogPosterior: m.l,
		Iter:         m.i,
		Accepted:     m.accepted,
		Iterations:   m.settings.Iterations,
		BurnIn:       m.settings.BurnIn,
		Final:        final,
		Seconds:      time.Since(m.start).Seconds(),
	}
	if final {
		data.Chain = m.chain
	}
	log.Debugf("Saving checkpoint %s at iteration %d", m.cio.Key(), m.i)
	// errors are logged by checkpoint
	_ = m.cio.Save(data)
}

// PrintHeader prints the trajectory header.
func (m *MH) PrintHeader() {
	if !m.Quiet && m.out != nil {
		fmt.Fprintf(m.out, "iteration\tlnP\ttheta\n")
	}
}

// PrintLine prints the current state to the trajectory.
func (m *MH) PrintLine() {
	if !m.Quiet && m.out != nil {
		fmt.Fprintf(m.out, "%d\t%f\t%f\n", m.i, m.l, m.theta)
	}
}

// MetropolisHastings samples the posterior of the normal mean given
// the observations x, starting from thetaInit. It returns the chain
// after the burn-in and the acceptance rate over all iterations,
// burn-in included.
func MetropolisHastings(rng *rand.Rand, x []float64, thetaInit float64, s *Settings) ([]float64, float64, error) {
	m, err := NewMH(rng, x, thetaInit, s)
	if err != nil {
		return nil, 0, err
	}
	m.Quiet = true
	r := m.Run()
	return r.Samples(), r.AcceptanceRate(), nil
}
