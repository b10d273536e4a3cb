package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/gomh/checkpoint"
	"bitbucket.org/Davydov/gomh/mcmc"
)

// chainSettings stores settings for a single chain.
type chainSettings struct {
	id        int
	seed      int64
	thetaInit float64
	settings  *mcmc.Settings

	report int
	accept int

	// trajectory output, nil for none
	out io.Writer

	db                *bolt.DB
	checkpointSeconds float64
}

// key returns checkpoint key identifying the chain and its input.
func (cs *chainSettings) key(data []float64) []byte {
	sum := 0.0
	for _, x := range data {
		sum += x
	}
	s := cs.settings
	return []byte(fmt.Sprintf("chain%d:seed=%d:init=%g:iter=%d:burnin=%d:proposal=%s:sd=%g:prior=%g,%g:n=%d:sum=%g",
		cs.id, cs.seed, cs.thetaInit, s.Iterations, s.BurnIn, s.ProposalKind, s.ProposalSD,
		s.PriorMean, s.PriorSD, len(data), sum))
}

// runChain samples a single chain or loads it from the finished
// checkpoint.
func runChain(data []float64, cs *chainSettings) (*ChainSummary, error) {
	var cio *checkpoint.CheckpointIO
	var r *mcmc.Result
	fromCheckpoint := false

	if cs.db != nil {
		cio = checkpoint.NewCheckpointIO(cs.db, cs.key(data), cs.checkpointSeconds)
		cdata, err := cio.Load()
		if err != nil {
			log.Warningf("Chain %d: error loading checkpoint: %v", cs.id, err)
		}
		if cdata != nil && cdata.Final {
			r, err = mcmc.ResultFromCheckpoint(cdata)
			if err != nil {
				log.Warningf("Chain %d: ignoring checkpoint: %v", cs.id, err)
			} else {
				fromCheckpoint = true
			}
		} else if cdata != nil {
			log.Noticef("Chain %d: restarting unfinished chain from scratch", cs.id)
		}
	}

	if r == nil {
		rng := rand.New(rand.NewSource(cs.seed))
		m, err := mcmc.NewMH(rng, data, cs.thetaInit, cs.settings)
		if err != nil {
			return nil, err
		}
		m.RepPeriod = cs.report
		m.AccPeriod = cs.accept
		if cs.out != nil {
			m.SetOutput(cs.out)
		} else {
			m.Quiet = true
		}
		if cio != nil {
			m.SetCheckpointIO(cio)
		}
		log.Infof("Chain %d: seed=%d, init=%v", cs.id, cs.seed, cs.thetaInit)
		r = m.Run()
	}

	summary := &ChainSummary{
		ID:             cs.id,
		Seed:           cs.seed,
		Init:           cs.thetaInit,
		AcceptanceRate: r.AcceptanceRate(),
		Samples:        len(r.Samples()),
		ESS:            r.EffectiveSampleSize(),
		Checkpoint:     fromCheckpoint,
		Time:           r.Time.Seconds(),
	}
	if summary.Samples > 0 {
		mean, sd := r.MeanSD()
		summary.Mean = &mean
		summary.SD = &sd
		log.Noticef("Chain %d: mean=%f, sd=%f, acceptance=%.2f%%, ESS=%d/%d",
			cs.id, mean, sd, 100*summary.AcceptanceRate, summary.ESS, summary.Samples)
	} else {
		log.Warningf("Chain %d: no samples after burn-in, acceptance=%.2f%%",
			cs.id, 100*summary.AcceptanceRate)
	}
	return summary, nil
}

// runChains runs independent chains in parallel. Summaries are
// returned in the order of settings.
func runChains(data []float64, css []*chainSettings) ([]*ChainSummary, error) {
	summaries := make([]*ChainSummary, len(css))
	errs := make([]error, len(css))

	var wg sync.WaitGroup
	for i, cs := range css {
		wg.Add(1)
		go func(i int, cs *chainSettings) {
			defer wg.Done()
			summaries[i], errs[i] = runChain(data, cs)
		}(i, cs)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("chain %d: %v", css[i].id, err)
		}
	}
	return summaries, nil
}

// trajectoryFileName returns the trajectory file name for chain i.
func trajectoryFileName(base string, i int) string {
	if i == 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, i)
}

// openDB opens the checkpoint database.
func openDB(fn string) (*bolt.DB, error) {
	db, err := bolt.Open(fn, 0600, &bolt.Options{Timeout: checkpointTimeout})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// createTrajectories creates trajectory files for n chains. If base
// is empty and there is a single chain, stdout is used.
func createTrajectories(base string, n int) (ws []io.Writer, closeAll func(), err error) {
	ws = make([]io.Writer, n)
	var files []*os.File
	closeAll = func() {
		for _, f := range files {
			f.Close()
		}
	}
	if base == "" {
		if n == 1 {
			ws[0] = os.Stdout
		}
		return ws, closeAll, nil
	}
	for i := 0; i < n; i++ {
		f, err := os.Create(trajectoryFileName(base, i))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		ws[i] = f
	}
	return ws, closeAll, nil
}
