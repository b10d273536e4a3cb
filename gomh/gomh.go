/*

Gomh samples the posterior distribution of the mean of normally
distributed observations (with unit variance) under a normal prior,
using the random walk Metropolis-Hastings algorithm.

The basic usage of gomh looks like this:

	gomh data.txt

, where data.txt contains whitespace separated observations. Without
the data file gomh simulates the observations:

	gomh -n 100 -truemean 3 -truesd 1

Several independent chains can be sampled in parallel:

	gomh -chains 4 -burnin 1000 -out trajectory.txt -json summary.json data.txt

To see all the options run:

	gomh -h

*/
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gomh/dist"
	"bitbucket.org/Davydov/gomh/mcmc"
	"bitbucket.org/Davydov/gomh/optimize"
	"bitbucket.org/Davydov/gomh/simulate"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("gomh")
var formatter = logging.MustStringFormatter(`%{message}`)

// checkpointTimeout is how long to wait for the database lock.
const checkpointTimeout = 5 * time.Second

// command-line options
var (
	// application
	app = kingpin.New("gomh", "Metropolis-Hastings sampler for the normal mean").Version(version)

	// input data
	dataFileName = app.Arg("data", "file with whitespace separated observations; simulated if not set").ExistingFile()
	nObs         = app.Flag("n", "number of observations to simulate").Default("100").Int()
	trueMean     = app.Flag("truemean", "mean of the simulated observations").Default("3").Float64()
	trueSD       = app.Flag("truesd", "sd of the simulated observations").Default("1").Float64()

	// model parameters
	priorMean = app.Flag("priormean", "prior mean").Default("0").Float64()
	priorSD   = app.Flag("priorsd", "prior standard deviation").Default("1").Float64()

	// sampler parameters
	thetaInit  = app.Flag("init", "initial value of the chain").Default("0").Float64()
	start      = app.Flag("start", "starting point (init: use -init, map: posterior mode)").Default("init").Enum("init", "map")
	iterations = app.Flag("iter", "number of iterations including burn-in").Default("10000").Int()
	burnIn     = app.Flag("burnin", "number of iterations to discard").Default("1000").Int()
	proposal   = app.Flag("proposal", "proposal distribution (normal or uniform)").Default(mcmc.NormalKind).Enum(mcmc.NormalKind, mcmc.UniformKind)
	proposalSD = app.Flag("sd", "proposal standard deviation").Default("0.2").Float64()
	nChains    = app.Flag("chains", "number of independent chains").Default("1").Int()
	report     = app.Flag("report", "report every N iterations").Default("10").Int()
	accept     = app.Flag("accept", "report acceptance rate every N iterations").Default("200").Int()

	// technical
	nThreads = app.Flag("nt", "number of threads to use").Int()
	seed     = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	outF     = app.Flag("out", "write trajectory to a file (chain i>0 is written to file.i)").String()
	jsonF    = app.Flag("json", "write json output to a file").String()
	dbF      = app.Flag("db", "checkpoint database file").String()
	cpPeriod = app.Flag("checkpoint", "save checkpoint every N seconds").Default("60").Float64()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
)

// readData reads the observations from the file or simulates them.
func readData(summary *DataSummary, rng *rand.Rand) []float64 {
	var data []float64
	if *dataFileName != "" {
		f, err := os.Open(*dataFileName)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		data, err = simulate.ReadFloats(f)
		if err != nil {
			log.Fatal("Error reading data:", err)
		}
		summary.File = *dataFileName
		log.Infof("Read %d observations from %s", len(data), *dataFileName)
	} else {
		if *nObs < 0 || !(*trueSD > 0) {
			log.Fatal("Number of observations should be >= 0 and sd > 0")
		}
		data = simulate.Normal(rng, *nObs, *trueMean, *trueSD)
		summary.TrueMean = *trueMean
		summary.TrueSD = *trueSD
		log.Infof("Simulated %d observations from N(%v, %v^2)", *nObs, *trueMean, *trueSD)
	}
	if err := mcmc.ValidateData(data); err != nil {
		log.Fatal(err)
	}
	summary.N = len(data)
	if len(data) > 0 {
		summary.Mean, summary.SD = simulate.MeanSD(data)
		log.Infof("Data mean=%v, sd=%v", summary.Mean, summary.SD)
	} else {
		log.Warning("No observations, the posterior is the prior")
	}
	return data
}

// run samples all the chains and returns the summary.
func run() (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{}

	settings := mcmc.NewSettings()
	settings.Iterations = *iterations
	settings.BurnIn = *burnIn
	settings.ProposalKind = *proposal
	settings.ProposalSD = *proposalSD
	settings.PriorMean = *priorMean
	settings.PriorSD = *priorSD
	if err := settings.Validate(); err != nil {
		log.Fatal("Incorrect settings:", err)
	}
	if *nChains < 1 {
		log.Fatal("Number of chains should be > 0")
	}
	if settings.BurnIn >= settings.Iterations {
		log.Warning("Burn-in is not shorter than the chain, no samples will be kept")
	}

	data := readData(&summary.Data, rand.New(rand.NewSource(*seed)))

	mean, sd := dist.NormalPosterior(data, *priorMean, *priorSD)
	lo, hi := dist.NormalInterval(mean, sd, 0.95)
	summary.Analytic = AnalyticSummary{Mean: mean, SD: sd, Lower95: lo, Upper95: hi}
	log.Noticef("Analytic posterior: mean=%f, sd=%f, 95%% interval=[%f, %f]", mean, sd, lo, hi)

	mode, err := optimize.MAP(data, settings.ModelParameters, *thetaInit)
	if err != nil {
		log.Fatal("Error finding posterior mode:", err)
	}
	summary.MAP = mode
	log.Noticef("MAP=%f", mode)

	theta0 := *thetaInit
	if *start == "map" {
		log.Info("Starting chains from the posterior mode")
		theta0 = mode
	}

	out, closeAll, err := createTrajectories(*outF, *nChains)
	if err != nil {
		log.Fatal("Error creating trajectory file:", err)
	}
	defer closeAll()

	var cs []*chainSettings
	for i := 0; i < *nChains; i++ {
		cs = append(cs, &chainSettings{
			id:                i,
			seed:              *seed + 1 + int64(i),
			thetaInit:         theta0,
			settings:          settings,
			report:            *report,
			accept:            *accept,
			out:               out[i],
			checkpointSeconds: *cpPeriod,
		})
	}

	if *dbF != "" {
		db, err := openDB(*dbF)
		if err != nil {
			log.Fatal("Error opening checkpoint database:", err)
		}
		defer db.Close()
		for _, c := range cs {
			c.db = db
		}
	}

	log.Infof("Sampling %d chain(s), %d iterations, burn-in %d, %s proposal sd=%v",
		*nChains, settings.Iterations, settings.BurnIn, settings.ProposalKind, settings.ProposalSD)

	summary.Chains, err = runChains(data, cs)
	if err != nil {
		log.Fatal(err)
	}

	deltaT := time.Since(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	return
}

// loggers lists the loggers of all the gomh packages.
var loggers = []string{"gomh", "mcmc", "optimize", "checkpoint"}

// setupLogging sets the formatter, the backend (file if fn is not
// empty, stderr otherwise) and the level of all the loggers. The
// returned function closes the log file.
func setupLogging(fn, levelName string) (closeLog func(), err error) {
	level, err := logging.LogLevel(levelName)
	if err != nil {
		return nil, err
	}
	logging.SetFormatter(formatter)

	closeLog = func() {}
	var backend *logging.LogBackend
	if fn != "" {
		f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		closeLog = func() { f.Close() }
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	for _, module := range loggers {
		logging.SetLevel(level, module)
	}
	return closeLog, nil
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	closeLog, err := setupLogging(*outLogF, *logLevel)
	if err != nil {
		log.Fatal("Error setting up logging:", err)
	}
	defer closeLog()

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)

	runtime.GOMAXPROCS(*nThreads)

	effectiveNThreads := runtime.GOMAXPROCS(0)
	log.Infof("Using threads: %d.", effectiveNThreads)

	summary := run()
	summary.NThreads = effectiveNThreads
	summary.Version = version
	summary.CommandLine = os.Args
	summary.Seed = *seed

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
