package main

// RunSummary is storing gomh run summary information.
type RunSummary struct {
	// Version stores gomh version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// NThreads is the number of processes used.
	NThreads int `json:"nThreads"`
	// Data describes the observations.
	Data DataSummary `json:"data"`
	// Analytic is the conjugate posterior.
	Analytic AnalyticSummary `json:"analytic"`
	// MAP is the posterior mode found by L-BFGS-B.
	MAP float64 `json:"map"`
	// Chains stores summaries of all the chains.
	Chains []*ChainSummary `json:"chains"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
}

// DataSummary describes the observations.
type DataSummary struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean,omitempty"`
	SD   float64 `json:"sd,omitempty"`
	// File is the data file name, empty for the synthetic data.
	File string `json:"file,omitempty"`
	// TrueMean and TrueSD are the synthetic data parameters.
	TrueMean float64 `json:"trueMean,omitempty"`
	TrueSD   float64 `json:"trueSD,omitempty"`
}

// AnalyticSummary is the closed-form posterior.
type AnalyticSummary struct {
	Mean    float64 `json:"mean"`
	SD      float64 `json:"sd"`
	Lower95 float64 `json:"lower95"`
	Upper95 float64 `json:"upper95"`
}

// ChainSummary summarizes one chain.
type ChainSummary struct {
	// ID is the chain number.
	ID int `json:"id"`
	// Seed is the chain random generator seed.
	Seed int64 `json:"seed"`
	// Init is the starting value.
	Init float64 `json:"init"`
	// AcceptanceRate is computed over all the iterations including burn-in.
	AcceptanceRate float64 `json:"acceptanceRate"`
	// Samples is the number of samples after burn-in.
	Samples int `json:"samples"`
	// Mean and SD are not set if there are no samples after burn-in.
	Mean *float64 `json:"mean,omitempty"`
	SD   *float64 `json:"sd,omitempty"`
	// ESS is the effective sample size.
	ESS int `json:"ess"`
	// Checkpoint is true if the chain was loaded from a finished checkpoint.
	Checkpoint bool `json:"checkpoint,omitempty"`
	// Time is the sampling time in seconds.
	Time float64 `json:"time"`
}
