package mcmc

import (
	"math"
	"math/rand"
	"testing"
)

func TestAutocorrelation(tst *testing.T) {
	acf := Autocorrelation([]float64{1, 2, 3, 4})
	expected := []float64{1, 0.25, -0.3, -0.45}
	if len(acf) != len(expected) {
		tst.Fatal("Wrong autocorrelation length:", len(acf))
	}
	for i := range acf {
		if !appreq(acf[i], expected[i]) {
			tst.Errorf("acf[%d]=%v, expected %v", i, acf[i], expected[i])
		}
	}

	acf = Autocorrelation([]float64{2, 2, 2})
	if acf[0] != 1 || acf[1] != 0 || acf[2] != 0 {
		tst.Error("Constant chain should be uncorrelated:", acf)
	}

	if Autocorrelation(nil) != nil {
		tst.Error("Empty chain should have no autocorrelation")
	}
}

func TestEffectiveSampleSizeSmall(tst *testing.T) {
	if ess := EffectiveSampleSize([]float64{1, 2, 3, 4}); ess != 2 {
		tst.Error("Expected ESS=2, got", ess)
	}
	if ess := EffectiveSampleSize([]float64{1, -1, 1, -1}); ess != 4 {
		tst.Error("Expected ESS=4 for alternating chain, got", ess)
	}
	if ess := EffectiveSampleSize([]float64{5}); ess != 1 {
		tst.Error("Expected ESS=1 for a single value, got", ess)
	}
	if ess := EffectiveSampleSize(nil); ess != 0 {
		tst.Error("Expected ESS=0 for an empty chain, got", ess)
	}
}

func TestEffectiveSampleSizeConstant(tst *testing.T) {
	chain := make([]float64, 1000)
	for i := range chain {
		chain[i] = 0.1
	}
	if ess := EffectiveSampleSize(chain); ess != 1000 {
		tst.Error("Constant chain ESS should be n, got", ess)
	}
	if tau := AutocorrelationTime(chain); tau != 1 {
		tst.Error("Constant chain autocorrelation time should be 1, got", tau)
	}
}

// Squared deviations underflow to 0 although the values differ.
func TestEffectiveSampleSizeTinyVariance(tst *testing.T) {
	chain := []float64{1e-300, 2e-300, 1e-300, 2e-300}
	if tau := AutocorrelationTime(chain); tau != 1 {
		tst.Error("Autocorrelation time should be 1, got", tau)
	}
	if ess := EffectiveSampleSize(chain); ess != 4 {
		tst.Error("Expected ESS=4, got", ess)
	}
	acf := Autocorrelation(chain)
	for i, r := range acf {
		if math.IsNaN(r) || (i == 0 && r != 1) || (i > 0 && r != 0) {
			tst.Errorf("acf[%d]=%v, expected uncorrelated chain", i, r)
		}
	}
}

func TestEffectiveSampleSizeIID(tst *testing.T) {
	n := 2000
	rng := rand.New(rand.NewSource(1))
	chain := make([]float64, n)
	for i := range chain {
		chain[i] = rng.NormFloat64()
	}
	if ess := EffectiveSampleSize(chain); float64(ess) < 0.7*float64(n) || ess > n {
		tst.Error("IID ESS should be close to n, got", ess)
	}
}

func TestEffectiveSampleSizeCorrelated(tst *testing.T) {
	n := 2000
	rng := rand.New(rand.NewSource(1))
	chain := make([]float64, n)
	for i := 1; i < n; i++ {
		chain[i] = 0.95*chain[i-1] + rng.NormFloat64()
	}
	if ess := EffectiveSampleSize(chain); float64(ess) > 0.3*float64(n) {
		tst.Error("Correlated chain ESS should be small, got", ess)
	}
}

func TestEffectiveSampleSizeChain(tst *testing.T) {
	m, err := NewMH(rand.New(rand.NewSource(1)), testData, 0, testSettings(5000, 500, 0.2))
	if err != nil {
		tst.Fatal("Unexpected error:", err)
	}
	r := m.Run()
	ess := r.EffectiveSampleSize()
	if ess <= 0 || ess >= len(r.Samples()) {
		tst.Error("Random walk chain ESS should be between 0 and n:", ess)
	}
}
