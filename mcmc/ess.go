package mcmc

import (
	"math"

	"github.com/gonum/floats"
)

// centered returns a copy of x with the mean subtracted and its sum of
// squares. ok is false if all the values are equal or the sum of
// squares is not positive (e.g. it underflows to 0).
func centered(x []float64) (c []float64, norm float64, ok bool) {
	if len(x) == 0 || floats.Min(x) == floats.Max(x) {
		return nil, 0, false
	}
	c = make([]float64, len(x))
	copy(c, x)
	floats.AddConst(-floats.Sum(c)/float64(len(c)), c)
	norm = floats.Dot(c, c)
	if !(norm > 0) {
		return nil, 0, false
	}
	return c, norm, true
}

// Autocorrelation returns the autocorrelation of chain for lags from
// 0 to n-1, normalized by n times the variance. A chain with zero
// variance (constant, or so small it underflows) is treated as
// uncorrelated: 1 at lag 0 and 0 elsewhere.
func Autocorrelation(chain []float64) []float64 {
	n := len(chain)
	if n == 0 {
		return nil
	}
	acf := make([]float64, n)
	acf[0] = 1
	c, norm, ok := centered(chain)
	if !ok {
		return acf
	}
	for k := 1; k < n; k++ {
		acf[k] = floats.Dot(c[:n-k], c[k:]) / norm
	}
	return acf
}

// AutocorrelationTime returns the integrated autocorrelation time
// 1 + 2*sum(acf[1:cutoff]), where cutoff is the first lag with a
// negative autocorrelation (or n). It is 1 for a chain with zero
// variance.
func AutocorrelationTime(chain []float64) float64 {
	n := len(chain)
	c, norm, ok := centered(chain)
	if !ok {
		return 1
	}
	sum := 0.0
	for k := 1; k < n; k++ {
		r := floats.Dot(c[:n-k], c[k:]) / norm
		if r < 0 {
			break
		}
		sum += r
	}
	return 1 + 2*sum
}

// EffectiveSampleSize returns the estimated number of independent
// samples in chain, floor(n/tau). A constant chain has tau=1, so the
// result is n. An empty chain gives 0.
func EffectiveSampleSize(chain []float64) int {
	if len(chain) == 0 {
		return 0
	}
	return int(math.Floor(float64(len(chain)) / AutocorrelationTime(chain)))
}
