// Package dist implements closed-form functions for the normal
// distribution.
package dist

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/mathext"
)

// lnSqrt2Pi is log(sqrt(2*pi)).
var lnSqrt2Pi = 0.5 * math.Log(2*math.Pi)

// square computes x^2.
func square(x float64) float64 {
	return x * x
}

// NormLogPDF returns log density of N(mean, sd^2) at x. The density
// is never computed directly, so values far in the tails do not
// underflow.
func NormLogPDF(x, mean, sd float64) float64 {
	return -0.5*square((x-mean)/sd) - math.Log(sd) - lnSqrt2Pi
}

// QuantileNormal returns quantile for standard normal distribution.
func QuantileNormal(prob float64) float64 {
	return mathext.NormalQuantile(prob)
}

// NormalPosterior returns mean and standard deviation of the
// posterior distribution of the mean of N(theta, 1) given the
// observations x and the prior N(priorMean, priorSD^2).
func NormalPosterior(x []float64, priorMean, priorSD float64) (mean, sd float64) {
	sum := floats.Sum(x)
	precision := 1/square(priorSD) + float64(len(x))
	mean = (priorMean/square(priorSD) + sum) / precision
	sd = math.Sqrt(1 / precision)
	return
}

// NormalInterval returns equal-tailed interval of N(mean, sd^2)
// containing prob of the probability mass.
func NormalInterval(mean, sd, prob float64) (lo, hi float64) {
	z := QuantileNormal(0.5 + prob/2)
	return mean - z*sd, mean + z*sd
}
