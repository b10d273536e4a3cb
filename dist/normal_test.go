package dist

import (
	"math"
	"testing"
)

const smallDiff = 1e-9

/*** Tests if a and b are approximately equal ***/
func appreq(a, b float64) bool {
	return math.Abs(a-b) <= smallDiff
}

/*** Test log density against the direct formula ***/
func TestNormLogPDF(tst *testing.T) {
	xs := [...]float64{-3, -0.5, 0, 0.1, 2, 7.5}
	means := [...]float64{0, 1, -2}
	sds := [...]float64{0.3, 1, 4}
	for _, x := range xs {
		for _, m := range means {
			for _, s := range sds {
				direct := math.Log(math.Exp(-(x-m)*(x-m)/2/s/s) / s / math.Sqrt(2*math.Pi))
				if r := NormLogPDF(x, m, s); !appreq(r, direct) {
					tst.Errorf("NormLogPDF(%v, %v, %v)=%v, expected %v", x, m, s, r, direct)
				}
			}
		}
	}

	if r := NormLogPDF(0, 0, 1); !appreq(r, -0.918938533204672742) {
		tst.Error("Wrong standard normal log density at zero:", r)
	}
}

/*** Tails should not underflow ***/
func TestNormLogPDFTail(tst *testing.T) {
	r := NormLogPDF(100, 0, 1)
	if math.IsInf(r, 0) || math.IsNaN(r) {
		tst.Fatal("Tail log density is not finite:", r)
	}
	if !appreq(r, -5000-lnSqrt2Pi) {
		tst.Error("Wrong tail log density:", r)
	}
}

/*** Test conjugate posterior ***/
func TestNormalPosterior(tst *testing.T) {
	mean, sd := NormalPosterior([]float64{3.1, 2.9, 3.0}, 0, 1)
	if !appreq(mean, 2.25) {
		tst.Error("Wrong posterior mean:", mean)
	}
	if !appreq(sd, 0.5) {
		tst.Error("Wrong posterior sd:", sd)
	}

	mean, sd = NormalPosterior(nil, 1.5, 2)
	if !appreq(mean, 1.5) || !appreq(sd, 2) {
		tst.Error("Posterior without data should be the prior:", mean, sd)
	}
}

/*** Test 95% interval ***/
func TestNormalInterval(tst *testing.T) {
	lo, hi := NormalInterval(1, 2, 0.95)
	if math.Abs(lo-(1-1.959964*2)) > 1e-5 || math.Abs(hi-(1+1.959964*2)) > 1e-5 {
		tst.Error("Wrong interval:", lo, hi)
	}
	if q := QuantileNormal(0.5); !appreq(q, 0) {
		tst.Error("Median of standard normal should be zero:", q)
	}
}
