package mcmc

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalProposal(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NormalProposal(rng, -0.1); err == nil {
		tst.Error("Expected error for negative sd")
	}

	p, err := NormalProposal(rng, 0)
	if err != nil {
		tst.Fatal("Unexpected error:", err)
	}
	for i := 0; i < 10; i++ {
		if v := p(1.5); v != 1.5 {
			tst.Fatal("Zero sd proposal should return the current value, got", v)
		}
	}

	p, err = NormalProposal(rng, 0.5)
	if err != nil {
		tst.Fatal("Unexpected error:", err)
	}
	n := 20000
	sum, sumsq := 0.0, 0.0
	for i := 0; i < n; i++ {
		d := p(3) - 3
		sum += d
		sumsq += d * d
	}
	mean := sum / float64(n)
	sd := math.Sqrt(sumsq/float64(n) - mean*mean)
	if math.Abs(mean) > 0.02 {
		tst.Error("Proposal is not centered:", mean)
	}
	if math.Abs(sd-0.5) > 0.02 {
		tst.Error("Wrong proposal sd:", sd)
	}
}

func TestUniformProposal(tst *testing.T) {
	rng := rand.New(rand.NewSource(2))
	if _, err := UniformProposal(rng, -1); err == nil {
		tst.Error("Expected error for negative width")
	}
	p, err := UniformProposal(rng, 2)
	if err != nil {
		tst.Fatal("Unexpected error:", err)
	}
	for i := 0; i < 1000; i++ {
		if v := p(0); v < -1 || v > 1 {
			tst.Fatal("Uniform proposal out of range:", v)
		}
	}
}

func TestRand(tst *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		if r := Rand(rng); r < 0 || r > 1 {
			tst.Fatal("Rand out of range:", r)
		}
	}
}
