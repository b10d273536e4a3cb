// Package simulate generates and reads observations for the normal
// model.
package simulate

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"github.com/gonum/floats"
)

// Normal generates n independent values from N(mean, sd^2).
func Normal(rng *rand.Rand, n int, mean, sd float64) []float64 {
	data := make([]float64, 0, n)
	for j := 0; j < n; j++ {
		data = append(data, rng.NormFloat64()*sd+mean)
	}
	return data
}

// MeanSD computes mean and SD. Both are NaN for empty data, SD is 0
// for a single value.
func MeanSD(data []float64) (mean, sd float64) {
	if len(data) == 0 {
		return math.NaN(), math.NaN()
	}
	mean = floats.Sum(data) / float64(len(data))
	if len(data) == 1 {
		return mean, 0
	}
	for _, x := range data {
		sd += (mean - x) * (mean - x)
	}
	sd /= float64(len(data) - 1)
	sd = math.Sqrt(sd)
	return
}

// ReadFloats reads whitespace separated values.
func ReadFloats(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var result []float64
	for scanner.Scan() {
		x, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %v", len(result)+1, err)
		}
		result = append(result, x)
	}
	return result, scanner.Err()
}
