package series

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoSeries       = errors.New("no series to sum")
	ErrLengthMismatch = errors.New("series length mismatch")
)

// Sum adds equal-length series elementwise into a new slice.
// The inputs are never modified.
func Sum(series [][]float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, ErrNoSeries
	}

	n := len(series[0])
	out := make([]float64, n)
	copy(out, series[0])
	for i, s := range series[1:] {
		if len(s) != n {
			return nil, fmt.Errorf("%w: series %d has %d samples, expected %d", ErrLengthMismatch, i+1, len(s), n)
		}
		floats.Add(out, s)
	}
	return out, nil
}

// Negate returns a sign-flipped copy of s.
func Negate(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	floats.Scale(-1, out)
	return out
}

// Subtract returns a - b elementwise.
func Subtract(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d samples", ErrLengthMismatch, len(a), len(b))
	}
	out := make([]float64, len(a))
	floats.SubTo(out, a, b)
	return out, nil
}
