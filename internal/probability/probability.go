// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probability converts a score column into a probability
// distribution over the whole column.
package probability

import (
	"errors"
	"math"
)

// ErrEmptyColumn is returned for a column with no values.
var ErrEmptyColumn = errors.New("column is empty")

// MinMax scales values into [0, 1] using the column's own range. A constant
// column scales to all zeros.
func MinMax(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}

// Transform min-max scales values, exponentiates each, and divides by the
// sum so the result sums to 1 across the column. Position i of the result
// belongs to values[i].
func Transform(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyColumn
	}
	scaled := MinMax(values)
	var sum float64
	for i, v := range scaled {
		scaled[i] = math.Exp(v)
		sum += scaled[i]
	}
	for i := range scaled {
		scaled[i] /= sum
	}
	return scaled, nil
}
