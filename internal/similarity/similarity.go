// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity scores every document of a vector space against the
// seed rows and reduces the per-seed scores to one value per document.
package similarity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/screening-engine/internal/vectorspace"
)

// Aggregation selects how per-seed similarities are combined.
type Aggregation string

const (
	Mean   Aggregation = "mean"
	Min    Aggregation = "min"
	Max    Aggregation = "max"
	Median Aggregation = "median"
)

// Aggregations lists every supported mode.
var Aggregations = []Aggregation{Mean, Min, Max, Median}

var (
	// ErrNoSeeds is returned when the seed count is zero or negative.
	ErrNoSeeds = errors.New("seed count must be positive")

	// ErrTooManySeeds is returned when the seed count exceeds the row count.
	ErrTooManySeeds = errors.New("seed count exceeds corpus size")

	// ErrUnknownAggregation is returned for an unrecognized mode.
	ErrUnknownAggregation = errors.New("unknown aggregation")

	// ErrWeights is returned for a weight vector of the wrong length or zero sum.
	ErrWeights = errors.New("invalid seed weights")
)

// ParseAggregation validates name and returns the matching mode.
func ParseAggregation(name string) (Aggregation, error) {
	for _, a := range Aggregations {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w %q: supported modes are mean, min, max, median", ErrUnknownAggregation, name)
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector.
func Cosine(a, b vectorspace.Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// Pairwise returns the seeds × N cosine matrix between the leading seed rows
// of m and every row of m.
func Pairwise(m *vectorspace.Matrix, seeds int) ([][]float64, error) {
	if seeds <= 0 {
		return nil, ErrNoSeeds
	}
	if seeds > m.NumRows() {
		return nil, fmt.Errorf("%w: %d seeds, %d rows", ErrTooManySeeds, seeds, m.NumRows())
	}

	out := make([][]float64, seeds)
	for s := 0; s < seeds; s++ {
		row := make([]float64, m.NumRows())
		for j, v := range m.Rows {
			row[j] = Cosine(m.Rows[s], v)
		}
		out[s] = row
	}
	return out, nil
}

// Aggregate reduces the seeds × N matrix along the seed axis. A single seed
// row is returned as-is regardless of mode. Weights apply only to Mean and
// may be nil.
func Aggregate(sims [][]float64, mode Aggregation, weights []float64) ([]float64, error) {
	if len(sims) == 0 {
		return nil, ErrNoSeeds
	}
	if _, err := ParseAggregation(string(mode)); err != nil {
		return nil, err
	}
	if len(sims) == 1 {
		out := make([]float64, len(sims[0]))
		copy(out, sims[0])
		return out, nil
	}

	n := len(sims[0])
	out := make([]float64, n)
	column := make([]float64, len(sims))

	var weightSum float64
	if mode == Mean && weights != nil {
		if len(weights) != len(sims) {
			return nil, fmt.Errorf("%w: %d weights for %d seeds", ErrWeights, len(weights), len(sims))
		}
		for _, w := range weights {
			weightSum += w
		}
		if weightSum == 0 {
			return nil, fmt.Errorf("%w: weights sum to zero", ErrWeights)
		}
	}

	for j := 0; j < n; j++ {
		for s := range sims {
			column[s] = sims[s][j]
		}
		switch mode {
		case Mean:
			if weights != nil {
				out[j] = weightedMean(column, weights, weightSum)
			} else {
				out[j] = mean(column)
			}
		case Min:
			out[j] = minimum(column)
		case Max:
			out[j] = maximum(column)
		case Median:
			out[j] = median(column)
		}
	}
	return out, nil
}

// Score computes the aggregate similarity of every row of m to its leading
// seed rows.
func Score(m *vectorspace.Matrix, seeds int, mode Aggregation, weights []float64) ([]float64, error) {
	sims, err := Pairwise(m, seeds)
	if err != nil {
		return nil, err
	}
	return Aggregate(sims, mode, weights)
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func weightedMean(xs, ws []float64, wsum float64) float64 {
	var sum float64
	for i, x := range xs {
		sum += x * ws[i]
	}
	return sum / wsum
}

func minimum(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maximum(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
