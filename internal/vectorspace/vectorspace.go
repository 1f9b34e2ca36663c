// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectorspace builds a TF-IDF term-weight matrix over a corpus of
// normalized texts. Row i of the matrix always corresponds to text i of the
// input.
package vectorspace

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
)

var (
	// ErrEmptyCorpus is returned when no texts are supplied.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrEmptyVocabulary is returned when the texts yield no terms.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// ErrEmptyDocument is returned when an input text is empty. It wraps
	// ErrEmptyVocabulary so callers can treat both as vocabulary failures.
	ErrEmptyDocument = fmt.Errorf("%w: document has no text", ErrEmptyVocabulary)
)

// tokenPattern keeps tokens of two or more word characters.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vector is a sparse row: Indices ascend and index into the vocabulary.
type Vector struct {
	Indices []int
	Values  []float64
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of v and w. Both must have ascending indices.
func (v Vector) Dot(w Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(w.Indices) {
		switch {
		case v.Indices[i] == w.Indices[j]:
			sum += v.Values[i] * w.Values[j]
			i++
			j++
		case v.Indices[i] < w.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Matrix is a row-aligned TF-IDF matrix.
type Matrix struct {
	// Vocabulary lists terms in column order (sorted lexically).
	Vocabulary []string

	// IDF holds the inverse document frequency of each column.
	IDF []float64

	// Rows holds one L2-normalized vector per input text, in input order.
	Rows []Vector
}

// NumRows returns the number of documents.
func (m *Matrix) NumRows() int { return len(m.Rows) }

// NumCols returns the vocabulary size.
func (m *Matrix) NumCols() int { return len(m.Vocabulary) }

// At returns the weight at (row, col), zero when absent.
func (m *Matrix) At(row, col int) float64 {
	r := m.Rows[row]
	k := sort.SearchInts(r.Indices, col)
	if k < len(r.Indices) && r.Indices[k] == col {
		return r.Values[k]
	}
	return 0
}

// Tokenize splits text into the unigram terms the vectorizer counts:
// runs of two or more word characters, minus English stop words.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := StopWords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}

// Build computes the TF-IDF matrix for texts. Term weight is raw count
// times smoothed idf, ln((1+N)/(1+df))+1, and every row is L2-normalized.
// Every term that occurs in at least one text is kept.
func Build(texts []string) (*Matrix, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyCorpus
	}

	counts := make([]map[string]int, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("document %d: %w", i, ErrEmptyDocument)
		}
		c := make(map[string]int)
		for _, tok := range Tokenize(text) {
			c[tok]++
		}
		for term := range c {
			df[term]++
		}
		counts[i] = c
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("%d documents contain no indexable terms: %w", len(texts), ErrEmptyVocabulary)
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	column := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(texts))
	for j, term := range vocab {
		column[term] = j
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([]Vector, len(texts))
	for i, c := range counts {
		row := Vector{
			Indices: make([]int, 0, len(c)),
			Values:  make([]float64, 0, len(c)),
		}
		for term := range c {
			row.Indices = append(row.Indices, column[term])
		}
		sort.Ints(row.Indices)
		for _, j := range row.Indices {
			row.Values = append(row.Values, float64(c[vocab[j]])*idf[j])
		}
		if norm := row.Norm(); norm > 0 {
			for k := range row.Values {
				row.Values[k] /= norm
			}
		}
		rows[i] = row
	}

	return &Matrix{Vocabulary: vocab, IDF: idf, Rows: rows}, nil
}
