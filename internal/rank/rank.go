// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders scored documents by similarity and evaluates the
// ordering: the similarity threshold at a target recall, and the
// work-saved-over-sampling (WSS) curve.
package rank

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/screening-engine/pkg/types"
)

var (
	// ErrLengthMismatch is returned when scores and documents differ in length.
	ErrLengthMismatch = errors.New("score count does not match document count")

	// ErrNoRelevant is returned when the relevant-document count is not positive.
	ErrNoRelevant = errors.New("relevant document count must be positive")

	// ErrInvalidRecall is returned for a recall fraction outside (0, 1].
	ErrInvalidRecall = errors.New("recall fraction must be in (0, 1]")

	// ErrInvalidStride is returned for a non-positive checkpoint stride.
	ErrInvalidStride = errors.New("checkpoint stride must be positive")
)

// Row is one document in a ranking table.
type Row struct {
	// Position is the document's index in the corpus.
	Position int `json:"position" yaml:"position"`

	Title         string  `json:"title" yaml:"title"`
	Similarity    float64 `json:"similarity" yaml:"similarity"`
	LabelIncluded int     `json:"label_included" yaml:"label_included"`
	IsSeed        bool    `json:"is_seed" yaml:"is_seed"`

	// CumulativeSum is the running count of relevant labels down the
	// sorted table. Set by Threshold.
	CumulativeSum int `json:"cumulative_sum" yaml:"cumulative_sum"`

	// Probability is set by the probability transform; nil until then.
	Probability *float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
}

// Table is a ranking table. Rows start in corpus order.
type Table struct {
	Rows []Row `json:"rows" yaml:"rows"`
}

// NewTable attaches scores to docs. scores[i] belongs to docs[i].
func NewTable(docs []types.Document, scores []float64) (*Table, error) {
	if len(docs) != len(scores) {
		return nil, fmt.Errorf("%w: %d scores, %d documents", ErrLengthMismatch, len(scores), len(docs))
	}
	rows := make([]Row, len(docs))
	for i, d := range docs {
		rows[i] = Row{
			Position:      i,
			Title:         d.Title,
			Similarity:    scores[i],
			LabelIncluded: d.LabelIncluded,
			IsSeed:        d.IsSeed,
		}
	}
	return &Table{Rows: rows}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Sort orders rows by similarity descending. Equal similarities keep their
// current relative order.
func (t *Table) Sort() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Similarity > t.Rows[j].Similarity
	})
}

// Similarities returns the similarity column in row order.
func (t *Table) Similarities() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Similarity
	}
	return out
}

// Filter returns a new table holding the rows for which keep is true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Threshold is the similarity cutoff that captures the target recall.
// Found is false when the target cannot be reached.
type Threshold struct {
	Found bool    `json:"found" yaml:"found"`
	Value float64 `json:"value" yaml:"value"`

	// Rank is the 1-based row at which the target was reached.
	Rank int `json:"rank" yaml:"rank"`
}

// Threshold fills the cumulative relevant count down the table's current
// order and returns the similarity at the first row where it reaches
// pct × relevant. The table should already be sorted.
func (t *Table) Threshold(relevant int, pct float64) (Threshold, error) {
	if relevant <= 0 {
		return Threshold{}, fmt.Errorf("threshold: %w", ErrNoRelevant)
	}
	if pct <= 0 || pct > 1 {
		return Threshold{}, fmt.Errorf("threshold: %w (got %g)", ErrInvalidRecall, pct)
	}

	target := pct * float64(relevant)
	var (
		sum    int
		result Threshold
	)
	for i := range t.Rows {
		sum += t.Rows[i].LabelIncluded
		t.Rows[i].CumulativeSum = sum
		if !result.Found && float64(sum) >= target {
			result = Threshold{Found: true, Value: t.Rows[i].Similarity, Rank: i + 1}
		}
	}
	return result, nil
}

// Curve holds the WSS evaluation sequences. All slices share one length.
type Curve struct {
	Checkpoints []int     `json:"checkpoints" yaml:"checkpoints"`
	Found       []int     `json:"found" yaml:"found"`
	Recall      []float64 `json:"recall" yaml:"recall"`
	Sampling    []float64 `json:"sampling" yaml:"sampling"`
	WSS         []float64 `json:"wss" yaml:"wss"`
}

// Len returns the number of checkpoints.
func (c Curve) Len() int { return len(c.Checkpoints) }

// Best returns the index of the largest WSS value, or -1 for an empty curve.
func (c Curve) Best() int {
	best := -1
	for i, w := range c.WSS {
		if best < 0 || w > c.WSS[best] {
			best = i
		}
	}
	return best
}

// WSS evaluates the table's current order at checkpoints stride, 2×stride,
// ... below totalDocs. At checkpoint i, recall is the percentage of the
// relevant documents found in the top i rows, sampling is i as a
// percentage of totalDocs, and WSS is recall minus sampling.
func (t *Table) WSS(relevant, totalDocs, stride int) (Curve, error) {
	if relevant <= 0 {
		return Curve{}, fmt.Errorf("wss: %w", ErrNoRelevant)
	}
	if stride <= 0 {
		return Curve{}, fmt.Errorf("wss: %w (got %d)", ErrInvalidStride, stride)
	}

	var c Curve
	found, seen := 0, 0
	for i := stride; i < totalDocs; i += stride {
		for seen < i && seen < len(t.Rows) {
			found += t.Rows[seen].LabelIncluded
			seen++
		}
		recall := float64(found) / float64(relevant) * 100
		sampling := float64(i) / float64(totalDocs) * 100
		c.Checkpoints = append(c.Checkpoints, i)
		c.Found = append(c.Found, found)
		c.Recall = append(c.Recall, recall)
		c.Sampling = append(c.Sampling, sampling)
		c.WSS = append(c.WSS, recall-sampling)
	}
	return c, nil
}
