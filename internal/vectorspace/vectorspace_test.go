// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "drops stop words", in: "the apple and banana", want: []string{"apple", "banana"}},
		{name: "drops single characters", in: "x apple y", want: []string{"apple"}},
		{name: "keeps repeats", in: "apple apple", want: []string{"apple", "apple"}},
		{name: "empty", in: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild(t *testing.T) {
	m, err := Build([]string{"apple banana", "apple cherry"})
	require.NoError(t, err)

	assert.Equal(t, []string{"apple", "banana", "cherry"}, m.Vocabulary)
	assert.Equal(t, 2, m.NumRows())
	assert.Equal(t, 3, m.NumCols())

	// apple occurs in both documents; banana and cherry in one each.
	rare := math.Log(3.0/2.0) + 1
	assert.InDelta(t, 1.0, m.IDF[0], 1e-12)
	assert.InDelta(t, rare, m.IDF[1], 1e-12)
	assert.InDelta(t, rare, m.IDF[2], 1e-12)

	norm := math.Sqrt(1 + rare*rare)
	assert.InDelta(t, 1/norm, m.At(0, 0), 1e-12)
	assert.InDelta(t, rare/norm, m.At(0, 1), 1e-12)
	assert.Zero(t, m.At(0, 2))
	assert.InDelta(t, rare/norm, m.At(1, 2), 1e-12)
}

func TestBuildRowsAreUnitLength(t *testing.T) {
	texts := []string{
		"screening prioritization seed similarity",
		"similarity ranking recall recall",
		"unrelated gardening tomatoes",
	}
	m, err := Build(texts)
	require.NoError(t, err)
	require.Equal(t, len(texts), m.NumRows())
	for i, row := range m.Rows {
		assert.InDelta(t, 1.0, row.Norm(), 1e-12, "row %d", i)
	}
}

func TestBuildTermFrequency(t *testing.T) {
	m, err := Build([]string{"recall recall ranking", "ranking"})
	require.NoError(t, err)

	// Vocabulary: ranking (df 2), recall (df 1).
	require.Equal(t, []string{"ranking", "recall"}, m.Vocabulary)
	rankingW := 1.0
	recallW := 2 * (math.Log(3.0/2.0) + 1)
	norm := math.Hypot(rankingW, recallW)
	assert.InDelta(t, rankingW/norm, m.At(0, 0), 1e-12)
	assert.InDelta(t, recallW/norm, m.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, m.At(1, 0), 1e-12)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		texts   []string
		wantErr error
	}{
		{name: "no texts", texts: nil, wantErr: ErrEmptyCorpus},
		{name: "no indexable terms", texts: []string{"x y", "the"}, wantErr: ErrEmptyVocabulary},
		{name: "empty document", texts: []string{"apple", ""}, wantErr: ErrEmptyDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.texts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEmptyDocumentIsVocabularyError(t *testing.T) {
	_, err := Build([]string{""})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestVectorDot(t *testing.T) {
	a := Vector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := Vector{Indices: []int{2, 3, 5}, Values: []float64{4, 7, 1}}
	assert.InDelta(t, 2*4+3*1, a.Dot(b), 1e-12)
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
	assert.Zero(t, a.Dot(Vector{}))
}
