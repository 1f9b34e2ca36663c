// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument(t *testing.T) {
	seed := NewDocument("T", "A", true)
	assert.True(t, seed.IsSeed)
	assert.Equal(t, 1, seed.LabelIncluded)
	assert.Nil(t, seed.Similarity)

	cand := NewDocument("T", "A", false)
	assert.False(t, cand.IsSeed)
	assert.Equal(t, 0, cand.LabelIncluded)
}

func TestCorpus(t *testing.T) {
	seeds := []Document{NewDocument("s1", "", true), NewDocument("s2", "", true)}
	candidates := []Document{NewDocument("c1", "", false)}

	corpus := Corpus(seeds, candidates)
	assert.Len(t, corpus, 3)
	assert.Equal(t, "s1", corpus[0].Title)
	assert.Equal(t, "s2", corpus[1].Title)
	assert.Equal(t, "c1", corpus[2].Title)

	corpus[0].Title = "changed"
	assert.Equal(t, "s1", seeds[0].Title)
}

func TestDefaultScreeningConfig(t *testing.T) {
	cfg := DefaultScreeningConfig()
	assert.Equal(t, "title", cfg.Normalize.TitleField)
	assert.Equal(t, "abstract", cfg.Normalize.AbstractField)
	assert.Equal(t, "title_abstract", cfg.Normalize.OutputField)
	assert.Equal(t, DefaultAggregation, cfg.Rank.Aggregation)
	assert.Equal(t, DefaultRecall, cfg.Rank.Recall)
	assert.Equal(t, DefaultStride, cfg.Rank.Stride)
	assert.Equal(t, DefaultPrecision, cfg.Rank.Precision)
	assert.True(t, cfg.Rank.DropIncomplete)
	assert.False(t, cfg.Rank.IncludeSeeds)
	assert.Equal(t, OutputTable, cfg.Output.Format)
}
