// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/screening-engine/pkg/types"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  \t\n ", want: ""},
		{name: "lowercases and drops stop words", in: "The Quick Brown Fox", want: "quick brown fox"},
		{name: "drops punctuation", in: "quick, brown; fox!", want: "quick brown fox"},
		{name: "strips non-ascii", in: "café naïve", want: "caf nave"},
		{name: "folds accents when asked", in: "café naïve", opts: Options{FoldAccents: true}, want: "cafe naive"},
		{name: "stop word attached to punctuation survives", in: "the, fox", want: "the fox"},
		{name: "only stop words", in: "The and of is", want: ""},
		// Tag removal runs after punctuation removal has already split the
		// brackets away, so markup degrades to its words.
		{name: "tags after punctuation", in: "<b>Bold</b> text", want: "b bold b text"},
		{name: "underscores kept", in: "gene_name variant", want: "gene_name variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in, tt.opts))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Deep learning for medical imaging: a systematic review",
		"Screening prioritization using TF-IDF, with 95% recall.",
		"",
	}
	for _, in := range inputs {
		once := Clean(in, Options{})
		assert.Equal(t, once, Clean(once, Options{}), "input %q", in)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: "abc", want: "abc"},
		{name: "int", in: 42, want: "42"},
		{name: "float", in: 1.5, want: "1.5"},
		{name: "whole float", in: 2.0, want: "2.0"},
		{name: "zero float", in: 0.0, want: "0.0"},
		{name: "negative float", in: -3.25, want: "-3.25"},
		{name: "large float", in: 1e21, want: "1e+21"},
		{name: "largest fixed float", in: 1e15, want: "1000000000000000.0"},
		{name: "exponent boundary", in: 1e16, want: "1e+16"},
		{name: "small float", in: 0.0001, want: "0.0001"},
		{name: "tiny float", in: 0.00001, want: "1e-05"},
		{name: "tiny float with digits", in: 1.5e-7, want: "1.5e-07"},
		{name: "float32", in: float32(0.1), want: "0.1"},
		{name: "nan", in: math.NaN(), want: "nan"},
		{name: "infinity", in: math.Inf(-1), want: "-inf"},
		{name: "int64", in: int64(-7), want: "-7"},
		{name: "bool", in: true, want: "True"},
		{name: "false", in: false, want: "False"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "neural networks screening tools", Normalize("Neural Networks", "Screening tools", Options{}))
	assert.Equal(t, "", Normalize(nil, nil, Options{}))
	assert.Equal(t, "2021 trial", Normalize(2021, "The trial", Options{}))
}

func TestRecord(t *testing.T) {
	cfg := types.NormalizeConfig{TitleField: "ti", AbstractField: "ab", OutputField: "clean"}
	rec := types.Record{"ti": "A Study", "ab": "Of Screening"}

	got := Record(rec, cfg)

	assert.Equal(t, "study screening", got)
	assert.Equal(t, "study screening", rec["clean"])
}

func TestRecordWithoutOutputField(t *testing.T) {
	cfg := types.NormalizeConfig{TitleField: "title", AbstractField: "abstract"}
	rec := types.Record{"title": "Alpha", "abstract": "Beta"}

	assert.Equal(t, "alpha beta", Record(rec, cfg))
	assert.Len(t, rec, 2)
}

func TestDocuments(t *testing.T) {
	docs := []types.Document{
		types.NewDocument("First Title", "An abstract", true),
		types.NewDocument("", "", false),
	}
	Documents(docs, Options{})

	assert.Equal(t, "first title abstract", docs[0].NormalizedText)
	assert.Equal(t, "", docs[1].NormalizedText)
}
