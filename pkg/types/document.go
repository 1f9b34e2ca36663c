// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the screening-engine
// pipeline: the documents being screened, the raw records they come from,
// and the configuration of each stage.
package types

// Record is one row of a document collection as supplied by an intake
// source. Keys are field names; values are whatever the source decoded
// (strings, numbers, nil).
type Record map[string]any

// Document is a journal-article style record taking part in a ranking run.
// The derived fields are filled in as the document moves through the
// pipeline: NormalizedText by the normalizer, Similarity by the aggregator,
// Probability by the probability transform.
type Document struct {
	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the article abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// IsSeed marks a document already known to be relevant.
	IsSeed bool `json:"is_seed" yaml:"is_seed"`

	// LabelIncluded is the binary relevance label (1 = relevant). It mirrors
	// IsSeed at ingestion.
	LabelIncluded int `json:"label_included" yaml:"label_included"`

	// NormalizedText is the cleaned title+abstract used for vectorization.
	NormalizedText string `json:"normalized_text,omitempty" yaml:"normalized_text,omitempty"`

	// Similarity is the aggregate similarity to the seed set. Nil until scored.
	Similarity *float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`

	// Probability is the normalized probability derived from Similarity.
	// Nil until transformed.
	Probability *float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
}

// NewDocument returns a Document with LabelIncluded mirroring isSeed.
func NewDocument(title, abstract string, isSeed bool) Document {
	d := Document{Title: title, Abstract: abstract, IsSeed: isSeed}
	if isSeed {
		d.LabelIncluded = 1
	}
	return d
}

// Corpus concatenates seeds (in order) followed by candidates (in order).
// The first len(seeds) entries form the seed partition. The returned slice
// is freshly allocated; inputs are not modified.
func Corpus(seeds, candidates []Document) []Document {
	out := make([]Document, 0, len(seeds)+len(candidates))
	out = append(out, seeds...)
	out = append(out, candidates...)
	return out
}
