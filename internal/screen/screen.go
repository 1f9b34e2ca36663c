// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen runs a complete seed-similarity ranking: normalize the
// corpus, build the TF-IDF space, score every document against the seeds,
// rank, evaluate, and attach probabilities.
//
// A run holds no state outside its own call, so independent runs may
// execute in parallel.
package screen

import (
	"context"
	"fmt"
	"math"

	"github.com/pdiddy/screening-engine/internal/intake"
	"github.com/pdiddy/screening-engine/internal/normalize"
	"github.com/pdiddy/screening-engine/internal/probability"
	"github.com/pdiddy/screening-engine/internal/rank"
	"github.com/pdiddy/screening-engine/internal/similarity"
	"github.com/pdiddy/screening-engine/internal/vectorspace"
	"github.com/pdiddy/screening-engine/pkg/types"
)

// Result is the output of a ranking run.
type Result struct {
	// Table holds the output rows, sorted by similarity descending. Seed
	// rows are present only when RankConfig.IncludeSeeds is set.
	Table *rank.Table `json:"table" yaml:"table"`

	// Threshold is the similarity cutoff at the target recall.
	Threshold rank.Threshold `json:"threshold" yaml:"threshold"`

	// Full is the complete sorted table, seeds included, carrying the
	// labels the threshold and curve were computed from.
	Full *rank.Table `json:"-" yaml:"-"`

	// Curve is the WSS evaluation; nil unless RankConfig.Evaluate is set.
	Curve *rank.Curve `json:"curve,omitempty" yaml:"curve,omitempty"`

	// Documents is the scored corpus in corpus order.
	Documents []types.Document `json:"-" yaml:"-"`

	SeedStats    intake.Stats `json:"seed_stats" yaml:"seed_stats"`
	ArticleStats intake.Stats `json:"article_stats" yaml:"article_stats"`

	// EmptyDropped counts candidates left out because their cleaned text
	// was empty.
	EmptyDropped int `json:"empty_dropped" yaml:"empty_dropped"`

	Seeds        int `json:"seeds" yaml:"seeds"`
	Candidates   int `json:"candidates" yaml:"candidates"`
	RelevantDocs int `json:"relevant_docs" yaml:"relevant_docs"`
	Vocabulary   int `json:"vocabulary" yaml:"vocabulary"`
}

// withDefaults fills zero-valued numeric settings.
func withDefaults(cfg types.RankConfig) types.RankConfig {
	if cfg.Aggregation == "" {
		cfg.Aggregation = types.DefaultAggregation
	}
	if cfg.Recall == 0 {
		cfg.Recall = types.DefaultRecall
	}
	if cfg.Stride == 0 {
		cfg.Stride = types.DefaultStride
	}
	return cfg
}

// Round rounds x to the given number of decimals, halves to even. A
// non-positive precision returns x unchanged.
func Round(x float64, precision int) float64 {
	if precision <= 0 {
		return x
	}
	p := math.Pow10(precision)
	return math.RoundToEven(x*p) / p
}

// Run prepares both record collections per cfg and ranks them.
func Run(ctx context.Context, c intake.Collections, cfg types.ScreeningConfig) (*Result, error) {
	if err := intake.RequireFields(c.Seeds, cfg.Normalize, "seeds"); err != nil {
		return nil, err
	}
	if err := intake.RequireFields(c.Articles, cfg.Normalize, "articles"); err != nil {
		return nil, err
	}

	seeds := intake.Prepare(c.Seeds, cfg.Normalize, cfg.Rank.DropIncomplete, cfg.Rank.DropDuplicates)
	articles := intake.Prepare(c.Articles, cfg.Normalize, cfg.Rank.DropIncomplete, cfg.Rank.DropDuplicates)

	// Seeds keep empty texts so that Rank rejects them; a candidate with
	// no terms is dropped and counted.
	seedRecords := intake.Normalize(seeds.Records, cfg.Normalize)
	articleRecords, empty := intake.DropEmptyText(intake.Normalize(articles.Records, cfg.Normalize), cfg.Normalize)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := Rank(
		intake.Documents(seedRecords, cfg.Normalize, true),
		intake.Documents(articleRecords, cfg.Normalize, false),
		cfg.Rank,
		normalize.Options{FoldAccents: cfg.Normalize.FoldAccents},
	)
	if err != nil {
		return nil, err
	}
	res.SeedStats = seeds.Stats
	res.ArticleStats = articles.Stats
	res.EmptyDropped = empty
	return res, nil
}

// Rank scores candidates against seeds. The corpus is seeds followed by
// candidates; the inputs are not modified.
func Rank(seeds, candidates []types.Document, cfg types.RankConfig, opts normalize.Options) (*Result, error) {
	cfg = withDefaults(cfg)

	mode, err := similarity.ParseAggregation(cfg.Aggregation)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, similarity.ErrNoSeeds
	}

	corpus := types.Corpus(seeds, candidates)
	normalize.Documents(corpus, opts)

	texts := make([]string, len(corpus))
	for i, d := range corpus {
		texts[i] = d.NormalizedText
	}
	matrix, err := vectorspace.Build(texts)
	if err != nil {
		return nil, fmt.Errorf("building vector space: %w", err)
	}

	scores, err := similarity.Score(matrix, len(seeds), mode, cfg.Weights)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	table, err := rank.NewTable(corpus, scores)
	if err != nil {
		return nil, err
	}
	table.Sort()

	relevant := cfg.RelevantDocs
	if relevant <= 0 {
		relevant = len(seeds)
	}
	threshold, err := table.Threshold(relevant, cfg.Recall)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Threshold:    threshold,
		Seeds:        len(seeds),
		Candidates:   len(candidates),
		RelevantDocs: relevant,
		Vocabulary:   matrix.NumCols(),
	}

	if cfg.Evaluate {
		curve, err := table.WSS(relevant, table.Len(), cfg.Stride)
		if err != nil {
			return nil, err
		}
		res.Curve = &curve
	}

	for i := range table.Rows {
		table.Rows[i].Similarity = Round(table.Rows[i].Similarity, cfg.Precision)
	}

	if cfg.Probabilities {
		probs, err := probability.Transform(table.Similarities())
		if err != nil {
			return nil, fmt.Errorf("probabilities: %w", err)
		}
		for i := range table.Rows {
			p := probs[i]
			table.Rows[i].Probability = &p
		}
	}

	for _, r := range table.Rows {
		s := r.Similarity
		corpus[r.Position].Similarity = &s
		corpus[r.Position].Probability = r.Probability
	}
	res.Documents = corpus

	res.Full = table
	res.Table = table.Filter(func(r rank.Row) bool { return cfg.IncludeSeeds || !r.IsSeed })
	if cfg.MarkPositive {
		for i := range res.Table.Rows {
			if res.Table.Rows[i].Similarity > 0 {
				res.Table.Rows[i].LabelIncluded = 1
			}
		}
	}
	return res, nil
}
