// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// addRankFlags registers the ranking flags shared by rank, evaluate, and compare.
func addRankFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("aggregation", types.DefaultAggregation, "seed aggregation: mean, min, max, or median")
	f.Float64Slice("weights", nil, "per-seed weights for mean aggregation (comma-separated)")
	f.Float64("recall", types.DefaultRecall, "target recall fraction for the threshold")
	f.Int("stride", types.DefaultStride, "WSS checkpoint stride")
	f.Int("relevant", 0, "number of truly relevant documents (0 = seed count)")
	f.Int("precision", types.DefaultPrecision, "decimals reported similarity is rounded to (0 = no rounding)")
	f.Bool("include-seeds", false, "keep seed rows in the output")
	f.Bool("drop-incomplete", true, "drop records with an empty title or abstract")
	f.Bool("drop-duplicates", false, "keep only the first record of each title+abstract pair")
	f.Bool("mark-positive", false, "label output rows with similarity > 0 as included")
	f.Bool("probabilities", true, "attach the probability column")
	f.Bool("fold-accents", false, "fold accented letters to ASCII before cleaning")
	f.String("title-field", "title", "record field holding the title")
	f.String("abstract-field", "abstract", "record field holding the abstract")
}

// screeningConfig resolves configuration: explicitly set flags override
// environment and config file values, which override defaults.
func screeningConfig(cmd *cobra.Command) (types.ScreeningConfig, error) {
	cfg := types.DefaultScreeningConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	f := cmd.Flags()
	changed := func(name string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("aggregation") {
		cfg.Rank.Aggregation, _ = f.GetString("aggregation")
	}
	if changed("weights") {
		cfg.Rank.Weights, _ = f.GetFloat64Slice("weights")
	}
	if changed("recall") {
		cfg.Rank.Recall, _ = f.GetFloat64("recall")
	}
	if changed("stride") {
		cfg.Rank.Stride, _ = f.GetInt("stride")
	}
	if changed("relevant") {
		cfg.Rank.RelevantDocs, _ = f.GetInt("relevant")
	}
	if changed("precision") {
		cfg.Rank.Precision, _ = f.GetInt("precision")
	}
	if changed("include-seeds") {
		cfg.Rank.IncludeSeeds, _ = f.GetBool("include-seeds")
	}
	if changed("drop-incomplete") {
		cfg.Rank.DropIncomplete, _ = f.GetBool("drop-incomplete")
	}
	if changed("drop-duplicates") {
		cfg.Rank.DropDuplicates, _ = f.GetBool("drop-duplicates")
	}
	if changed("mark-positive") {
		cfg.Rank.MarkPositive, _ = f.GetBool("mark-positive")
	}
	if changed("probabilities") {
		cfg.Rank.Probabilities, _ = f.GetBool("probabilities")
	}
	if changed("fold-accents") {
		cfg.Normalize.FoldAccents, _ = f.GetBool("fold-accents")
	}
	if changed("title-field") {
		cfg.Normalize.TitleField, _ = f.GetString("title-field")
	}
	if changed("abstract-field") {
		cfg.Normalize.AbstractField, _ = f.GetString("abstract-field")
	}
	if changed("format") {
		format, _ := f.GetString("format")
		cfg.Output.Format = types.OutputFormat(format)
	}
	if changed("output-dir") {
		cfg.Output.Dir, _ = f.GetString("output-dir")
	}
	if changed("run-file") {
		cfg.Output.RunFile, _ = f.GetString("run-file")
	}
	if changed("metrics-file") {
		cfg.Output.MetricsFile, _ = f.GetString("metrics-file")
	}

	slog.Debug("resolved configuration",
		"aggregation", cfg.Rank.Aggregation,
		"recall", cfg.Rank.Recall,
		"stride", cfg.Rank.Stride,
		"precision", cfg.Rank.Precision,
		"include_seeds", cfg.Rank.IncludeSeeds,
		"drop_incomplete", cfg.Rank.DropIncomplete)
	return cfg, nil
}
