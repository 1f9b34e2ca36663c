// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the screening-engine CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the screening-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "screening-engine",
	Short: "Rank candidate articles by similarity to known-relevant seeds",
	Long: `screening-engine prioritizes a literature screening queue. Given a small
set of seed articles already known to be relevant and a pool of candidate
articles, it ranks the candidates by TF-IDF cosine similarity to the seeds,
reports the similarity threshold at a target recall, and evaluates the
ranking with a work-saved-over-sampling curve.

Seed and article files are YAML or JSON lists of records carrying at least
a title and an abstract.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./screening-engine.yaml or ~/.config/screening-engine/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("screening-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "screening-engine"))
		}
	}

	setDefaults(types.DefaultScreeningConfig())

	viper.SetEnvPrefix("SCREENING_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment overrides apply.
func setDefaults(cfg types.ScreeningConfig) {
	viper.SetDefault("normalize.title_field", cfg.Normalize.TitleField)
	viper.SetDefault("normalize.abstract_field", cfg.Normalize.AbstractField)
	viper.SetDefault("normalize.output_field", cfg.Normalize.OutputField)
	viper.SetDefault("normalize.fold_accents", cfg.Normalize.FoldAccents)

	viper.SetDefault("rank.aggregation", cfg.Rank.Aggregation)
	if len(cfg.Rank.Weights) > 0 {
		viper.SetDefault("rank.weights", cfg.Rank.Weights)
	}
	viper.SetDefault("rank.recall", cfg.Rank.Recall)
	viper.SetDefault("rank.stride", cfg.Rank.Stride)
	viper.SetDefault("rank.relevant_docs", cfg.Rank.RelevantDocs)
	viper.SetDefault("rank.precision", cfg.Rank.Precision)
	viper.SetDefault("rank.include_seeds", cfg.Rank.IncludeSeeds)
	viper.SetDefault("rank.drop_incomplete", cfg.Rank.DropIncomplete)
	viper.SetDefault("rank.drop_duplicates", cfg.Rank.DropDuplicates)
	viper.SetDefault("rank.mark_positive", cfg.Rank.MarkPositive)
	viper.SetDefault("rank.evaluate", cfg.Rank.Evaluate)
	viper.SetDefault("rank.probabilities", cfg.Rank.Probabilities)

	viper.SetDefault("output.format", string(cfg.Output.Format))
	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.run_file", cfg.Output.RunFile)
	viper.SetDefault("output.metrics_file", cfg.Output.MetricsFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
