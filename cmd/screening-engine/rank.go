// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/intake"
	"github.com/pdiddy/screening-engine/internal/metrics"
	"github.com/pdiddy/screening-engine/internal/report"
	"github.com/pdiddy/screening-engine/internal/screen"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank <seeds-file> <articles-file>",
	Short: "Rank candidate articles by similarity to seed articles",
	Long: `Rank loads a seed file and an article file, scores every article by
TF-IDF cosine similarity to the seeds, and prints the ranking. A results
CSV named after the study prefix (e.g. study_results.csv) is written to
the output directory.

File names must follow the <study>_seeds / <study>_articles convention
unless --skip-name-check is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runRank,
}

func init() {
	addRankFlags(rankCmd)
	rankCmd.Flags().Bool("evaluate", false, "compute and print the WSS curve")
	rankCmd.Flags().String("format", "table", "stdout format: table, json, yaml, or csv")
	rankCmd.Flags().String("output-dir", "outputs", "directory for the results file (empty = do not write)")
	rankCmd.Flags().String("run-file", "", "write a YAML record of the run to this path")
	rankCmd.Flags().String("metrics-file", "", "write Prometheus textfile metrics to this path")
	rankCmd.Flags().Bool("skip-name-check", false, "do not enforce the file naming convention")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	seedPath, articlePath := args[0], args[1]

	cfg, err := screeningConfig(cmd)
	if err != nil {
		return err
	}
	if evaluate, _ := cmd.Flags().GetBool("evaluate"); evaluate {
		cfg.Rank.Evaluate = true
	}

	skipNames, _ := cmd.Flags().GetBool("skip-name-check")
	if warnings := intake.ValidateFileNames(seedPath, articlePath); len(warnings) > 0 {
		for _, w := range warnings {
			slog.Warn("file name check", "warning", w)
		}
		if !skipNames {
			return fmt.Errorf("file names rejected: %s", strings.Join(warnings, "; "))
		}
	}

	collections, err := intake.LoadPair(cmd.Context(), seedPath, articlePath)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := screen.Run(cmd.Context(), collections, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printStats(os.Stderr, res)

	if err := report.Write(res, cfg.Output.Format, os.Stdout); err != nil {
		return err
	}
	if res.Curve != nil && cfg.Output.Format == types.OutputTable {
		fmt.Fprintln(os.Stdout)
		report.FormatCurve(*res.Curve, os.Stdout)
	}

	if cfg.Output.Dir != "" {
		path := filepath.Join(cfg.Output.Dir, intake.ResultsFileName(seedPath))
		if err := report.WriteFile(path, res.Table); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}

	if cfg.Output.RunFile != "" {
		rf := report.NewRunFile(report.RunInputs{SeedFile: seedPath, ArticleFile: articlePath}, cfg.Rank, res)
		if err := report.WriteRunFile(cfg.Output.RunFile, rf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote run %s to %s\n", rf.RunID, cfg.Output.RunFile)
	}

	if cfg.Output.MetricsFile != "" {
		m := metrics.New()
		m.Observe(cfg.Rank.Aggregation, res, elapsed)
		if err := m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func printStats(w io.Writer, res *screen.Result) {
	fmt.Fprintf(w, "seeds:    %d total, %d duplicates, %d unique\n",
		res.SeedStats.Total, res.SeedStats.Duplicates, res.SeedStats.Unique)
	fmt.Fprintf(w, "articles: %d total, %d duplicates, %d unique\n",
		res.ArticleStats.Total, res.ArticleStats.Duplicates, res.ArticleStats.Unique)
	if res.EmptyDropped > 0 {
		fmt.Fprintf(w, "articles: %d dropped with no text after cleaning\n", res.EmptyDropped)
	}
	if res.Threshold.Found {
		fmt.Fprintf(w, "threshold: %.4f (rank %d)\n", res.Threshold.Value, res.Threshold.Rank)
	} else {
		fmt.Fprintln(w, "threshold: none (target recall unreachable)")
	}
}
