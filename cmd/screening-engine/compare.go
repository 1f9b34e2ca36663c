// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/screening-engine/internal/intake"
	"github.com/pdiddy/screening-engine/internal/metrics"
	"github.com/pdiddy/screening-engine/internal/screen"
	"github.com/pdiddy/screening-engine/internal/similarity"
)

var compareCmd = &cobra.Command{
	Use:   "compare <seeds-file> <articles-file>",
	Short: "Compare aggregation modes on the same input",
	Long: `Compare ranks the same seed and article files once per aggregation mode
(mean, min, max, median) and prints each mode's threshold and best WSS
point side by side. The runs execute in parallel.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	addRankFlags(compareCmd)
	compareCmd.Flags().String("metrics-file", "", "write Prometheus textfile metrics for every mode to this path")

	rootCmd.AddCommand(compareCmd)
}

// modeResult is one aggregation mode's outcome.
type modeResult struct {
	mode    similarity.Aggregation
	res     *screen.Result
	elapsed time.Duration
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := screeningConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Rank.Evaluate = true

	collections, err := intake.LoadPair(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	results := make([]modeResult, len(similarity.Aggregations))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, mode := range similarity.Aggregations {
		i, mode := i, mode
		g.Go(func() error {
			modeCfg := cfg
			modeCfg.Rank.Aggregation = string(mode)
			start := time.Now()
			res, err := screen.Run(ctx, collections, modeCfg)
			if err != nil {
				return fmt.Errorf("%s: %w", mode, err)
			}
			results[i] = modeResult{mode: mode, res: res, elapsed: time.Since(start)}
			slog.Debug("ranked", "aggregation", mode, "elapsed", results[i].elapsed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printComparison(os.Stdout, results)

	if cfg.Output.MetricsFile != "" {
		m := metrics.New()
		for _, r := range results {
			m.Observe(string(r.mode), r.res, r.elapsed)
		}
		if err := m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote metrics to %s\n", cfg.Output.MetricsFile)
	}
	return nil
}

func printComparison(w io.Writer, results []modeResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGGREGATION\tTHRESHOLD\tRANK\tBEST WSS\tAT")
	for _, r := range results {
		threshold, at := "-", "-"
		if r.res.Threshold.Found {
			threshold = fmt.Sprintf("%.4f", r.res.Threshold.Value)
			at = fmt.Sprintf("%d", r.res.Threshold.Rank)
		}
		wss, checkpoint := "-", "-"
		if r.res.Curve != nil {
			if best := r.res.Curve.Best(); best >= 0 {
				wss = fmt.Sprintf("%.2f", r.res.Curve.WSS[best])
				checkpoint = fmt.Sprintf("%d", r.res.Curve.Checkpoints[best])
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.mode, threshold, at, wss, checkpoint)
	}
	tw.Flush()
}
