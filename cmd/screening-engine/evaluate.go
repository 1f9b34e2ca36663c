// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/intake"
	"github.com/pdiddy/screening-engine/internal/rank"
	"github.com/pdiddy/screening-engine/internal/report"
	"github.com/pdiddy/screening-engine/internal/screen"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [<seeds-file> <articles-file>]",
	Short: "Report the recall threshold and WSS curve of a ranking",
	Long: `Evaluate reports screening efficiency: the similarity threshold at the
target recall and the work-saved-over-sampling curve.

With --run-file it re-evaluates a saved run without re-ranking, so the
recall target, stride, and relevant count can be varied cheaply.
Otherwise it ranks the given seed and article files first.`,
	Args: func(cmd *cobra.Command, args []string) error {
		runFile, _ := cmd.Flags().GetString("run-file")
		if runFile != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runEvaluate,
}

func init() {
	addRankFlags(evaluateCmd)
	evaluateCmd.Flags().String("run-file", "", "saved run file to re-evaluate")
	evaluateCmd.Flags().Bool("json", false, "output the evaluation as JSON")

	rootCmd.AddCommand(evaluateCmd)
}

// evaluation is the JSON form of an evaluate report.
type evaluation struct {
	Threshold    rank.Threshold `json:"threshold"`
	RelevantDocs int            `json:"relevant_docs"`
	TotalDocs    int            `json:"total_docs"`
	Curve        rank.Curve     `json:"curve"`
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := screeningConfig(cmd)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	runFile, _ := cmd.Flags().GetString("run-file")

	var ev evaluation
	if runFile != "" {
		rf, err := report.ReadRunFile(runFile)
		if err != nil {
			return err
		}
		table := rf.Table()
		ev.RelevantDocs = cfg.Rank.RelevantDocs
		if ev.RelevantDocs <= 0 {
			ev.RelevantDocs = rf.Summary.RelevantDocs
		}
		ev.TotalDocs = table.Len()
		if ev.Threshold, err = table.Threshold(ev.RelevantDocs, cfg.Rank.Recall); err != nil {
			return err
		}
		if ev.Curve, err = table.WSS(ev.RelevantDocs, ev.TotalDocs, cfg.Rank.Stride); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "re-evaluating run %s\n", rf.RunID)
	} else {
		collections, err := intake.LoadPair(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		cfg.Rank.Evaluate = true
		res, err := screen.Run(cmd.Context(), collections, cfg)
		if err != nil {
			return err
		}
		ev.Threshold = res.Threshold
		ev.RelevantDocs = res.RelevantDocs
		ev.TotalDocs = res.Full.Len()
		ev.Curve = *res.Curve
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ev)
	}

	fmt.Fprintf(os.Stdout, "relevant: %d of %d documents, recall target %.2f\n",
		ev.RelevantDocs, ev.TotalDocs, cfg.Rank.Recall)
	if ev.Threshold.Found {
		fmt.Fprintf(os.Stdout, "threshold: %.4f at rank %d\n\n", ev.Threshold.Value, ev.Threshold.Rank)
	} else {
		fmt.Fprint(os.Stdout, "threshold: none (target recall unreachable)\n\n")
	}
	report.FormatCurve(ev.Curve, os.Stdout)
	return nil
}
