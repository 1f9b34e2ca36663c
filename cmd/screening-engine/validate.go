// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/intake"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <seeds-file> <articles-file>",
	Short: "Check input files without ranking",
	Long: `Validate loads a seed and article file pair and reports naming
convention violations, missing required fields, incomplete records, and
duplicate statistics. It exits non-zero when the pair cannot be ranked.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("title-field", "title", "record field holding the title")
	validateCmd.Flags().String("abstract-field", "abstract", "record field holding the abstract")
	validateCmd.Flags().Bool("drop-incomplete", true, "count duplicates after dropping records with a blank title or abstract")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	seedPath, articlePath := args[0], args[1]

	cfg, err := screeningConfig(cmd)
	if err != nil {
		return err
	}

	problems := 0
	for _, w := range intake.ValidateFileNames(seedPath, articlePath) {
		fmt.Fprintf(os.Stdout, "name: %s\n", w)
		problems++
	}

	collections, err := intake.LoadPair(cmd.Context(), seedPath, articlePath)
	if err != nil {
		return err
	}

	sets := []struct {
		name    string
		path    string
		records []types.Record
	}{
		{"seeds", seedPath, collections.Seeds},
		{"articles", articlePath, collections.Articles},
	}
	for _, set := range sets {
		records := set.records
		if err := intake.RequireFields(records, cfg.Normalize, set.name); err != nil {
			fmt.Fprintf(os.Stdout, "%s: %v\n", set.name, err)
			problems++
			continue
		}
		p := intake.Prepare(records, cfg.Normalize, cfg.Rank.DropIncomplete, cfg.Rank.DropDuplicates)
		fmt.Fprintf(os.Stdout, "%s (%s): %d records, %d incomplete, %d duplicates, %d unique\n",
			set.name, set.path, len(records), p.Incomplete, p.Stats.Duplicates, p.Stats.Unique)
		if set.name == "articles" {
			if _, empty := intake.DropEmptyText(intake.Normalize(p.Records, cfg.Normalize), cfg.Normalize); empty > 0 {
				fmt.Fprintf(os.Stdout, "%s: %d records have no text after cleaning and will be skipped\n", set.name, empty)
			}
		}
		if len(records) == 0 {
			fmt.Fprintf(os.Stdout, "%s: no records\n", set.name)
			problems++
		}
	}

	if problems > 0 {
		return errors.New("validation failed")
	}
	fmt.Fprintln(os.Stdout, "ok")
	return nil
}
