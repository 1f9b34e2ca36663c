// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intake prepares the seed and article collections for ranking:
// it checks file naming and required fields, drops incomplete or duplicate
// records, reports duplicate statistics, and converts records to documents.
package intake

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/pdiddy/screening-engine/internal/normalize"
	"github.com/pdiddy/screening-engine/pkg/types"
)

const (
	seedSuffix    = "_seeds"
	articleSuffix = "_articles"
	resultsSuffix = "_results.csv"
)

// ErrMissingField is returned when a record lacks a required field.
var ErrMissingField = errors.New("missing required field")

// Stats summarizes a collection's duplicates on title+abstract. Duplicates
// counts every member of a duplicated group, so Unique = Total - Duplicates.
type Stats struct {
	Total      int `json:"total_elements" yaml:"total_elements"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	Unique     int `json:"unique_elements" yaml:"unique_elements"`
}

// stem returns the base name up to the first dot.
func stem(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// prefix returns the base name up to the first underscore.
func prefix(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}

// ValidateFileNames checks the naming convention for a seed/article file
// pair: "<study>_seeds.*" and "<study>_articles.*" with a shared study
// prefix. It returns one warning per violation; nil means the pair is valid.
func ValidateFileNames(seedName, articleName string) []string {
	var warnings []string
	if !strings.HasSuffix(stem(seedName), seedSuffix) {
		warnings = append(warnings, fmt.Sprintf("seed file %q does not end with %q", filepath.Base(seedName), seedSuffix))
	}
	if !strings.HasSuffix(stem(articleName), articleSuffix) {
		warnings = append(warnings, fmt.Sprintf("article file %q does not end with %q", filepath.Base(articleName), articleSuffix))
	}
	if prefix(seedName) != prefix(articleName) {
		warnings = append(warnings, fmt.Sprintf("file names do not share a prefix: %q vs %q", prefix(seedName), prefix(articleName)))
	}
	return warnings
}

// ResultsFileName derives the lowercase results file name from the seed
// file name, e.g. "Study_seeds.yaml" -> "study_results.csv".
func ResultsFileName(seedName string) string {
	return strings.ToLower(prefix(seedName) + resultsSuffix)
}

// RequireFields verifies that every record carries the title and abstract
// fields named in cfg. collection names the source in the error.
func RequireFields(records []types.Record, cfg types.NormalizeConfig, collection string) error {
	for i, rec := range records {
		for _, field := range []string{cfg.TitleField, cfg.AbstractField} {
			if _, ok := rec[field]; !ok {
				return fmt.Errorf("%s record %d: %w %q", collection, i, ErrMissingField, field)
			}
		}
	}
	return nil
}

func key(rec types.Record, cfg types.NormalizeConfig) [2]string {
	return [2]string{normalize.Text(rec[cfg.TitleField]), normalize.Text(rec[cfg.AbstractField])}
}

// CountDuplicates computes duplicate statistics on title+abstract.
func CountDuplicates(records []types.Record, cfg types.NormalizeConfig) Stats {
	counts := make(map[[2]string]int, len(records))
	for _, rec := range records {
		counts[key(rec, cfg)]++
	}
	s := Stats{Total: len(records)}
	for _, n := range counts {
		if n > 1 {
			s.Duplicates += n
		}
	}
	s.Unique = s.Total - s.Duplicates
	return s
}

// DropIncomplete returns the records whose title and abstract are both
// present and non-blank. Order is preserved.
func DropIncomplete(records []types.Record, cfg types.NormalizeConfig) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		t := rec[cfg.TitleField]
		a := rec[cfg.AbstractField]
		if t == nil || a == nil {
			continue
		}
		if strings.TrimSpace(normalize.Text(t)) == "" || strings.TrimSpace(normalize.Text(a)) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// DropDuplicates keeps the first record of each title+abstract pair.
func DropDuplicates(records []types.Record, cfg types.NormalizeConfig) []types.Record {
	seen := make(map[[2]string]struct{}, len(records))
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		k := key(rec, cfg)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// Prepared is a collection after the record filters of a ranking run.
type Prepared struct {
	Records []types.Record
	// Stats is computed after incomplete records are dropped and before
	// duplicates are.
	Stats      Stats
	Incomplete int
}

// Prepare drops incomplete records when dropIncomplete is set, counts
// duplicates on what remains, then drops duplicates when dropDuplicates is
// set. Both the rank and validate commands report these numbers.
func Prepare(records []types.Record, cfg types.NormalizeConfig, dropIncomplete, dropDuplicates bool) Prepared {
	p := Prepared{Records: records}
	if dropIncomplete {
		p.Records = DropIncomplete(records, cfg)
		p.Incomplete = len(records) - len(p.Records)
	}
	p.Stats = CountDuplicates(p.Records, cfg)
	if dropDuplicates {
		p.Records = DropDuplicates(p.Records, cfg)
	}
	return p
}

func outputField(cfg types.NormalizeConfig) types.NormalizeConfig {
	if cfg.OutputField == "" {
		cfg.OutputField = types.DefaultNormalizeConfig().OutputField
	}
	return cfg
}

// Normalize returns copies of records carrying the cleaned title+abstract
// under cfg.OutputField. The input records are not modified.
func Normalize(records []types.Record, cfg types.NormalizeConfig) []types.Record {
	cfg = outputField(cfg)
	out := make([]types.Record, len(records))
	for i, rec := range records {
		c := maps.Clone(rec)
		if c == nil {
			c = types.Record{}
		}
		normalize.Record(c, cfg)
		out[i] = c
	}
	return out
}

// DropEmptyText removes normalized records whose cleaned text is empty and
// returns how many were removed. Such records have no terms to score.
func DropEmptyText(records []types.Record, cfg types.NormalizeConfig) ([]types.Record, int) {
	cfg = outputField(cfg)
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if normalize.Text(rec[cfg.OutputField]) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, len(records) - len(out)
}

// Documents converts records to documents, coercing title and abstract to
// text. Every document gets IsSeed = isSeed and a mirroring label. A record
// that went through Normalize keeps its cleaned text.
func Documents(records []types.Record, cfg types.NormalizeConfig, isSeed bool) []types.Document {
	cfg = outputField(cfg)
	docs := make([]types.Document, len(records))
	for i, rec := range records {
		docs[i] = types.NewDocument(
			normalize.Text(rec[cfg.TitleField]),
			normalize.Text(rec[cfg.AbstractField]),
			isSeed,
		)
		if s, ok := rec[cfg.OutputField].(string); ok {
			docs[i].NormalizedText = s
		}
	}
	return docs
}
