// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes ranking tables in human and machine formats.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/screening-engine/internal/rank"
	"github.com/pdiddy/screening-engine/internal/screen"
	"github.com/pdiddy/screening-engine/pkg/types"
)

// csvHeader is the column order of CSV output.
var csvHeader = []string{"title", "similarity", "label_included", "probability"}

// Write formats res in the given format to w.
func Write(res *screen.Result, format types.OutputFormat, w io.Writer) error {
	switch format {
	case types.OutputTable, "":
		FormatTable(res, w)
		return nil
	case types.OutputJSON:
		return FormatJSON(res.Table, w)
	case types.OutputYAML:
		return FormatYAML(res.Table, w)
	case types.OutputCSV:
		return FormatCSV(res.Table, w)
	default:
		return fmt.Errorf("unsupported format %q: use table, json, yaml, or csv", format)
	}
}

// FormatTable writes the ranking as a human-readable table followed by a
// threshold summary.
func FormatTable(res *screen.Result, w io.Writer) {
	if res.Table == nil || res.Table.Len() == 0 {
		fmt.Fprintln(w, "No documents ranked.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-10s  %-5s  %s\n",
		"Rank", "Title", "Similarity", "Label", "Probability")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range res.Table.Rows {
		prob := ""
		if r.Probability != nil {
			prob = fmt.Sprintf("%.6f", *r.Probability)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-10.4f  %-5d  %s\n",
			i+1, truncate(r.Title, 60), r.Similarity, r.LabelIncluded, prob)
	}

	fmt.Fprintf(w, "\n%d documents (%d seeds, %d candidates)", res.Table.Len(), res.Seeds, res.Candidates)
	if res.Threshold.Found {
		fmt.Fprintf(w, "; threshold %.4f at rank %d", res.Threshold.Value, res.Threshold.Rank)
	} else {
		fmt.Fprint(w, "; no threshold found")
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the table rows as indented JSON.
func FormatJSON(t *rank.Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Rows)
}

// FormatYAML writes the table rows as a YAML list.
func FormatYAML(t *rank.Table, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(t.Rows)
}

// FormatCSV writes title, similarity, label_included, and probability.
func FormatCSV(t *rank.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range t.Rows {
		prob := ""
		if r.Probability != nil {
			prob = strconv.FormatFloat(*r.Probability, 'g', -1, 64)
		}
		record := []string{
			r.Title,
			strconv.FormatFloat(r.Similarity, 'f', -1, 64),
			strconv.Itoa(r.LabelIncluded),
			prob,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCurve writes the WSS evaluation as a table.
func FormatCurve(c rank.Curve, w io.Writer) {
	if c.Len() == 0 {
		fmt.Fprintln(w, "No checkpoints: corpus smaller than the stride.")
		return
	}
	fmt.Fprintf(w, "%-10s  %-6s  %-8s  %-9s  %s\n", "Checkpoint", "Found", "Recall%", "Sampling%", "WSS%")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for i := range c.Checkpoints {
		fmt.Fprintf(w, "%-10d  %-6d  %-8.2f  %-9.2f  %.2f\n",
			c.Checkpoints[i], c.Found[i], c.Recall[i], c.Sampling[i], c.WSS[i])
	}
}

// WriteFile writes t to path in the format implied by its extension
// (.csv, .json, .yaml/.yml). A trailing .gz compresses the output.
func WriteFile(path string, t *rank.Table) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	name := path
	if strings.HasSuffix(name, ".gz") {
		zw := gzip.NewWriter(f)
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
		name = strings.TrimSuffix(name, ".gz")
	}

	switch filepath.Ext(name) {
	case ".csv":
		return FormatCSV(t, w)
	case ".json":
		return FormatJSON(t, w)
	case ".yaml", ".yml":
		return FormatYAML(t, w)
	default:
		return fmt.Errorf("unsupported output extension %q: use .csv, .json, or .yaml", filepath.Ext(name))
	}
}

// truncate shortens s to at most max runes, ending in "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
