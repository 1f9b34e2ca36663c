// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/screening-engine/internal/rank"
	"github.com/pdiddy/screening-engine/internal/screen"
	"github.com/pdiddy/screening-engine/pkg/types"
)

func ptr(f float64) *float64 { return &f }

func sampleTable() *rank.Table {
	return &rank.Table{Rows: []rank.Row{
		{Position: 2, Title: "Screening, with a comma", Similarity: 0.437, Probability: ptr(0.5)},
		{Position: 3, Title: "Tomato cultivation", Similarity: 0, Probability: ptr(0.25)},
		{Position: 4, Title: "Bird migration", Similarity: 0, LabelIncluded: 1, Probability: ptr(0.25)},
	}}
}

func sampleResult() *screen.Result {
	return &screen.Result{
		Table:      sampleTable(),
		Full:       sampleTable(),
		Threshold:  rank.Threshold{Found: true, Value: 0.666, Rank: 2},
		Seeds:      2,
		Candidates: 3,
	}
}

func TestFormatCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSV(sampleTable(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"title", "similarity", "label_included", "probability"}, records[0])
	assert.Equal(t, []string{"Screening, with a comma", "0.437", "0", "0.5"}, records[1])
	assert.Equal(t, []string{"Bird migration", "0", "1", "0.25"}, records[3])
}

func TestFormatCSVWithoutProbabilities(t *testing.T) {
	table := &rank.Table{Rows: []rank.Row{{Title: "A", Similarity: 0.1}}}
	var buf bytes.Buffer
	require.NoError(t, FormatCSV(table, &buf))
	assert.Equal(t, "title,similarity,label_included,probability\nA,0.1,0,\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleTable(), &buf))

	var rows []rank.Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Tomato cultivation", rows[1].Title)
	require.NotNil(t, rows[1].Probability)
	assert.Equal(t, 0.25, *rows[1].Probability)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML(sampleTable(), &buf))
	assert.Contains(t, buf.String(), "title: Tomato cultivation")

	var rows []rank.Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	assert.Len(t, rows, 3)
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format types.OutputFormat
		want   string
	}{
		{format: types.OutputTable, want: "threshold 0.6660 at rank 2"},
		{format: types.OutputJSON, want: `"title": "Bird migration"`},
		{format: types.OutputYAML, want: "title: Bird migration"},
		{format: types.OutputCSV, want: "Bird migration,0,1,0.25"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(sampleResult(), tt.format, &buf))
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var buf bytes.Buffer
	assert.Error(t, Write(sampleResult(), "xml", &buf))
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&screen.Result{Table: &rank.Table{}}, &buf)
	assert.Equal(t, "No documents ranked.\n", buf.String())
}

func TestFormatTableTruncatesTitles(t *testing.T) {
	res := sampleResult()
	res.Table.Rows[0].Title = strings.Repeat("x", 80)
	var buf bytes.Buffer
	FormatTable(res, &buf)
	assert.Contains(t, buf.String(), strings.Repeat("x", 57)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 61))
}

func TestFormatTableTruncatesOnRuneBoundaries(t *testing.T) {
	res := sampleResult()
	res.Table.Rows[0].Title = "Évaluation " + strings.Repeat("é", 40)
	res.Table.Rows[1].Title = strings.Repeat("é", 80)
	var buf bytes.Buffer
	FormatTable(res, &buf)

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Évaluation "+strings.Repeat("é", 40))
	assert.Contains(t, out, strings.Repeat("é", 57)+"...")
	assert.NotContains(t, out, strings.Repeat("é", 58))
}

func TestFormatCurve(t *testing.T) {
	var buf bytes.Buffer
	FormatCurve(rank.Curve{}, &buf)
	assert.Contains(t, buf.String(), "No checkpoints")

	buf.Reset()
	FormatCurve(rank.Curve{
		Checkpoints: []int{50},
		Found:       []int{2},
		Recall:      []float64{100},
		Sampling:    []float64{50},
		WSS:         []float64{50},
	}, &buf)
	assert.Contains(t, buf.String(), "100.00")
	assert.Contains(t, buf.String(), "Checkpoint")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.csv", "out.json", "out.yaml", "nested/out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, sampleTable()))
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "Tomato cultivation")
		})
	}

	assert.Error(t, WriteFile(filepath.Join(dir, "out.txt"), sampleTable()))
}

func TestWriteFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_results.csv.gz")
	require.NoError(t, WriteFile(path, sampleTable()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestRunFileRoundTrip(t *testing.T) {
	res := sampleResult()
	res.Curve = &rank.Curve{
		Checkpoints: []int{1, 2},
		Found:       []int{1, 1},
		Recall:      []float64{50, 50},
		Sampling:    []float64{33.3, 66.7},
		WSS:         []float64{16.7, -16.7},
	}
	cfg := types.DefaultScreeningConfig().Rank
	rf := NewRunFile(RunInputs{SeedFile: "s_seeds.yaml", ArticleFile: "s_articles.yaml"}, cfg, res)
	require.NotEmpty(t, rf.RunID)

	path := filepath.Join(t.TempDir(), "runs", "run.yaml")
	require.NoError(t, WriteRunFile(path, rf))

	got, err := ReadRunFile(path)
	require.NoError(t, err)
	assert.Equal(t, rf.RunID, got.RunID)
	assert.Equal(t, rf.Inputs, got.Inputs)
	assert.Equal(t, cfg, got.Config)
	assert.Equal(t, res.Threshold, got.Summary.Threshold)
	assert.True(t, rf.Summary.Timestamp.Equal(got.Summary.Timestamp))
	require.NotNil(t, got.Curve)
	assert.Equal(t, res.Curve.Checkpoints, got.Curve.Checkpoints)
	assert.Equal(t, res.Full.Rows, got.Rows)
}

func TestRunFileTableIsCopy(t *testing.T) {
	rf := NewRunFile(RunInputs{}, types.RankConfig{}, sampleResult())
	table := rf.Table()
	table.Rows[0].Title = "changed"
	assert.Equal(t, "Screening, with a comma", rf.Rows[0].Title)
}

func TestReadRunFileRejectsBadID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run_id: not-a-uuid\nrows: []\n"), 0o644))

	_, err := ReadRunFile(path)
	assert.Error(t, err)

	_, err = ReadRunFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
