// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/screening-engine/internal/intake"
	"github.com/pdiddy/screening-engine/internal/rank"
	"github.com/pdiddy/screening-engine/internal/screen"
	"github.com/pdiddy/screening-engine/pkg/types"
)

// RunFile is the on-disk record of a ranking run. A saved run can be
// re-evaluated later with a different recall target or stride without
// re-ranking. Rows hold the full sorted table, seeds included.
type RunFile struct {
	RunID   string           `yaml:"run_id"`
	Inputs  RunInputs        `yaml:"inputs"`
	Config  types.RankConfig `yaml:"config"`
	Summary RunSummary       `yaml:"summary"`
	Curve   *rank.Curve      `yaml:"curve,omitempty"`
	Rows    []rank.Row       `yaml:"rows"`
}

// RunInputs names the files a run was produced from.
type RunInputs struct {
	SeedFile    string `yaml:"seed_file,omitempty"`
	ArticleFile string `yaml:"article_file,omitempty"`
}

// RunSummary stores run statistics and a timestamp.
type RunSummary struct {
	Seeds        int            `yaml:"seeds"`
	Candidates   int            `yaml:"candidates"`
	RelevantDocs int            `yaml:"relevant_docs"`
	Vocabulary   int            `yaml:"vocabulary"`
	Threshold    rank.Threshold `yaml:"threshold"`
	SeedStats    intake.Stats   `yaml:"seed_stats"`
	ArticleStats intake.Stats   `yaml:"article_stats"`
	EmptyDropped int            `yaml:"empty_dropped"`
	Timestamp    time.Time      `yaml:"timestamp"`
}

// NewRunFile captures res with a fresh run ID.
func NewRunFile(inputs RunInputs, cfg types.RankConfig, res *screen.Result) *RunFile {
	return &RunFile{
		RunID:  uuid.New().String(),
		Inputs: inputs,
		Config: cfg,
		Summary: RunSummary{
			Seeds:        res.Seeds,
			Candidates:   res.Candidates,
			RelevantDocs: res.RelevantDocs,
			Vocabulary:   res.Vocabulary,
			Threshold:    res.Threshold,
			SeedStats:    res.SeedStats,
			ArticleStats: res.ArticleStats,
			EmptyDropped: res.EmptyDropped,
			Timestamp:    time.Now().UTC(),
		},
		Curve: res.Curve,
		Rows:  res.Full.Rows,
	}
}

// Table returns the saved rows as a ranking table.
func (rf *RunFile) Table() *rank.Table {
	rows := make([]rank.Row, len(rf.Rows))
	copy(rows, rf.Rows)
	return &rank.Table{Rows: rows}
}

// WriteRunFile saves rf as YAML.
func WriteRunFile(path string, rf *RunFile) error {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	if _, err := uuid.Parse(rf.RunID); err != nil {
		return nil, fmt.Errorf("run file has invalid run_id %q: %w", rf.RunID, err)
	}
	return &rf, nil
}
