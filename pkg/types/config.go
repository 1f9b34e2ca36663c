// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NormalizeConfig names the fields the text normalizer reads and writes.
type NormalizeConfig struct {
	// TitleField is the record field holding the title (default "title").
	TitleField string `json:"title_field" yaml:"title_field" mapstructure:"title_field"`

	// AbstractField is the record field holding the abstract (default "abstract").
	AbstractField string `json:"abstract_field" yaml:"abstract_field" mapstructure:"abstract_field"`

	// OutputField receives the normalized text (default "title_abstract").
	OutputField string `json:"output_field" yaml:"output_field" mapstructure:"output_field"`

	// FoldAccents decomposes accented letters to their ASCII base before
	// non-ASCII characters are stripped ("café" keeps its "e").
	FoldAccents bool `json:"fold_accents" yaml:"fold_accents" mapstructure:"fold_accents"`
}

// RankConfig holds settings for a ranking run.
type RankConfig struct {
	// Aggregation reduces per-seed similarities: mean, min, max, or median.
	Aggregation string `json:"aggregation" yaml:"aggregation" mapstructure:"aggregation"`

	// Weights optionally weights each seed for the mean aggregation.
	// Length must equal the seed count.
	Weights []float64 `json:"weights,omitempty" yaml:"weights,omitempty" mapstructure:"weights"`

	// Recall is the target recall fraction for the threshold (default 0.95).
	Recall float64 `json:"recall" yaml:"recall" mapstructure:"recall"`

	// Stride is the WSS checkpoint step (default 50).
	Stride int `json:"stride" yaml:"stride" mapstructure:"stride"`

	// RelevantDocs is the count of truly relevant documents. Zero uses the
	// seed count.
	RelevantDocs int `json:"relevant_docs" yaml:"relevant_docs" mapstructure:"relevant_docs"`

	// Precision is the number of decimals reported similarity is rounded to.
	// Zero disables rounding.
	Precision int `json:"precision" yaml:"precision" mapstructure:"precision"`

	// IncludeSeeds keeps seed rows in the output table.
	IncludeSeeds bool `json:"include_seeds" yaml:"include_seeds" mapstructure:"include_seeds"`

	// DropIncomplete removes records with an empty title or abstract.
	DropIncomplete bool `json:"drop_incomplete" yaml:"drop_incomplete" mapstructure:"drop_incomplete"`

	// DropDuplicates keeps only the first record of each title+abstract pair.
	DropDuplicates bool `json:"drop_duplicates" yaml:"drop_duplicates" mapstructure:"drop_duplicates"`

	// MarkPositive sets label_included to 1 on output rows with similarity > 0.
	MarkPositive bool `json:"mark_positive" yaml:"mark_positive" mapstructure:"mark_positive"`

	// Evaluate attaches the WSS curve to the result.
	Evaluate bool `json:"evaluate" yaml:"evaluate" mapstructure:"evaluate"`

	// Probabilities attaches the probability column to the result.
	Probabilities bool `json:"probabilities" yaml:"probabilities" mapstructure:"probabilities"`
}

// OutputFormat selects how a ranking table is written.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
	OutputCSV   OutputFormat = "csv"
)

// OutputConfig holds settings for writing results.
type OutputConfig struct {
	// Format is the stdout format: table, json, yaml, or csv.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Dir is the directory result files are written to (default "outputs").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// RunFile, when set, receives a YAML record of the run.
	RunFile string `json:"run_file,omitempty" yaml:"run_file,omitempty" mapstructure:"run_file"`

	// MetricsFile, when set, receives Prometheus textfile metrics.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
}

// ScreeningConfig groups all stage configurations.
type ScreeningConfig struct {
	Normalize NormalizeConfig `json:"normalize" yaml:"normalize" mapstructure:"normalize"`
	Rank      RankConfig      `json:"rank" yaml:"rank" mapstructure:"rank"`
	Output    OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
}

// Defaults for the ranking stage.
const (
	DefaultAggregation = "mean"
	DefaultRecall      = 0.95
	DefaultStride      = 50
	DefaultPrecision   = 3
)

// DefaultNormalizeConfig returns the standard field names.
func DefaultNormalizeConfig() NormalizeConfig {
	return NormalizeConfig{
		TitleField:    "title",
		AbstractField: "abstract",
		OutputField:   "title_abstract",
	}
}

// DefaultScreeningConfig returns the configuration used when no file,
// environment, or flag overrides are present.
func DefaultScreeningConfig() ScreeningConfig {
	return ScreeningConfig{
		Normalize: DefaultNormalizeConfig(),
		Rank: RankConfig{
			Aggregation:    DefaultAggregation,
			Recall:         DefaultRecall,
			Stride:         DefaultStride,
			Precision:      DefaultPrecision,
			DropIncomplete: true,
			Probabilities:  true,
		},
		Output: OutputConfig{
			Format: OutputTable,
			Dir:    "outputs",
		},
	}
}
