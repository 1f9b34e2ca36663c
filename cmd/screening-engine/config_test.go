// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/screening-engine/pkg/types"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults(types.DefaultScreeningConfig())

	cmd := &cobra.Command{Use: "test"}
	addRankFlags(cmd)
	cmd.Flags().String("format", "table", "")
	return cmd
}

func TestScreeningConfigDefaults(t *testing.T) {
	cmd := newTestCommand(t)

	cfg, err := screeningConfig(cmd)
	require.NoError(t, err)

	want := types.DefaultScreeningConfig()
	assert.Equal(t, want.Normalize, cfg.Normalize)
	assert.Equal(t, want.Output, cfg.Output)
	assert.Empty(t, cfg.Rank.Weights)
	cfg.Rank.Weights = nil
	assert.Equal(t, want.Rank, cfg.Rank)
}

func TestScreeningConfigViperValues(t *testing.T) {
	cmd := newTestCommand(t)
	viper.Set("rank.aggregation", "median")
	viper.Set("rank.precision", 4)
	viper.Set("rank.include_seeds", true)

	cfg, err := screeningConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "median", cfg.Rank.Aggregation)
	assert.Equal(t, 4, cfg.Rank.Precision)
	assert.True(t, cfg.Rank.IncludeSeeds)
}

func TestScreeningConfigFlagsOverride(t *testing.T) {
	cmd := newTestCommand(t)
	viper.Set("rank.aggregation", "median")
	viper.Set("rank.stride", 25)

	require.NoError(t, cmd.Flags().Set("aggregation", "max"))
	require.NoError(t, cmd.Flags().Set("weights", "1,2"))
	require.NoError(t, cmd.Flags().Set("drop-incomplete", "false"))
	require.NoError(t, cmd.Flags().Set("format", "csv"))

	cfg, err := screeningConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "max", cfg.Rank.Aggregation)
	assert.Equal(t, []float64{1, 2}, cfg.Rank.Weights)
	assert.False(t, cfg.Rank.DropIncomplete)
	assert.Equal(t, types.OutputCSV, cfg.Output.Format)

	// Unchanged flags do not clobber configured values.
	assert.Equal(t, 25, cfg.Rank.Stride)
}
