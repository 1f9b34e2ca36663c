// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intake

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// Load reads a YAML or JSON file holding a list of records.
func Load(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []types.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// Collections holds the two record sets of a screening run.
type Collections struct {
	Seeds    []types.Record
	Articles []types.Record
}

// LoadPair reads the seed and article files concurrently.
func LoadPair(ctx context.Context, seedPath, articlePath string) (Collections, error) {
	var c Collections
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := Load(seedPath)
		if err != nil {
			return fmt.Errorf("seeds: %w", err)
		}
		c.Seeds = recs
		return ctx.Err()
	})
	g.Go(func() error {
		recs, err := Load(articlePath)
		if err != nil {
			return fmt.Errorf("articles: %w", err)
		}
		c.Articles = recs
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return Collections{}, err
	}
	return c, nil
}
