// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// File is the on-disk representation of one digest: the query that produced
// it, the ranked results, and summary statistics. Saving is an explicit
// user request; nothing reads these files back on later runs.
type File struct {
	Query   FileQuery     `yaml:"query"`
	Results []types.Paper `yaml:"results"`
	Summary FileSummary   `yaml:"summary"`
}

// FileQuery stores the configuration that produced the digest.
type FileQuery struct {
	Categories []string `yaml:"categories"`
	Keywords   []string `yaml:"keywords,omitempty"`
	WindowDays float64  `yaml:"window_days"`
	MaxResults int      `yaml:"max_results"`
}

// FileSummary stores result statistics and a timestamp.
type FileSummary struct {
	Fetched     int       `yaml:"fetched"`
	Matched     int       `yaml:"matched"`
	GeneratedAt time.Time `yaml:"generated_at"`
}

// WriteFile saves a digest and the configuration that produced it to a
// YAML file.
func WriteFile(path string, cfg types.DigestConfig, res Result) error {
	df := File{
		Query: FileQuery{
			Categories: cfg.Query.Categories,
			Keywords:   cfg.Filter.Keywords,
			WindowDays: cfg.Filter.WindowDays,
			MaxResults: cfg.Query.MaxResults,
		},
		Results: res.Papers,
		Summary: FileSummary{
			Fetched:     res.Fetched,
			Matched:     len(res.Papers),
			GeneratedAt: res.GeneratedAt,
		},
	}

	data, err := yaml.Marshal(&df)
	if err != nil {
		return fmt.Errorf("marshaling digest file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a previously saved digest file from disk.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading digest file: %w", err)
	}
	var df File
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parsing digest file: %w", err)
	}
	return &df, nil
}
