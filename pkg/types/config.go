// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// QueryConfig holds the settings the fetch stage uses to build its arXiv
// query. The sort field and order are not configurable: the digest always
// asks for the most recently updated papers first.
type QueryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Categories is the ordered list of arXiv category codes (e.g.
	// "cs.AI", "cs.LG") combined into a boolean-OR search expression.
	// Order is preserved so the generated query is reproducible.
	Categories []string `json:"categories" yaml:"categories"`

	// MaxResults caps the number of entries requested (default 10, max 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// FilterConfig holds the settings for the relevance stage.
type FilterConfig struct {
	// Keywords are lowercase, trimmed, non-empty match terms. A paper is
	// kept only if at least one keyword appears in its title or summary,
	// so an empty list keeps nothing.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// WindowDays is the recency window: papers published earlier than
	// WindowDays before the current instant are dropped. Fractional
	// values are allowed (default 1).
	WindowDays float64 `json:"window_days" yaml:"window_days"`
}

// OutputConfig holds the settings for presenting a digest.
type OutputConfig struct {
	// JSON selects JSON output instead of the console table.
	JSON bool `json:"json" yaml:"json"`

	// SavePath, when non-empty, is the file the digest is also written to
	// as YAML.
	SavePath string `json:"save_path,omitempty" yaml:"save_path,omitempty"`
}

// DigestConfig groups all stage configurations for one digest run.
type DigestConfig struct {
	Query  QueryConfig  `json:"query" yaml:"query"`
	Filter FilterConfig `json:"filter" yaml:"filter"`
	Output OutputConfig `json:"output" yaml:"output"`
}
