// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves viper settings into the explicit configuration
// values the pipeline stages take as arguments. Resolution happens once,
// in the command layer; the stages themselves never read ambient state.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const defaultUserAgent = "arxiv-digest/0.1"

// Load applies defaults, reads the resolved settings out of v, and
// normalizes them into a validated DigestConfig. List-valued settings
// accept either a YAML sequence or a comma-separated string, so the same
// key works from a config file and from an environment variable.
func Load(v *viper.Viper) (types.DigestConfig, error) {
	v.SetDefault("categories", "cs.AI")
	v.SetDefault("max_results", 10)
	v.SetDefault("window_days", 1.0)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.user_agent", defaultUserAgent)

	cfg := types.DigestConfig{
		Query: types.QueryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("http.timeout"),
				UserAgent: v.GetString("http.user_agent"),
			},
			Categories: stringList(v, "categories"),
			MaxResults: v.GetInt("max_results"),
		},
		Filter: types.FilterConfig{
			Keywords:   NormalizeKeywords(stringList(v, "keywords")),
			WindowDays: v.GetFloat64("window_days"),
		},
	}

	if err := validate(cfg); err != nil {
		return types.DigestConfig{}, err
	}
	return cfg, nil
}

// stringList reads a list-valued key without viper's whitespace splitting,
// which would break multi-word keywords. Commas are the only separator.
func stringList(v *viper.Viper, key string) []string {
	switch val := v.Get(key).(type) {
	case nil:
		return nil
	case string:
		return SplitList([]string{val})
	case []string:
		return SplitList(val)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
		return SplitList(items)
	default:
		return SplitList([]string{fmt.Sprint(val)})
	}
}

// SplitList flattens comma-separated elements and trims the results, so
// both ["cs.AI", "cs.LG"] and ["cs.AI,cs.LG"] come out the same.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// NormalizeKeywords lowercases and trims keywords and drops empty entries,
// matching what the relevance stage expects.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func validate(cfg types.DigestConfig) error {
	if len(cfg.Query.Categories) == 0 {
		return fmt.Errorf("at least one arXiv category is required")
	}
	if cfg.Query.MaxResults < 0 || cfg.Query.MaxResults > 50 {
		return fmt.Errorf("max_results must be between 0 and 50, got %d", cfg.Query.MaxResults)
	}
	if cfg.Filter.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive, got %g", cfg.Filter.WindowDays)
	}
	if cfg.Query.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", cfg.Query.Timeout)
	}
	return nil
}
