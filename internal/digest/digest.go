// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest composes the fetch and relevance stages into a single
// digest run and formats the ranked result for a consumer. The two stages
// stay independently testable: fetch never sees keywords, relevance never
// touches the network, and this package only wires their outputs together.
package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/relevance"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Result holds the ranked papers from one digest run together with the
// fetch count, so operator output can say how many papers were considered.
type Result struct {
	// Papers are the keyword-relevant recent papers, best score first.
	Papers []types.Paper `json:"papers" yaml:"papers"`

	// Fetched is how many papers the arXiv query returned before filtering.
	Fetched int `json:"fetched" yaml:"fetched"`

	// GeneratedAt is the instant the digest was computed against.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// Run fetches recent papers and filters them to the relevant subset.
// Failures keep their kind: callers can distinguish fetch.ErrNetwork,
// fetch.ErrParse, and relevance.ErrDateParse with errors.Is and decide
// whether to skip the cycle or alert.
func Run(ctx context.Context, client *http.Client, cfg types.DigestConfig, now time.Time) (Result, error) {
	papers, err := fetch.Fetch(ctx, client, cfg.Query)
	if err != nil {
		return Result{}, err
	}

	ranked, err := relevance.Filter(papers, cfg.Filter, now)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Papers:      ranked,
		Fetched:     len(papers),
		GeneratedAt: now,
	}, nil
}

// FormatTable writes the digest as a human-readable table to w.
func FormatTable(res Result, w io.Writer) {
	if len(res.Papers) == 0 {
		fmt.Fprintf(w, "No relevant papers (%d fetched).\n", res.Fetched)
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %-5s\n",
		"Rank", "Title", "Authors", "Published", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 106))

	for i, p := range res.Papers {
		title := truncate(p.Title, 60)
		published := p.Published
		if t, err := time.Parse(time.RFC3339, p.Published); err == nil {
			published = t.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %-5d\n",
			i+1, title, formatAuthors(p.Authors), published, p.Score)
	}

	fmt.Fprintf(w, "\n%d of %d fetched papers matched\n", len(res.Papers), res.Fetched)
}

// FormatJSON writes the digest as indented JSON to w.
func FormatJSON(res Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
