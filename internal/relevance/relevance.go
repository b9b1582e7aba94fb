// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance filters fetched papers against a recency window and a
// keyword list, and ranks the survivors by how many keywords they match.
// It never touches the network; the input is whatever the fetch stage
// produced, the current instant is injected so runs are deterministic.
package relevance

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrDateParse marks a paper whose published timestamp could not be parsed.
// The fetch stage already validated structural presence, so this indicates
// a contract mismatch between the stages and fails the whole filter call
// rather than being skipped silently.
var ErrDateParse = errors.New("date parse failure")

// naiveTimeLayout covers timestamps that arrive without a zone; they are
// interpreted as UTC so the cutoff comparison stays meaningful.
const naiveTimeLayout = "2006-01-02T15:04:05"

// Filter drops papers published before now minus the configured window,
// scores the rest by keyword presence, drops the ones that match nothing,
// and returns the survivors sorted by score descending. The sort is stable:
// equal scores keep their feed order. The input slice is not modified.
//
// A paper exactly at the cutoff is kept. With an empty keyword list every
// paper scores zero and the result is empty; that is deliberate, an empty
// keyword configuration means "nothing is relevant", not "everything is".
func Filter(papers []types.Paper, cfg types.FilterConfig, now time.Time) ([]types.Paper, error) {
	cutoff := now.Add(-time.Duration(cfg.WindowDays * float64(24*time.Hour)))

	kept := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		published, err := parsePublished(p.Published)
		if err != nil {
			return nil, fmt.Errorf("%w: paper %q has unparseable date %q", ErrDateParse, p.URL, p.Published)
		}
		if published.Before(cutoff) {
			continue
		}

		score := keywordScore(p, cfg.Keywords)
		if score == 0 {
			continue
		}

		p.Score = score
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	return kept, nil
}

// keywordScore counts how many of the configured keywords occur in the
// lowercased title and summary. Each keyword counts once no matter how
// often it appears: presence, not frequency.
func keywordScore(p types.Paper, keywords []string) int {
	text := strings.ToLower(p.Title + " " + p.Summary)
	score := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			score++
		}
	}
	return score
}

func parsePublished(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(naiveTimeLayout, s, time.UTC)
}
