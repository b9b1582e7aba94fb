// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves recent paper metadata from the arXiv API and
// normalizes the Atom entries into Paper records. It issues exactly one
// request per call, keeps the feed's own ordering, and never evaluates
// relevance; that is the relevance package's job.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Failure kinds, distinguishable with errors.Is. A network failure means
// "no data this cycle"; a parse failure may mean the API contract changed
// and is worth alerting on separately.
var (
	ErrNetwork = errors.New("network failure")
	ErrParse   = errors.New("parse failure")
)

const (
	defaultMaxResults = 10
	maxResultsCap     = 50
)

// Fetch queries the arXiv API for the most recently updated papers in the
// configured categories. On success it returns zero or more normalized
// papers in feed order; zero results with a nil error means nothing was
// published, which callers can tell apart from an unreachable API.
func Fetch(ctx context.Context, client *http.Client, cfg types.QueryConfig) ([]types.Paper, error) {
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("no arXiv categories configured")
	}

	reqURL := arxivAPIBase + "?" + buildQuery(cfg).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: arXiv API request: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arXiv API returned HTTP %d", ErrNetwork, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing arXiv response: %v", ErrParse, err)
	}

	max := maxResults(cfg)
	papers := make([]types.Paper, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(papers) >= max {
			break
		}

		title := collapseWhitespace(item.Title)
		// The feed occasionally carries service entries (API announcements)
		// without a real title or link. Skip them; they are not results.
		if title == "" || item.Link == "" {
			continue
		}

		authors := make([]string, 0, len(item.Authors))
		for _, a := range item.Authors {
			if a == nil {
				continue
			}
			if name := strings.TrimSpace(a.Name); name != "" {
				authors = append(authors, name)
			}
		}

		papers = append(papers, types.Paper{
			Title:     title,
			Authors:   authors,
			Published: item.Published,
			Summary:   collapseWhitespace(item.Description),
			URL:       item.Link,
		})
	}

	return papers, nil
}

// buildQuery constructs the arXiv query parameters. The search expression
// is a boolean OR over the category predicates in input order, so the same
// configuration always produces the same query string. Sorting by last
// updated date, newest first, is fixed: the digest exists to surface the
// most recent papers.
func buildQuery(cfg types.QueryConfig) url.Values {
	parts := make([]string, 0, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		parts = append(parts, "cat:"+cat)
	}

	return url.Values{
		"search_query": {strings.Join(parts, " OR ")},
		"sortBy":       {"lastUpdatedDate"},
		"sortOrder":    {"descending"},
		"max_results":  {strconv.Itoa(maxResults(cfg))},
	}
}

func maxResults(cfg types.QueryConfig) int {
	max := cfg.MaxResults
	if max <= 0 {
		max = defaultMaxResults
	}
	if max > maxResultsCap {
		max = maxResultsCap
	}
	return max
}

// collapseWhitespace trims s and folds runs of whitespace, including the
// line breaks arXiv embeds in titles and abstracts, into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
