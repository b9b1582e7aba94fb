// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const sampleArxivFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query: search_query=cat:cs.AI OR cat:cs.LG</title>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v1</id>
    <title>Attention Is All
  You Need</title>
    <summary>We propose a new architecture based
  solely on attention mechanisms.</summary>
    <published>2017-06-12T17:57:34Z</published>
    <link href="http://arxiv.org/abs/1706.03762v1" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/1706.03762v1" rel="related" type="application/pdf"/>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1810.04805v2</id>
    <title>BERT: Pre-training of Deep Bidirectional Transformers</title>
    <summary>We introduce BERT.</summary>
    <published>2018-10-11T00:00:00Z</published>
    <link href="http://arxiv.org/abs/1810.04805v2" rel="alternate" type="text/html"/>
    <author><name>Jacob Devlin</name></author>
  </entry>
</feed>`

// Includes a service entry without a link, like the announcements the API
// sometimes injects.
const feedWithServiceEntryXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>ArXiv api maintenance notice</title>
    <summary>The API will be unavailable this weekend.</summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>A Real Paper</title>
    <summary>An abstract.</summary>
    <published>2023-01-17T12:00:00Z</published>
    <link href="http://arxiv.org/abs/2301.07041v1" rel="alternate" type="text/html"/>
    <author><name>Jane Smith</name></author>
  </entry>
</feed>`

const emptyFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query: search_query=cat:cs.AI</title>
</feed>`

func testQueryConfig() types.QueryConfig {
	return types.QueryConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "test/0.1"},
		Categories: []string{"cs.AI", "cs.LG"},
		MaxResults: 10,
	}
}

// serveFeed stands up an httptest server returning body and points the
// package at it for the duration of the test.
func serveFeed(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	t.Cleanup(func() { arxivAPIBase = old })
	return ts
}

func TestFetchMapsEntries(t *testing.T) {
	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, sampleArxivFeedXML)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	papers, err := Fetch(context.Background(), ts.Client(), testQueryConfig())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	p := papers[0]
	if p.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q, embedded newline should collapse to a space", p.Title)
	}
	if p.Summary != "We propose a new architecture based solely on attention mechanisms." {
		t.Errorf("Summary = %q, embedded newline should collapse to a space", p.Summary)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "Ashish Vaswani" || p.Authors[1] != "Noam Shazeer" {
		t.Errorf("Authors = %v, want feed order [Ashish Vaswani, Noam Shazeer]", p.Authors)
	}
	if p.Published != "2017-06-12T17:57:34Z" {
		t.Errorf("Published = %q, want the raw feed timestamp", p.Published)
	}
	if p.URL != "http://arxiv.org/abs/1706.03762v1" {
		t.Errorf("URL = %q, want the alternate link", p.URL)
	}
	if p.Score != 0 {
		t.Errorf("Score = %d, want 0 before the relevance stage", p.Score)
	}

	// Feed order is preserved.
	if papers[1].Title != "BERT: Pre-training of Deep Bidirectional Transformers" {
		t.Errorf("papers[1].Title = %q, feed order should be kept", papers[1].Title)
	}

	// Query parameters: stable OR expression in input order, fixed sort.
	if got := gotQuery["search_query"][0]; got != "cat:cs.AI OR cat:cs.LG" {
		t.Errorf("search_query = %q, want %q", got, "cat:cs.AI OR cat:cs.LG")
	}
	if got := gotQuery["sortBy"][0]; got != "lastUpdatedDate" {
		t.Errorf("sortBy = %q, want lastUpdatedDate", got)
	}
	if got := gotQuery["sortOrder"][0]; got != "descending" {
		t.Errorf("sortOrder = %q, want descending", got)
	}
	if got := gotQuery["max_results"][0]; got != "10" {
		t.Errorf("max_results = %q, want 10", got)
	}
}

func TestFetchSkipsServiceEntries(t *testing.T) {
	ts := serveFeed(t, http.StatusOK, feedWithServiceEntryXML)

	papers, err := Fetch(context.Background(), ts.Client(), testQueryConfig())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("len(papers) = %d, want 1 (service entry skipped)", len(papers))
	}
	if papers[0].Title != "A Real Paper" {
		t.Errorf("Title = %q, want the genuine entry", papers[0].Title)
	}
}

func TestFetchEmptyFeed(t *testing.T) {
	ts := serveFeed(t, http.StatusOK, emptyFeedXML)

	papers, err := Fetch(context.Background(), ts.Client(), testQueryConfig())
	if err != nil {
		t.Fatalf("an empty feed is a success, got error: %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("len(papers) = %d, want 0", len(papers))
	}
}

func TestFetchHTTPErrorIsNetworkFailure(t *testing.T) {
	ts := serveFeed(t, http.StatusServiceUnavailable, "upstream unavailable")

	_, err := Fetch(context.Background(), ts.Client(), testQueryConfig())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("HTTP 503 should be ErrNetwork, got: %v", err)
	}
	if errors.Is(err, ErrParse) {
		t.Error("a status failure must not also be a parse failure")
	}
}

func TestFetchUnreachableIsNetworkFailure(t *testing.T) {
	ts := serveFeed(t, http.StatusOK, emptyFeedXML)
	ts.Close()

	_, err := Fetch(context.Background(), http.DefaultClient, testQueryConfig())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("connection failure should be ErrNetwork, got: %v", err)
	}
}

func TestFetchBadBodyIsParseFailure(t *testing.T) {
	ts := serveFeed(t, http.StatusOK, "this is not a feed")

	_, err := Fetch(context.Background(), ts.Client(), testQueryConfig())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("unparseable body should be ErrParse, got: %v", err)
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("a parse failure must not also be a network failure")
	}
}

func TestFetchCapsResults(t *testing.T) {
	ts := serveFeed(t, http.StatusOK, sampleArxivFeedXML)

	cfg := testQueryConfig()
	cfg.MaxResults = 1
	papers, err := Fetch(context.Background(), ts.Client(), cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 1 {
		t.Errorf("len(papers) = %d, want 1 even when the feed has more", len(papers))
	}
}

func TestFetchNoCategories(t *testing.T) {
	_, err := Fetch(context.Background(), http.DefaultClient, types.QueryConfig{})
	if err == nil {
		t.Fatal("expected an error for an empty category list")
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name           string
		cfg            types.QueryConfig
		wantExpr       string
		wantMaxResults string
	}{
		{
			name:           "single category",
			cfg:            types.QueryConfig{Categories: []string{"cs.AI"}, MaxResults: 10},
			wantExpr:       "cat:cs.AI",
			wantMaxResults: "10",
		},
		{
			name:           "categories joined in input order",
			cfg:            types.QueryConfig{Categories: []string{"cs.LG", "cs.AI", "stat.ML"}, MaxResults: 25},
			wantExpr:       "cat:cs.LG OR cat:cs.AI OR cat:stat.ML",
			wantMaxResults: "25",
		},
		{
			name:           "zero max falls back to default",
			cfg:            types.QueryConfig{Categories: []string{"cs.AI"}},
			wantExpr:       "cat:cs.AI",
			wantMaxResults: "10",
		},
		{
			name:           "max clamped to cap",
			cfg:            types.QueryConfig{Categories: []string{"cs.AI"}, MaxResults: 500},
			wantExpr:       "cat:cs.AI",
			wantMaxResults: "50",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuery(tt.cfg)
			if got := q.Get("search_query"); got != tt.wantExpr {
				t.Errorf("search_query = %q, want %q", got, tt.wantExpr)
			}
			if got := q.Get("max_results"); got != tt.wantMaxResults {
				t.Errorf("max_results = %q, want %q", got, tt.wantMaxResults)
			}
			if got := q.Get("sortBy"); got != "lastUpdatedDate" {
				t.Errorf("sortBy = %q, want lastUpdatedDate", got)
			}
			if got := q.Get("sortOrder"); got != "descending" {
				t.Errorf("sortOrder = %q, want descending", got)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Attention Is All\n  You Need", "Attention Is All You Need"},
		{"  leading and trailing  ", "leading and trailing"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"", ""},
		{"   \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := collapseWhitespace(tt.input); got != tt.want {
				t.Errorf("collapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
