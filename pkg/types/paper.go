// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper holds the normalized metadata for one arXiv entry. The fetch stage
// constructs every field except Score; the relevance stage sets Score on the
// papers it keeps and never touches anything else.
type Paper struct {
	// Title is the paper title with embedded line breaks collapsed to spaces.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in feed order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication timestamp exactly as the feed provided it
	// (RFC 3339). The relevance stage parses it; a timestamp without a zone
	// is interpreted as UTC.
	Published string `json:"published" yaml:"published"`

	// Summary is the abstract, whitespace-normalized like Title.
	Summary string `json:"summary" yaml:"summary"`

	// URL is the canonical abstract page for the paper.
	URL string `json:"url" yaml:"url"`

	// Score is the count of configured keywords found in the title and
	// summary. Zero until the relevance stage has run.
	Score int `json:"score,omitempty" yaml:"score,omitempty"`
}
