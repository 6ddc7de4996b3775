package webpage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

// TrafilaturaStrategy extracts the main content of a page with trafilatura's
// boilerplate-removal algorithm. First strategy in the default chain.
type TrafilaturaStrategy struct{}

// NewTrafilaturaStrategy creates the trafilatura-backed strategy
func NewTrafilaturaStrategy() *TrafilaturaStrategy {
	return &TrafilaturaStrategy{}
}

// Name implements Strategy
func (s *TrafilaturaStrategy) Name() string {
	return "trafilatura"
}

// Extract implements Strategy
func (s *TrafilaturaStrategy) Extract(ctx context.Context, pageURL string, html string) (*Candidate, error) {
	opts := trafilatura.Options{
		ExcludeComments: true,
	}
	if parsed, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = parsed
	}

	result, err := trafilatura.Extract(strings.NewReader(html), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura extraction failed: %w", err)
	}

	candidate := &Candidate{
		Title:    strings.TrimSpace(result.Metadata.Title),
		Text:     strings.TrimSpace(result.ContentText),
		Metadata: make(map[string]string),
	}

	if author := strings.TrimSpace(result.Metadata.Author); author != "" {
		candidate.Metadata["author"] = author
	}
	if !result.Metadata.Date.IsZero() {
		candidate.Metadata["publish_date"] = result.Metadata.Date.Format(time.RFC3339)
	}
	if sitename := strings.TrimSpace(result.Metadata.Sitename); sitename != "" {
		candidate.Metadata["site_name"] = sitename
	}

	return candidate, nil
}
