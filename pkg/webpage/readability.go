package webpage

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ReadabilityStrategy extracts the full article with go-readability. Title
// resolution falls back to direct markup inspection when readability does not
// find one.
type ReadabilityStrategy struct{}

// NewReadabilityStrategy creates the readability-backed strategy
func NewReadabilityStrategy() *ReadabilityStrategy {
	return &ReadabilityStrategy{}
}

// Name implements Strategy
func (s *ReadabilityStrategy) Name() string {
	return "readability"
}

// Extract implements Strategy
func (s *ReadabilityStrategy) Extract(ctx context.Context, pageURL string, html string) (*Candidate, error) {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	candidate := &Candidate{
		Title:    strings.TrimSpace(article.Title),
		Text:     strings.TrimSpace(article.TextContent),
		Metadata: make(map[string]string),
	}

	if candidate.Title == "" {
		if title, err := extractTitleFromMarkup(html); err == nil {
			candidate.Title = title
		}
	}

	if byline := strings.TrimSpace(article.Byline); byline != "" {
		candidate.Metadata["author"] = byline
	}
	if siteName := strings.TrimSpace(article.SiteName); siteName != "" {
		candidate.Metadata["site_name"] = siteName
	}

	return candidate, nil
}

// extractTitleFromMarkup resolves a page title directly from HTML with
// fallback mechanisms: <title>, then <h1>, then og:title, then meta name=title
func extractTitleFromMarkup(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Try <title> tag
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	// Try <h1> tag (often the main heading)
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	// Try meta property="og:title"
	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	// Try meta name="title"
	if title, exists := doc.Find("meta[name='title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}
