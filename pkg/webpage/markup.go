package webpage

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// paragraphFallbackThreshold is the minimum paragraph text length below which
// the markup strategy falls back to the document's full text.
const paragraphFallbackThreshold = 100

var whitespacePattern = regexp.MustCompile(`\s+`)

// MarkupStrategy is the last-resort generic strategy: parse the markup,
// drop script/style/chrome elements and join paragraph text.
type MarkupStrategy struct{}

// NewMarkupStrategy creates the goquery-backed strategy
func NewMarkupStrategy() *MarkupStrategy {
	return &MarkupStrategy{}
}

// Name implements Strategy
func (s *MarkupStrategy) Name() string {
	return "markup"
}

// Extract implements Strategy
func (s *MarkupStrategy) Extract(ctx context.Context, pageURL string, html string) (*Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	candidate := &Candidate{
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Metadata: make(map[string]string),
	}

	// Remove script, style and page chrome before collecting text
	doc.Find("script, style, header, footer, nav").Remove()

	var paragraphs []string
	doc.Find("p").Each(func(i int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	candidate.Text = strings.Join(paragraphs, "\n\n")

	// Too little paragraph text usually means the page does not use <p>
	// markup; take the whole document text instead
	if len(candidate.Text) < paragraphFallbackThreshold {
		candidate.Text = whitespacePattern.ReplaceAllString(doc.Find("body").Text(), " ")
		candidate.Text = strings.TrimSpace(candidate.Text)
	}

	if author := metaContent(doc, "meta[name='author']", "meta[property='article:author']"); author != "" {
		candidate.Metadata["author"] = author
	}
	if published := metaContent(doc, "meta[property='article:published_time']", "meta[name='date']"); published != "" {
		if parsed, err := dateparse.ParseAny(published); err == nil {
			candidate.Metadata["publish_date"] = parsed.Format(time.RFC3339)
		} else {
			candidate.Metadata["publish_date"] = published
		}
	}

	return candidate, nil
}

// metaContent returns the first non-empty content attribute among the selectors
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, exists := doc.Find(selector).First().Attr("content"); exists {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
