package webpage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"content-extract/pkg/domain"
	"content-extract/pkg/httpclient"
)

// ErrFetchFailed indicates the page itself could not be downloaded, before any
// extraction strategy ran.
var ErrFetchFailed = errors.New("failed to fetch page")

// DefaultMinContentLength is the default quality gate: extracted body text
// shorter than this is treated as a failed extraction attempt.
const DefaultMinContentLength = 200

// Extractor runs an ordered chain of extraction strategies over a fetched page
// and keeps the first result that passes the quality gate.
type Extractor struct {
	client           *httpclient.HTTPClient
	strategies       []Strategy
	minContentLength int
}

// Option configures the extractor
type Option func(*Extractor)

// WithStrategies replaces the default strategy chain
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// WithMinContentLength overrides the quality gate threshold
func WithMinContentLength(n int) Option {
	return func(e *Extractor) {
		e.minContentLength = n
	}
}

// WithHTTPClient replaces the page fetcher client
func WithHTTPClient(client *httpclient.HTTPClient) Option {
	return func(e *Extractor) {
		e.client = client
	}
}

// NewExtractor creates an extractor with the default chain:
// trafilatura, then readability, then generic markup parsing
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		client: httpclient.NewClient(httpclient.BrowserClient),
		strategies: []Strategy{
			NewTrafilaturaStrategy(),
			NewReadabilityStrategy(),
			NewMarkupStrategy(),
		},
		minContentLength: DefaultMinContentLength,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract fetches the page and runs the strategy chain over it. Strategy
// failures are not errors: a failed strategy is the next one's cue. When every
// strategy fails the gate, the last attempt is returned with Success=false and
// all failure reasons recorded. Only an unreachable page returns an error.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*domain.ContentResult, error) {
	start := time.Now()

	body, err := e.client.GetBody(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	html := string(body)

	var failures []string
	var lastCandidate *Candidate
	var lastName string

	for _, strategy := range e.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate, err := strategy.Extract(ctx, pageURL, html)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", strategy.Name(), err))
			continue
		}

		lastCandidate = candidate
		lastName = strategy.Name()

		if len(strings.TrimSpace(candidate.Text)) >= e.minContentLength {
			log.Printf("webpage: %s extracted %d chars from %s in %v", strategy.Name(), len(candidate.Text), pageURL, time.Since(start))
			return e.buildResult(candidate, strategy.Name(), true, ""), nil
		}

		failures = append(failures, fmt.Sprintf("%s: content below quality gate (%d chars)", strategy.Name(), len(strings.TrimSpace(candidate.Text))))
	}

	reason := "all extraction strategies failed: " + strings.Join(failures, "; ")
	log.Printf("webpage: no strategy passed the quality gate for %s", pageURL)

	if lastCandidate == nil {
		result := &domain.ContentResult{
			Kind:        domain.KindWebPage,
			Success:     false,
			ErrorReason: reason,
		}
		return result, nil
	}

	// Last attempt, with all failure reasons recorded
	return e.buildResult(lastCandidate, lastName, false, reason), nil
}

// buildResult maps a strategy candidate onto the common result shape
func (e *Extractor) buildResult(candidate *Candidate, method string, success bool, reason string) *domain.ContentResult {
	result := &domain.ContentResult{
		Kind:        domain.KindWebPage,
		Title:       candidate.Title,
		BodyText:    candidate.Text,
		Success:     success,
		ErrorReason: reason,
	}

	for key, value := range candidate.Metadata {
		result.SetMeta(key, value)
	}
	result.SetMeta("method", method)

	return result
}
