package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"content-extract/pkg/config"
	"content-extract/pkg/domain"
	"content-extract/pkg/httpclient"
	"content-extract/pkg/sentiment"
	"content-extract/pkg/source"
	"content-extract/pkg/webpage"
	"content-extract/pkg/youtube"
)

// YouTubeExtractor extracts a transcript result for a video id.
type YouTubeExtractor interface {
	Extract(ctx context.Context, videoID, preferredLanguage string) (*domain.ContentResult, error)
}

// WebExtractor extracts an article result for a page URL.
type WebExtractor interface {
	Extract(ctx context.Context, pageURL string) (*domain.ContentResult, error)
}

// QuoteAnalyzer ranks the strongest statements of one polarity in a text.
type QuoteAnalyzer interface {
	TopQuotes(bodyText string, kind domain.SentimentKind, topN int) (domain.SentimentSummary, error)
}

// SentimentOptions requests sentiment analysis on the extracted content.
type SentimentOptions struct {
	Kind domain.SentimentKind
	TopN int
}

// Options tune one Process call.
type Options struct {
	// Language is the preferred transcript language (YouTube only).
	Language string
	// Sentiment, when set, attaches a quote summary to the response.
	Sentiment *SentimentOptions
}

// Response is the stable output shape handed to the transport layer,
// regardless of source kind.
type Response struct {
	Status      string                     `json:"status"`
	URL         string                     `json:"url"`
	ContentType domain.Kind                `json:"content_type"`
	VideoID     string                     `json:"video_id,omitempty"`
	Language    string                     `json:"language,omitempty"`
	Title       string                     `json:"title,omitempty"`
	Text        string                     `json:"text"`
	Segments    []domain.TranscriptSegment `json:"segments,omitempty"`
	Metadata    map[string]string          `json:"metadata,omitempty"`
	Sentiment   *domain.SentimentSummary   `json:"sentiment,omitempty"`
	Warning     string                     `json:"warning,omitempty"`
}

// Processor is the orchestrator: classify, extract, normalize, optionally
// analyze. It holds no mutable state; concurrent Process calls are safe.
type Processor struct {
	youtube     YouTubeExtractor
	web         WebExtractor
	analyzer    QuoteAnalyzer
	defaultTopN int
}

// NewProcessor wires the real extractors and analyzer from configuration.
func NewProcessor(ctx context.Context, cfg *config.Config) (*Processor, error) {
	var metadataClient *youtube.MetadataClient
	if cfg.YouTube.APIKey != "" {
		client, err := youtube.NewMetadataClient(ctx, cfg.YouTube.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create metadata client: %w", err)
		}
		metadataClient = client
	}

	webClient := httpclient.NewClientWithTimeout(httpclient.BrowserClient, cfg.Extract.HTTPTimeout)

	return &Processor{
		youtube: youtube.NewExtractor(youtube.NewInnertubeProvider(), metadataClient),
		web: webpage.NewExtractor(
			webpage.WithHTTPClient(webClient),
			webpage.WithMinContentLength(cfg.Extract.MinContentLength),
		),
		analyzer: sentiment.NewAnalyzer(
			sentiment.WithMinScore(cfg.Sentiment.MinScore),
			sentiment.WithQuoteLengths(cfg.Sentiment.MinQuoteLength, cfg.Sentiment.MaxQuoteLength),
		),
		defaultTopN: cfg.Sentiment.DefaultTopN,
	}, nil
}

// NewProcessorWith wires explicit components; used by tests and the CLI.
func NewProcessorWith(yt YouTubeExtractor, web WebExtractor, analyzer QuoteAnalyzer, defaultTopN int) *Processor {
	if defaultTopN <= 0 {
		defaultTopN = sentiment.DefaultTopN
	}
	return &Processor{
		youtube:     yt,
		web:         web,
		analyzer:    analyzer,
		defaultTopN: defaultTopN,
	}
}

// Process runs one request end to end: classify the URL, dispatch to the
// matching extractor, normalize, then attach sentiment when requested.
// Extraction errors come back as a *Failure; sentiment errors only degrade
// the response with a warning.
func (p *Processor) Process(ctx context.Context, rawURL string, opts Options) (*Response, error) {
	src, err := source.Classify(rawURL)
	if err != nil {
		return nil, newFailure(FailInvalidURL, err.Error())
	}

	var result *domain.ContentResult
	switch src.Kind {
	case domain.KindYouTube:
		result, err = p.youtube.Extract(ctx, src.VideoID, opts.Language)
		if err != nil {
			return nil, p.classifyYouTubeError(err)
		}
	case domain.KindWebPage:
		result, err = p.web.Extract(ctx, src.Raw)
		if err != nil {
			if timeoutErr := timeoutFailure(ctx, err); timeoutErr != nil {
				return nil, timeoutErr
			}
			return nil, newFailure(FailFetch, err.Error())
		}
		if !result.Success {
			return nil, newFailure(FailNoExtractableContent, result.ErrorReason)
		}
	default:
		return nil, newFailure(FailInvalidURL, fmt.Sprintf("unrecognized source kind %q", src.Kind))
	}

	response := p.normalize(src, result)

	if opts.Sentiment != nil && response.Text != "" {
		topN := opts.Sentiment.TopN
		if topN <= 0 {
			topN = p.defaultTopN
		}
		summary, err := p.analyzer.TopQuotes(response.Text, opts.Sentiment.Kind, topN)
		if err != nil {
			// Content is already in hand; degrade instead of failing
			log.Printf("pipeline: sentiment analysis failed for %s: %v", rawURL, err)
			response.Warning = fmt.Sprintf("sentiment analysis unavailable: %v", err)
		} else {
			response.Sentiment = &summary
		}
	}

	return response, nil
}

// normalize maps an extractor result onto the stable response shape.
// Content itself is never transformed here, only reshaped.
func (p *Processor) normalize(src source.Source, result *domain.ContentResult) *Response {
	return &Response{
		Status:      "success",
		URL:         src.Raw,
		ContentType: result.Kind,
		VideoID:     src.VideoID,
		Language:    result.Meta("language"),
		Title:       result.Title,
		Text:        result.BodyText,
		Segments:    result.Segments,
		Metadata:    result.Metadata,
	}
}

// classifyYouTubeError maps YouTube extractor errors onto the failure taxonomy.
func (p *Processor) classifyYouTubeError(err error) *Failure {
	var langErr *youtube.LanguageNotFoundError
	if errors.As(err, &langErr) {
		failure := newFailure(FailLanguageNotFound, langErr.Error())
		failure.Metadata = map[string]string{
			"requested_language":  langErr.Requested,
			"available_languages": joinLanguages(langErr.Available),
		}
		return failure
	}

	switch {
	case errors.Is(err, youtube.ErrVideoUnavailable):
		return newFailure(FailVideoUnavailable, err.Error())
	case errors.Is(err, youtube.ErrNoTranscript):
		return newFailure(FailNoTranscript, err.Error())
	case errors.Is(err, youtube.ErrInvalidVideoID):
		return newFailure(FailInvalidURL, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return newFailure(FailTimeout, err.Error())
	default:
		return newFailure(FailFetch, err.Error())
	}
}

// timeoutFailure returns a Timeout failure when the error or context reflects
// an expired deadline, else nil.
func timeoutFailure(ctx context.Context, err error) *Failure {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newFailure(FailTimeout, err.Error())
	}
	return nil
}

func joinLanguages(languages []string) string {
	joined := ""
	for i, language := range languages {
		if i > 0 {
			joined += ","
		}
		joined += language
	}
	return joined
}
