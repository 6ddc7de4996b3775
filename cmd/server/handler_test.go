package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-extract/pkg/domain"
	"content-extract/pkg/pipeline"
	"content-extract/pkg/youtube"
)

type stubYouTube struct {
	result *domain.ContentResult
	err    error
}

func (s *stubYouTube) Extract(ctx context.Context, videoID, preferredLanguage string) (*domain.ContentResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubWeb struct {
	result *domain.ContentResult
	err    error
}

func (s *stubWeb) Extract(ctx context.Context, pageURL string) (*domain.ContentResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubAnalyzer struct {
	summary domain.SentimentSummary
	gotKind domain.SentimentKind
	gotTopN int
}

func (s *stubAnalyzer) TopQuotes(bodyText string, kind domain.SentimentKind, topN int) (domain.SentimentSummary, error) {
	s.gotKind = kind
	s.gotTopN = topN
	return s.summary, nil
}

func newTestHandler(yt pipeline.YouTubeExtractor, web pipeline.WebExtractor, analyzer pipeline.QuoteAnalyzer) *Handler {
	processor := pipeline.NewProcessorWith(yt, web, analyzer, 5)
	return NewHandler(processor, 5*time.Second)
}

func stubTranscript() *domain.ContentResult {
	result := &domain.ContentResult{
		Kind:     domain.KindYouTube,
		Title:    "Talk",
		BodyText: "first part second part",
		Segments: []domain.TranscriptSegment{
			{Start: 0, Duration: 3, Text: "first part"},
			{Start: 75, Duration: 3, Text: "second part"},
		},
		Success: true,
	}
	result.SetMeta("language", "en")
	return result
}

func stubArticle() *domain.ContentResult {
	return &domain.ContentResult{
		Kind:     domain.KindWebPage,
		Title:    "Post",
		BodyText: "article body text",
		Success:  true,
	}
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

func TestRootListsEndpoints(t *testing.T) {
	h := newTestHandler(&stubYouTube{}, &stubWeb{}, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, body, "endpoints")
}

func TestContentDispatchesYouTube(t *testing.T) {
	h := newTestHandler(&stubYouTube{result: stubTranscript()}, &stubWeb{}, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodPost, "/content",
		`{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "youtube", body["content_type"])
	assert.Equal(t, "dQw4w9WgXcQ", body["video_id"])
	assert.Equal(t, "first part second part", body["text"])
}

func TestContentDispatchesWebPage(t *testing.T) {
	h := newTestHandler(&stubYouTube{}, &stubWeb{result: stubArticle()}, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodGet, "/content?url=https://example.com/post", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "webpage", body["content_type"])
	assert.Equal(t, "article body text", body["text"])
}

func TestContentFormatText(t *testing.T) {
	h := newTestHandler(&stubYouTube{result: stubTranscript()}, &stubWeb{}, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodGet,
		"/content?url=https://youtu.be/dQw4w9WgXcQ&format_text=true", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[00:00] first part\n[01:15] second part\n", body["text"])
}

func TestContentRequiresURL(t *testing.T) {
	h := newTestHandler(&stubYouTube{}, &stubWeb{}, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodPost, "/content", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "error", body["status"])
}

func TestContentRejectsBadJSON(t *testing.T) {
	h := newTestHandler(&stubYouTube{}, &stubWeb{}, &stubAnalyzer{})

	recorder, _ := doJSON(t, h, http.MethodPost, "/content", `{"url": `)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTranscriptRejectsWebPageURL(t *testing.T) {
	h := newTestHandler(&stubYouTube{}, &stubWeb{result: stubArticle()}, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodPost, "/transcript",
		`{"url": "https://example.com/post"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, string(pipeline.FailInvalidURL), body["kind"])
}

func TestTranscriptReturnsSegments(t *testing.T) {
	h := newTestHandler(&stubYouTube{result: stubTranscript()}, &stubWeb{}, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodPost, "/transcript",
		`{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "en", body["language"])
	segments, ok := body["transcript"].([]any)
	require.True(t, ok, "transcript should be the segment list")
	assert.Len(t, segments, 2)
}

func TestWebpageRejectsYouTubeURL(t *testing.T) {
	h := newTestHandler(&stubYouTube{result: stubTranscript()}, &stubWeb{}, &stubAnalyzer{})

	recorder, _ := doJSON(t, h, http.MethodPost, "/webpage",
		`{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestQuotesPassesKindAndTopN(t *testing.T) {
	analyzer := &stubAnalyzer{summary: domain.SentimentSummary{
		Kind:      domain.SentimentNegative,
		TopQuotes: []domain.Quote{{Text: "terrible mistake overall", Score: -0.7, Rank: 1}},
	}}
	h := newTestHandler(&stubYouTube{}, &stubWeb{result: stubArticle()}, analyzer)

	recorder, body := doJSON(t, h, http.MethodGet,
		"/quotes?url=https://example.com/post&type=negative&top=2", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, domain.SentimentNegative, analyzer.gotKind)
	assert.Equal(t, 2, analyzer.gotTopN)
	require.Contains(t, body, "sentiment")
}

func TestQuotesRejectsUnknownKind(t *testing.T) {
	h := newTestHandler(&stubYouTube{}, &stubWeb{result: stubArticle()}, &stubAnalyzer{})

	recorder, _ := doJSON(t, h, http.MethodGet,
		"/quotes?url=https://example.com/post&type=mixed", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		ytErr      error
		wantStatus int
		wantKind   pipeline.FailureKind
	}{
		{
			name:       "video unavailable",
			ytErr:      youtube.ErrVideoUnavailable,
			wantStatus: http.StatusNotFound,
			wantKind:   pipeline.FailVideoUnavailable,
		},
		{
			name:       "no transcript",
			ytErr:      youtube.ErrNoTranscript,
			wantStatus: http.StatusNotFound,
			wantKind:   pipeline.FailNoTranscript,
		},
		{
			name:       "language not found",
			ytErr:      &youtube.LanguageNotFoundError{Requested: "fr", Available: []string{"en"}},
			wantStatus: http.StatusNotFound,
			wantKind:   pipeline.FailLanguageNotFound,
		},
		{
			name:       "timeout",
			ytErr:      context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantKind:   pipeline.FailTimeout,
		},
		{
			name:       "fetch error",
			ytErr:      assert.AnError,
			wantStatus: http.StatusBadGateway,
			wantKind:   pipeline.FailFetch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubYouTube{err: tt.ytErr}, &stubWeb{}, &stubAnalyzer{})

			recorder, body := doJSON(t, h, http.MethodPost, "/content",
				`{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, string(tt.wantKind), body["kind"])
		})
	}
}

func TestNoExtractableContentIsUnprocessable(t *testing.T) {
	web := &stubWeb{result: &domain.ContentResult{
		Kind:        domain.KindWebPage,
		Success:     false,
		ErrorReason: "all extraction strategies failed",
	}}
	h := newTestHandler(&stubYouTube{}, web, &stubAnalyzer{})

	recorder, body := doJSON(t, h, http.MethodPost, "/content",
		`{"url": "https://example.com/empty"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Equal(t, string(pipeline.FailNoExtractableContent), body["kind"])
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(&stubYouTube{}, &stubWeb{}, &stubAnalyzer{})

	recorder, _ := doJSON(t, h, http.MethodDelete, "/content", "")
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}
