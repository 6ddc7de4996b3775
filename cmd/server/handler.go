package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"content-extract/pkg/domain"
	"content-extract/pkg/pipeline"
	"content-extract/pkg/source"
	"content-extract/pkg/youtube"
)

// Handler is the thin transport shim over the pipeline: it parses requests,
// calls Process and serializes the result. No extraction logic lives here.
type Handler struct {
	processor *pipeline.Processor
	timeout   time.Duration
	mux       *http.ServeMux
}

// NewHandler builds the HTTP routing for the content extraction API.
func NewHandler(processor *pipeline.Processor, timeout time.Duration) *Handler {
	h := &Handler{
		processor: processor,
		timeout:   timeout,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("/", h.handleRoot)
	h.mux.HandleFunc("/content", h.handleContent)
	h.mux.HandleFunc("/transcript", h.handleTranscript)
	h.mux.HandleFunc("/webpage", h.handleWebpage)
	h.mux.HandleFunc("/quotes", h.handleQuotes)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// contentRequest is the request body accepted by every extraction endpoint.
// GET requests carry the same fields as query parameters.
type contentRequest struct {
	URL        string `json:"url"`
	Language   string `json:"language,omitempty"`
	FormatText bool   `json:"format_text,omitempty"`
	Sentiment  string `json:"sentiment,omitempty"`
	TopN       int    `json:"top_n,omitempty"`
}

// errorResponse is the JSON error shape.
type errorResponse struct {
	Status   string            `json:"status"`
	Kind     string            `json:"kind,omitempty"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Content Extraction API",
		"endpoints": map[string]string{
			"/content":    "Universal endpoint - automatically detects content type",
			"/transcript": "Extract transcript from YouTube video URL",
			"/webpage":    "Extract content from web page URL",
			"/quotes":     "Extract top positive/negative quotes from any URL",
		},
	})
}

// handleContent is the universal endpoint: YouTube or web page, decided by
// the classifier.
func (h *Handler) handleContent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	response, err := h.process(r.Context(), req, nil)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	if req.FormatText && len(response.Segments) > 0 {
		response.Text = youtube.FormatSegments(response.Segments)
	}

	writeJSON(w, http.StatusOK, response)
}

// handleTranscript serves YouTube URLs only.
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	src, err := source.Classify(req.URL)
	if err != nil || src.Kind != domain.KindYouTube {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Kind:    string(pipeline.FailInvalidURL),
			Message: "not a YouTube video URL",
		})
		return
	}

	response, err := h.process(r.Context(), req, nil)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	transcript := any(response.Segments)
	if req.FormatText {
		transcript = youtube.FormatSegments(response.Segments)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"video_id":   response.VideoID,
		"language":   response.Language,
		"transcript": transcript,
	})
}

// handleWebpage serves generic web page URLs only.
func (h *Handler) handleWebpage(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	src, err := source.Classify(req.URL)
	if err != nil || src.Kind != domain.KindWebPage {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Kind:    string(pipeline.FailInvalidURL),
			Message: "not a web page URL",
		})
		return
	}

	response, err := h.process(r.Context(), req, nil)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// handleQuotes extracts content and attaches a sentiment summary.
func (h *Handler) handleQuotes(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	kind := domain.SentimentKind(req.Sentiment)
	if kind == "" {
		kind = domain.SentimentPositive
	}
	if kind != domain.SentimentPositive && kind != domain.SentimentNegative {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Message: "sentiment must be \"positive\" or \"negative\"",
		})
		return
	}

	response, err := h.process(r.Context(), req, &pipeline.SentimentOptions{Kind: kind, TopN: req.TopN})
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// process applies the per-request deadline and runs the pipeline.
func (h *Handler) process(ctx context.Context, req *contentRequest, sentimentOpts *pipeline.SentimentOptions) (*pipeline.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return h.processor.Process(ctx, req.URL, pipeline.Options{
		Language:  req.Language,
		Sentiment: sentimentOpts,
	})
}

// parseRequest reads the request from JSON body (POST) or query parameters
// (GET). Returns false after writing an error response.
func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (*contentRequest, bool) {
	req := &contentRequest{FormatText: false}

	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid JSON body"})
			return nil, false
		}
	case http.MethodGet:
		query := r.URL.Query()
		req.URL = query.Get("url")
		req.Language = query.Get("language")
		req.FormatText = query.Get("format_text") == "true"
		req.Sentiment = query.Get("type")
		if topN := query.Get("top"); topN != "" {
			n, err := strconv.Atoi(topN)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Message: "top must be an integer"})
				return nil, false
			}
			req.TopN = n
		}
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Status: "error", Message: "method not allowed"})
		return nil, false
	}

	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Message: "url is required"})
		return nil, false
	}

	return req, true
}

// writeFailure maps a pipeline failure onto an HTTP status and JSON body.
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	failure := pipeline.AsFailure(err)
	if failure == nil {
		log.Printf("server: unclassified error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Message: err.Error()})
		return
	}

	writeJSON(w, statusForFailure(failure.Kind), errorResponse{
		Status:   "error",
		Kind:     string(failure.Kind),
		Message:  failure.Reason,
		Metadata: failure.Metadata,
	})
}

func statusForFailure(kind pipeline.FailureKind) int {
	switch kind {
	case pipeline.FailInvalidURL:
		return http.StatusBadRequest
	case pipeline.FailVideoUnavailable, pipeline.FailNoTranscript, pipeline.FailLanguageNotFound:
		return http.StatusNotFound
	case pipeline.FailNoExtractableContent:
		return http.StatusUnprocessableEntity
	case pipeline.FailTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}
