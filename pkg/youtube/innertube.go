package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"content-extract/pkg/domain"
	"content-extract/pkg/httpclient"
)

const (
	// defaultPlayerEndpoint is the Innertube API endpoint that lists caption
	// tracks (among other player data) for a video.
	defaultPlayerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	// defaultClientName identifies web requests to the Innertube API.
	defaultClientName = "WEB"
	// defaultClientVersion is the client version for web requests.
	defaultClientVersion = "2.20240101.00.00"
)

var videoIDShape = regexp.MustCompile(`^[0-9A-Za-z_-]{6,11}$`)

// InnertubeProvider implements TranscriptProvider against YouTube's internal
// Innertube player endpoint and the per-track timedtext URLs it returns.
type InnertubeProvider struct {
	client         *httpclient.HTTPClient
	playerEndpoint string
}

// ProviderOption configures the Innertube provider.
type ProviderOption func(*InnertubeProvider)

// WithPlayerEndpoint overrides the player endpoint (used in tests).
func WithPlayerEndpoint(endpoint string) ProviderOption {
	return func(p *InnertubeProvider) {
		p.playerEndpoint = endpoint
	}
}

// WithClient overrides the HTTP client.
func WithClient(client *httpclient.HTTPClient) ProviderOption {
	return func(p *InnertubeProvider) {
		p.client = client
	}
}

// NewInnertubeProvider creates an Innertube-backed transcript provider.
func NewInnertubeProvider(opts ...ProviderOption) *InnertubeProvider {
	p := &InnertubeProvider{
		client:         httpclient.NewClientWithTimeout(httpclient.BrowserClient, 30*time.Second),
		playerEndpoint: defaultPlayerEndpoint,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// playerRequest is the Innertube player request body.
type playerRequest struct {
	Context clientContext `json:"context"`
	VideoID string        `json:"videoId"`
}

// clientContext identifies the client making the request.
type clientContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

// playerResponse is the subset of the player response we consume.
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails struct {
		VideoID string `json:"videoId"`
		Title   string `json:"title"`
		Author  string `json:"author"`
	} `json:"videoDetails"`
}

// captionTrack is one caption track entry in the player response.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

// ListTracks implements TranscriptProvider by querying the player endpoint.
func (p *InnertubeProvider) ListTracks(ctx context.Context, videoID string) (*TrackList, error) {
	if !videoIDShape.MatchString(videoID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVideoID, videoID)
	}

	reqBody := playerRequest{
		Context: clientContext{
			Client: innertubeClient{
				ClientName:    defaultClientName,
				ClientVersion: defaultClientVersion,
				HL:            "en",
				GL:            "US",
			},
		},
		VideoID: videoID,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal player request: %w", err)
	}

	resp, err := p.client.Post(ctx, p.playerEndpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("player request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player endpoint returned status %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}

	switch player.PlayabilityStatus.Status {
	case "", "OK":
		// playable
	case "LOGIN_REQUIRED", "UNPLAYABLE", "ERROR":
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, player.PlayabilityStatus.Reason)
	default:
		return nil, fmt.Errorf("%w: playability status %s", ErrVideoUnavailable, player.PlayabilityStatus.Status)
	}

	list := &TrackList{
		Title:  player.VideoDetails.Title,
		Author: player.VideoDetails.Author,
	}

	if player.Captions != nil {
		for _, track := range player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
			list.Tracks = append(list.Tracks, domain.CaptionTrack{
				Language:        track.LanguageCode,
				Name:            track.displayName(),
				IsAutoGenerated: track.Kind == "asr",
				BaseURL:         track.BaseURL,
			})
		}
	}

	return list, nil
}

// displayName resolves the human-readable track name from either response shape.
func (t captionTrack) displayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var parts []string
	for _, run := range t.Name.Runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, "")
}

// timedtextResponse is the json3 timedtext payload for one track.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

// timedtextEvent is a single timed caption event.
type timedtextEvent struct {
	TStartMs    int64              `json:"tStartMs"`
	DDurationMs int64              `json:"dDurationMs"`
	Segs        []timedtextSegment `json:"segs,omitempty"`
}

// timedtextSegment is a text fragment within an event.
type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// FetchTrack implements TranscriptProvider by downloading a track's timedtext
// data in json3 format.
func (p *InnertubeProvider) FetchTrack(ctx context.Context, track domain.CaptionTrack) ([]domain.TranscriptSegment, error) {
	if track.BaseURL == "" {
		return nil, fmt.Errorf("caption track for %q has no fetch URL", track.Language)
	}

	fetchURL := track.BaseURL
	if strings.Contains(fetchURL, "?") {
		fetchURL += "&fmt=json3"
	} else {
		fetchURL += "?fmt=json3"
	}

	body, err := p.client.GetBody(ctx, fetchURL)
	if err != nil {
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}

	segments, err := parseTimedtext(body)
	if err != nil {
		return nil, fmt.Errorf("parse timedtext response: %w", err)
	}

	return segments, nil
}

// parseTimedtext converts a json3 timedtext payload into transcript segments.
func parseTimedtext(data []byte) ([]domain.TranscriptSegment, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal timedtext JSON: %w", err)
	}

	var segments []domain.TranscriptSegment
	for _, event := range resp.Events {
		// Events without segs carry window styling, not captions
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		trimmed := strings.TrimSpace(text.String())
		if trimmed == "" {
			continue
		}

		segments = append(segments, domain.TranscriptSegment{
			Start:    float64(event.TStartMs) / 1000.0,
			Duration: float64(event.DDurationMs) / 1000.0,
			Text:     trimmed,
		})
	}

	return segments, nil
}
