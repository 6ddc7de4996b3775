package domain

// Kind identifies what type of source a URL points at.
type Kind string

const (
	KindYouTube Kind = "youtube"
	KindWebPage Kind = "webpage"
)

// TranscriptSegment is one timestamped caption unit from a video transcript.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// CaptionTrack describes one transcript track available for a video.
type CaptionTrack struct {
	Language        string `json:"language"`
	Name            string `json:"name,omitempty"`
	IsAutoGenerated bool   `json:"is_auto_generated"`

	// BaseURL is the provider-specific fetch location for the track.
	// Empty for tracks listed by fake providers in tests.
	BaseURL string `json:"-"`
}

// ContentResult is the single shape both extractors produce.
type ContentResult struct {
	Kind        Kind                `json:"content_type"`
	Title       string              `json:"title,omitempty"`
	BodyText    string              `json:"text"`
	Segments    []TranscriptSegment `json:"segments,omitempty"`
	Metadata    map[string]string   `json:"metadata,omitempty"`
	Success     bool                `json:"success"`
	ErrorReason string              `json:"error_reason,omitempty"`
}

// Meta returns a metadata value, or "" when absent.
func (r *ContentResult) Meta(key string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}

// SetMeta records a metadata value, allocating the map on first use.
func (r *ContentResult) SetMeta(key, value string) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]string)
	}
	r.Metadata[key] = value
}
