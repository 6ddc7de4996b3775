package youtube

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"content-extract/pkg/domain"
)

// Extractor turns a video id into a transcript result. Track selection policy,
// in order: exact preferred-language match, the video's default manual track,
// any auto-generated track.
type Extractor struct {
	provider TranscriptProvider
	metadata *MetadataClient
}

// NewExtractor creates a transcript extractor on top of a provider.
// The metadata client may be nil; enrichment is skipped without it.
func NewExtractor(provider TranscriptProvider, metadata *MetadataClient) *Extractor {
	return &Extractor{
		provider: provider,
		metadata: metadata,
	}
}

// Extract fetches the best available transcript for a video.
//
// When preferredLanguage is supplied but absent, extraction fails hard with
// LanguageNotFoundError carrying the available languages. Unlike the web
// extractor there is no further fallback once the transcript call fails.
func (e *Extractor) Extract(ctx context.Context, videoID, preferredLanguage string) (*domain.ContentResult, error) {
	list, err := e.provider.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if len(list.Tracks) == 0 {
		return nil, fmt.Errorf("%w for video %s", ErrNoTranscript, videoID)
	}

	track, err := selectTrack(list.Tracks, preferredLanguage)
	if err != nil {
		return nil, err
	}

	segments, err := e.provider.FetchTrack(ctx, track)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: track %q is empty", ErrNoTranscript, track.Language)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})

	result := &domain.ContentResult{
		Kind:     domain.KindYouTube,
		Title:    list.Title,
		BodyText: flattenSegments(segments),
		Segments: segments,
		Success:  true,
	}
	result.SetMeta("language", track.Language)
	if track.IsAutoGenerated {
		result.SetMeta("auto_generated", "true")
	}
	if list.Author != "" {
		result.SetMeta("author", list.Author)
	}

	e.enrich(ctx, videoID, result)

	return result, nil
}

// AvailableLanguages lists the caption languages of a video.
func (e *Extractor) AvailableLanguages(ctx context.Context, videoID string) ([]string, error) {
	list, err := e.provider.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return trackLanguages(list.Tracks), nil
}

// selectTrack applies the selection policy over the available tracks.
func selectTrack(tracks []domain.CaptionTrack, preferredLanguage string) (domain.CaptionTrack, error) {
	if preferredLanguage != "" {
		for _, track := range tracks {
			if strings.EqualFold(track.Language, preferredLanguage) {
				return track, nil
			}
		}
		return domain.CaptionTrack{}, &LanguageNotFoundError{
			Requested: preferredLanguage,
			Available: trackLanguages(tracks),
		}
	}

	// Default track: first manually created one
	for _, track := range tracks {
		if !track.IsAutoGenerated {
			return track, nil
		}
	}

	// Otherwise any auto-generated track
	return tracks[0], nil
}

// trackLanguages returns the deduplicated language codes in listing order.
func trackLanguages(tracks []domain.CaptionTrack) []string {
	seen := make(map[string]bool)
	var languages []string
	for _, track := range tracks {
		if !seen[track.Language] {
			seen[track.Language] = true
			languages = append(languages, track.Language)
		}
	}
	return languages
}

// flattenSegments joins segment text with single spaces, preserving order.
func flattenSegments(segments []domain.TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		parts = append(parts, segment.Text)
	}
	return strings.Join(parts, " ")
}

// enrich attaches Data API metadata when a client is configured.
// Lookup failures only log; the transcript is already in hand.
func (e *Extractor) enrich(ctx context.Context, videoID string, result *domain.ContentResult) {
	if e.metadata == nil {
		return
	}

	details, err := e.metadata.VideoDetails(ctx, videoID)
	if err != nil {
		log.Printf("youtube: metadata lookup failed for %s: %v", videoID, err)
		return
	}

	if result.Title == "" {
		result.Title = details.Title
	}
	if details.ChannelTitle != "" {
		result.SetMeta("channel", details.ChannelTitle)
	}
	if details.PublishedAt != "" {
		result.SetMeta("publish_date", details.PublishedAt)
	}
}
