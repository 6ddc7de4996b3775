package youtube

import (
	"context"

	"content-extract/pkg/domain"
)

// TrackList is the set of caption tracks available for a video, together with
// the video details the listing call happens to return.
type TrackList struct {
	Tracks []domain.CaptionTrack
	Title  string
	Author string
}

// TranscriptProvider is the black-box transcript capability: list the caption
// tracks of a video and fetch the segments of one track.
type TranscriptProvider interface {
	// ListTracks returns the available caption tracks for a video.
	// Fails with ErrVideoUnavailable when the video cannot be reached.
	ListTracks(ctx context.Context, videoID string) (*TrackList, error)

	// FetchTrack downloads one caption track as ordered segments
	FetchTrack(ctx context.Context, track domain.CaptionTrack) ([]domain.TranscriptSegment, error)
}
