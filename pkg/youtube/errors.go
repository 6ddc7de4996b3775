package youtube

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for transcript extraction. All support errors.Is.
var (
	// ErrVideoUnavailable indicates the video is private, removed or region
	// restricted.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrNoTranscript indicates the video has no caption tracks at all.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrInvalidVideoID indicates the supplied video id is malformed.
	ErrInvalidVideoID = errors.New("invalid video id")
)

// LanguageNotFoundError is returned when a requested language has no caption
// track. The available languages are carried so callers can surface them.
type LanguageNotFoundError struct {
	Requested string
	Available []string
}

func (e *LanguageNotFoundError) Error() string {
	return fmt.Sprintf("no transcript in language %q, available: %s",
		e.Requested, strings.Join(e.Available, ", "))
}
