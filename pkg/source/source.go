package source

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"content-extract/pkg/domain"
)

// ErrInvalidURL indicates the input does not parse as an absolute HTTP(S) URL.
var ErrInvalidURL = errors.New("invalid URL")

// Source is a classified input URL.
type Source struct {
	Raw  string
	Kind domain.Kind

	// VideoID is set only for YouTube sources.
	VideoID string
}

// videoIDPattern matches a YouTube video id. Canonical ids are 11 characters;
// shorter ids seen in legacy share links are accepted down to 6.
var videoIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{6,11}$`)

// Classify inspects a raw URL and decides whether it points at a YouTube video
// or a generic web page. YouTube URLs also yield the embedded video id.
// The decision is pure: no network access, no side effects.
func Classify(raw string) (Source, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Source{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return Source{}, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	if id := extractVideoID(parsed); id != "" {
		return Source{Raw: raw, Kind: domain.KindYouTube, VideoID: id}, nil
	}

	return Source{Raw: raw, Kind: domain.KindWebPage}, nil
}

// extractVideoID pulls the video id out of the known YouTube URL shapes:
// watch?v=, youtu.be/, /embed/, /shorts/ and /live/.
func extractVideoID(u *url.URL) string {
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))

	switch host {
	case "youtu.be":
		if id := firstPathSegment(u.Path); videoIDPattern.MatchString(id) {
			return id
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); videoIDPattern.MatchString(id) {
				return id
			}
			return ""
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := firstPathSegment(strings.TrimPrefix(u.Path, prefix)); videoIDPattern.MatchString(id) {
					return id
				}
			}
		}
	}

	return ""
}

// firstPathSegment returns the first path segment without slashes.
func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
