package pipeline

import "errors"

// FailureKind classifies why a request could not produce content.
type FailureKind string

const (
	FailInvalidURL           FailureKind = "invalid_url"
	FailVideoUnavailable     FailureKind = "video_unavailable"
	FailNoTranscript         FailureKind = "no_transcript_available"
	FailLanguageNotFound     FailureKind = "language_not_found"
	FailFetch                FailureKind = "fetch_failed"
	FailNoExtractableContent FailureKind = "no_extractable_content"
	FailTimeout              FailureKind = "timeout"
)

// Failure is the typed error a request ends with when content extraction
// cannot succeed. Sentiment-stage problems never become a Failure; they
// degrade the response with a warning instead.
type Failure struct {
	Kind     FailureKind
	Reason   string
	Metadata map[string]string
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Reason
}

// newFailure builds a Failure without metadata.
func newFailure(kind FailureKind, reason string) *Failure {
	return &Failure{Kind: kind, Reason: reason}
}

// AsFailure extracts the typed failure from an error, or nil.
func AsFailure(err error) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return nil
}
