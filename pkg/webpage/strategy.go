package webpage

import "context"

// Candidate is the raw output of a single extraction strategy before the
// quality gate has judged it.
type Candidate struct {
	Title    string
	Text     string
	Metadata map[string]string
}

// Strategy is one independent extraction method. Implementations return their
// best effort for the given document; low-quality output is not an error, the
// chain's quality gate decides acceptance.
type Strategy interface {
	// Name identifies the strategy in result metadata
	Name() string

	// Extract runs the strategy over fetched HTML
	Extract(ctx context.Context, pageURL string, html string) (*Candidate, error)
}
