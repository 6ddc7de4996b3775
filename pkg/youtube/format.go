package youtube

import (
	"fmt"
	"strings"

	"content-extract/pkg/domain"
)

// FormatSegments renders transcript segments as readable text, one line per
// segment with a [MM:SS] timestamp prefix.
func FormatSegments(segments []domain.TranscriptSegment) string {
	var b strings.Builder
	for _, segment := range segments {
		minutes := int(segment.Start) / 60
		seconds := int(segment.Start) % 60
		fmt.Fprintf(&b, "[%02d:%02d] %s\n", minutes, seconds, segment.Text)
	}
	return b.String()
}
