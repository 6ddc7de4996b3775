package webpage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html>
<head>
	<title>On Testing</title>
	<meta name="author" content="Jane Roe">
	<meta property="article:published_time" content="2024-03-01T10:00:00Z">
</head>
<body>
	<header><a href="/">Home</a></header>
	<nav><a href="/about">About</a></nav>
	<article>
		<h1>On Testing</h1>
		<p>Writing tests before the implementation forces a clear statement of what the code should do.</p>
		<p>Once that statement exists, the implementation becomes a matter of satisfying it rather than guessing.</p>
		<p>Teams that skip this step tend to discover their requirements in production instead of in review.</p>
	</article>
	<footer>Copyright nobody</footer>
	<script>console.log("tracking")</script>
</body>
</html>`

func TestMarkupStrategy(t *testing.T) {
	strategy := NewMarkupStrategy()
	candidate, err := strategy.Extract(context.Background(), "https://example.com/on-testing", articleHTML)
	require.NoError(t, err)

	assert.Equal(t, "markup", strategy.Name())
	assert.Equal(t, "On Testing", candidate.Title)
	assert.Contains(t, candidate.Text, "Writing tests before the implementation")
	assert.Contains(t, candidate.Text, "discover their requirements in production")
	assert.NotContains(t, candidate.Text, "tracking", "script content must be stripped")
	assert.NotContains(t, candidate.Text, "Copyright", "footer content must be stripped")
	assert.Equal(t, "Jane Roe", candidate.Metadata["author"])
	assert.Equal(t, "2024-03-01T10:00:00Z", candidate.Metadata["publish_date"])
}

func TestMarkupStrategyFallsBackWithoutParagraphs(t *testing.T) {
	html := `<html><head><title>Bare</title></head><body><div>` +
		strings.Repeat("words without paragraph markup ", 20) + `</div></body></html>`

	strategy := NewMarkupStrategy()
	candidate, err := strategy.Extract(context.Background(), "https://example.com/bare", html)
	require.NoError(t, err)

	assert.Contains(t, candidate.Text, "words without paragraph markup")
}

func TestReadabilityStrategy(t *testing.T) {
	strategy := NewReadabilityStrategy()
	candidate, err := strategy.Extract(context.Background(), "https://example.com/on-testing", articleHTML)
	require.NoError(t, err)

	assert.Equal(t, "readability", strategy.Name())
	assert.Contains(t, candidate.Text, "Writing tests before the implementation")
}

func TestTrafilaturaStrategy(t *testing.T) {
	strategy := NewTrafilaturaStrategy()
	candidate, err := strategy.Extract(context.Background(), "https://example.com/on-testing", articleHTML)
	require.NoError(t, err)

	assert.Equal(t, "trafilatura", strategy.Name())
	assert.Contains(t, candidate.Text, "Writing tests before the implementation")
}

func TestExtractTitleFromMarkupFallbacks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title tag",
			html: `<html><head><title>From Title Tag</title></head><body></body></html>`,
			want: "From Title Tag",
		},
		{
			name: "h1 fallback",
			html: `<html><body><h1>From Heading</h1></body></html>`,
			want: "From Heading",
		},
		{
			name: "og:title fallback",
			html: `<html><head><meta property="og:title" content="From OG"></head><body></body></html>`,
			want: "From OG",
		},
		{
			name: "meta name fallback",
			html: `<html><head><meta name="title" content="From Meta"></head><body></body></html>`,
			want: "From Meta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, err := extractTitleFromMarkup(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, title)
		})
	}
}

func TestExtractTitleFromMarkupMissing(t *testing.T) {
	_, err := extractTitleFromMarkup(`<html><body><p>no title anywhere</p></body></html>`)
	assert.Error(t, err)
}
