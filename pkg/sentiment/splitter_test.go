package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	cleaned := CleanText("[00:00] hello   there\n[12:34] general\tkenobi")
	assert.Equal(t, "hello there general kenobi", cleaned)
}

func TestSplitStatementsSentenceBoundaries(t *testing.T) {
	text := "The first sentence sets the scene properly. Did the second one ask a question? The third one ends with a bang!"
	statements := SplitStatements(text, 20, 200)

	require.Len(t, statements, 3)
	assert.Equal(t, "The first sentence sets the scene properly.", statements[0])
	assert.Equal(t, "Did the second one ask a question?", statements[1])
	assert.Equal(t, "The third one ends with a bang!", statements[2])
}

func TestSplitStatementsDropsShortUnits(t *testing.T) {
	text := "Yes. No. This statement is comfortably long enough to keep around."
	statements := SplitStatements(text, 20, 200)

	require.Len(t, statements, 1)
	assert.Contains(t, statements[0], "comfortably long enough")
}

func TestSplitStatementsDropsOverlongUnits(t *testing.T) {
	// Over maxLength with no pause or conjunction to split at
	text := strings.Repeat("x", 250) + "."
	statements := SplitStatements(text, 20, 200)
	assert.Empty(t, statements)
}

func TestSplitStatementsResplitsLongSentences(t *testing.T) {
	text := "The opening segment ran long and covered the history of the project, the maintainers wanted to give proper context before the demo started for the audience."
	statements := SplitStatements(text, 20, 200)

	require.NotEmpty(t, statements)
	for _, statement := range statements {
		assert.Less(t, len(statement), 200)
		assert.GreaterOrEqual(t, len(statement), 20)
	}
	// The comma split produced more than one unit from one long sentence
	assert.Greater(t, len(statements), 1)
}

func TestSplitStatementsNoTerminalPunctuation(t *testing.T) {
	text := "a trailing fragment without any terminal punctuation at all"
	statements := SplitStatements(text, 20, 200)

	require.Len(t, statements, 1)
	assert.Equal(t, text, statements[0])
}

func TestSplitStatementsHandlesEllipsis(t *testing.T) {
	text := "The pause stretched on and on... Then the audience finally reacted to it."
	statements := SplitStatements(text, 20, 200)

	require.Len(t, statements, 2)
	assert.Equal(t, "The pause stretched on and on...", statements[0])
}
