package sentiment

import (
	"regexp"
	"strings"
)

var (
	timestampPattern  = regexp.MustCompile(`\[\d+:\d+\]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	pausePattern      = regexp.MustCompile(`[,;]\s+`)
)

// conjunctions are the secondary split points for overly long statements.
var conjunctions = []string{" and ", " but ", " or ", " so "}

// longStatementThreshold is the length above which a statement is re-split on
// pauses and conjunctions to get quotable units.
const longStatementThreshold = 100

// CleanText strips [MM:SS] transcript timestamps and collapses whitespace.
func CleanText(text string) string {
	cleaned := timestampPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
}

// SplitStatements segments text into statement-level units. Sentences are cut
// at terminal punctuation; long sentences are further cut at pauses and
// conjunctions. Units outside [minLength, maxLength) are dropped as noise.
func SplitStatements(text string, minLength, maxLength int) []string {
	var statements []string
	for _, sentence := range splitSentences(text) {
		if len(sentence) > longStatementThreshold {
			for _, unit := range splitLongSentence(sentence) {
				statements = appendStatement(statements, unit, minLength, maxLength)
			}
		} else {
			statements = appendStatement(statements, sentence, minLength, maxLength)
		}
	}
	return statements
}

// splitSentences cuts text after '.', '!' or '?' followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '.' && text[i] != '!' && text[i] != '?' {
			continue
		}
		// Consume a run of terminal punctuation
		end := i + 1
		for end < len(text) && (text[end] == '.' || text[end] == '!' || text[end] == '?') {
			end++
		}
		if end >= len(text) || text[end] == ' ' || text[end] == '\n' || text[end] == '\t' {
			sentences = append(sentences, strings.TrimSpace(text[start:end]))
			start = end
		}
		i = end - 1
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// splitLongSentence cuts a long sentence at pauses and conjunctions.
func splitLongSentence(sentence string) []string {
	units := pausePattern.Split(sentence, -1)
	for _, conjunction := range conjunctions {
		var next []string
		for _, unit := range units {
			next = append(next, strings.SplitAfter(unit, conjunction)...)
		}
		units = next
	}
	return units
}

func appendStatement(statements []string, unit string, minLength, maxLength int) []string {
	unit = strings.TrimSpace(unit)
	if len(unit) >= minLength && len(unit) < maxLength {
		statements = append(statements, unit)
	}
	return statements
}
