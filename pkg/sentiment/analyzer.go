package sentiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonreiter/govader"

	"content-extract/pkg/domain"
)

// Scorer is the black-box polarity capability: a signed score in [-1, 1]
// where sign is polarity and magnitude is strength.
type Scorer interface {
	Score(text string) float64
}

// VaderScorer scores text with the VADER lexicon's compound score.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a VADER-backed scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements Scorer.
func (s *VaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

// Default thresholds, tuned against transcript text.
const (
	DefaultMinScore       = 0.2
	DefaultMinQuoteLength = 20
	DefaultMaxQuoteLength = 200
	DefaultTopN           = 5
)

// Analyzer extracts the strongest positive or negative statements from text.
type Analyzer struct {
	scorer         Scorer
	minScore       float64
	minQuoteLength int
	maxQuoteLength int
}

// AnalyzerOption configures the analyzer.
type AnalyzerOption func(*Analyzer)

// WithScorer replaces the polarity scorer.
func WithScorer(scorer Scorer) AnalyzerOption {
	return func(a *Analyzer) {
		a.scorer = scorer
	}
}

// WithMinScore sets the minimum |score| a statement must reach to qualify.
func WithMinScore(minScore float64) AnalyzerOption {
	return func(a *Analyzer) {
		a.minScore = minScore
	}
}

// WithQuoteLengths sets the accepted statement length range.
func WithQuoteLengths(minLength, maxLength int) AnalyzerOption {
	return func(a *Analyzer) {
		a.minQuoteLength = minLength
		a.maxQuoteLength = maxLength
	}
}

// NewAnalyzer creates an analyzer with VADER scoring and default thresholds.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		scorer:         NewVaderScorer(),
		minScore:       DefaultMinScore,
		minQuoteLength: DefaultMinQuoteLength,
		maxQuoteLength: DefaultMaxQuoteLength,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// scoredStatement pairs a statement with its score.
type scoredStatement struct {
	text  string
	score float64
}

// TopQuotes segments body text into statements, scores each and returns the
// top-N of the requested polarity, strongest first. Ties keep original
// statement order. Empty text yields an empty summary, not a failure.
func (a *Analyzer) TopQuotes(bodyText string, kind domain.SentimentKind, topN int) (domain.SentimentSummary, error) {
	if kind != domain.SentimentPositive && kind != domain.SentimentNegative {
		return domain.SentimentSummary{}, fmt.Errorf("unknown sentiment type %q", kind)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	summary := domain.SentimentSummary{
		Kind:      kind,
		TopQuotes: []domain.Quote{},
	}

	cleaned := CleanText(bodyText)
	if cleaned == "" {
		return summary, nil
	}

	var matched []scoredStatement
	for _, statement := range SplitStatements(cleaned, a.minQuoteLength, a.maxQuoteLength) {
		score := a.scorer.Score(statement)
		if math.Abs(score) < a.minScore {
			continue
		}
		if kind == domain.SentimentPositive && score <= 0 {
			continue
		}
		if kind == domain.SentimentNegative && score >= 0 {
			continue
		}
		matched = append(matched, scoredStatement{text: statement, score: score})
	}

	// Stable sort keeps original statement order on ties, which makes the
	// output reproducible run to run
	sort.SliceStable(matched, func(i, j int) bool {
		return math.Abs(matched[i].score) > math.Abs(matched[j].score)
	})

	if len(matched) > topN {
		matched = matched[:topN]
	}

	for i, statement := range matched {
		summary.TopQuotes = append(summary.TopQuotes, domain.Quote{
			Text:  statement.text,
			Score: statement.score,
			Rank:  i + 1,
		})
	}

	return summary, nil
}
