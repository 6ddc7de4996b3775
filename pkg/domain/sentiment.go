package domain

// SentimentKind selects which polarity of statements to surface.
type SentimentKind string

const (
	SentimentPositive SentimentKind = "positive"
	SentimentNegative SentimentKind = "negative"
)

// Quote is one statement extracted from body text with its polarity score.
type Quote struct {
	Text  string  `json:"quote"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// SentimentSummary holds the top-N quotes of one polarity, strongest first.
type SentimentSummary struct {
	Kind      SentimentKind `json:"type"`
	TopQuotes []Quote       `json:"top_quotes"`
}
