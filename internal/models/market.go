package models

// QuoteSnapshot is a point-in-time quote for a symbol, sourced from the
// external quote provider. It is read-only once created and cached per run.
type QuoteSnapshot struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	MarketCap     float64 `json:"market_cap"`
	ChangePercent float64 `json:"change_percent"`
	DisplayName   string  `json:"display_name,omitempty"`
}

// RatingCounts is an analyst-rating triple for a symbol.
type RatingCounts struct {
	Buy  int `json:"buy"`
	Hold int `json:"hold"`
	Sell int `json:"sell"`
}

// StockCandidate is a rankable ticker tied to the article it was extracted
// from. A candidate only scores once a quote with a positive price exists.
type StockCandidate struct {
	Symbol         string           `json:"symbol"`
	Article        ArticleCandidate `json:"article"`
	Quote          *QuoteSnapshot   `json:"quote,omitempty"`
	Ratings        RatingCounts     `json:"ratings"`
	SentimentScore float64          `json:"sentiment_score"`
	CompositeScore float64          `json:"composite_score"`
	IsSmallCap     bool             `json:"is_small_cap"`
	IsAiRelated    bool             `json:"is_ai_related"`
}
