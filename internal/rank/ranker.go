// Package rank scores stock candidates and selects the newsletter's top
// picks. Scoring favors small-cap, AI-related names; selection guarantees
// category diversity before pure score order.
package rank

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
	"github.com/investordaily/AI-Investor-Daily/internal/market"
	"github.com/investordaily/AI-Investor-Daily/internal/models"
)

// SentimentScorer is the slice of the sentiment package the ranker needs.
type SentimentScorer interface {
	Score(text string) float64
	ScoreURL(ctx context.Context, pageURL string) float64
}

// Candidate pairs an extracted symbol with the article it came from.
type Candidate struct {
	Symbol  string
	Article models.ArticleCandidate
}

// Ranker resolves candidates against market data and produces the ranked
// pick list.
type Ranker struct {
	cfg      config.RankingConfig
	keywords []string
	quotes   market.QuoteProvider
	ratings  market.RatingsProvider
	scorer   SentimentScorer
	newsURL  func(symbol string) string
}

// NewRanker creates a Ranker. The quote provider should be the per-run
// cached one so repeated symbols cost a single fetch.
func NewRanker(cfg config.RankingConfig, keywords config.KeywordsConfig, quotes market.QuoteProvider, ratings market.RatingsProvider, scorer SentimentScorer) *Ranker {
	return &Ranker{
		cfg:      cfg,
		keywords: keywords.Include,
		quotes:   quotes,
		ratings:  ratings,
		scorer:   scorer,
		newsURL: func(symbol string) string {
			return "https://finance.yahoo.com/quote/" + symbol
		},
	}
}

// Rank resolves, scores, and orders the given candidates, dropping any
// without a tradable quote or without small-cap/AI relevance. The returned
// slice is sorted by composite score descending, ties broken by buy count
// then change percent.
func (r *Ranker) Rank(ctx context.Context, candidates []Candidate) []models.StockCandidate {
	var ranked []models.StockCandidate
	for _, cand := range candidates {
		sc, ok := r.evaluate(ctx, cand)
		if !ok {
			continue
		}
		ranked = append(ranked, sc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.Ratings.Buy != b.Ratings.Buy {
			return a.Ratings.Buy > b.Ratings.Buy
		}
		return a.Quote.ChangePercent > b.Quote.ChangePercent
	})
	return ranked
}

// evaluate resolves one candidate. ok is false when the candidate should be
// dropped: no quote, non-positive price, or neither small-cap nor
// AI-related.
func (r *Ranker) evaluate(ctx context.Context, cand Candidate) (models.StockCandidate, bool) {
	quote, err := r.quotes.LookupQuote(ctx, cand.Symbol)
	if err != nil || quote == nil || quote.Price <= 0 {
		if err != nil {
			slog.Debug("no quote for candidate", "symbol", cand.Symbol, "error", err)
		}
		return models.StockCandidate{}, false
	}

	smallCap := quote.MarketCap >= r.cfg.SmallCapFloor && quote.MarketCap <= r.cfg.SmallCapCeiling
	aiRelated := r.isAiRelated(cand.Article)
	if !smallCap && !aiRelated {
		return models.StockCandidate{}, false
	}

	ratings, err := r.ratings.LookupRatings(ctx, cand.Symbol)
	if err != nil {
		slog.Warn("ratings lookup failed", "symbol", cand.Symbol, "error", err)
		ratings = models.RatingCounts{}
	}

	// Prefer the provider's news page for sentiment; fall back to the
	// article's own text when that yields nothing.
	sent := r.scorer.ScoreURL(ctx, r.newsURL(cand.Symbol))
	if sent == 0 {
		sent = r.scorer.Score(cand.Article.BodyText)
	}

	sc := models.StockCandidate{
		Symbol:         cand.Symbol,
		Article:        cand.Article,
		Quote:          quote,
		Ratings:        ratings,
		SentimentScore: sent,
		IsSmallCap:     smallCap,
		IsAiRelated:    aiRelated,
	}
	sc.CompositeScore = r.composite(sc)
	return sc, true
}

// isAiRelated reports whether any domain keyword appears in the article's
// title or body.
func (r *Ranker) isAiRelated(article models.ArticleCandidate) bool {
	text := strings.ToLower(article.Title + " " + article.BodyText)
	for _, kw := range r.keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// composite combines the category flags, ratings, sentiment, and momentum
// into one weighted score.
func (r *Ranker) composite(sc models.StockCandidate) float64 {
	score := r.cfg.WeightBuy*float64(sc.Ratings.Buy) +
		r.cfg.WeightHold*float64(sc.Ratings.Hold) +
		r.cfg.WeightSentiment*sc.SentimentScore +
		r.cfg.WeightChangePercent*sc.Quote.ChangePercent
	if sc.IsSmallCap {
		score += r.cfg.WeightSmallCap
	}
	if sc.IsAiRelated {
		score += r.cfg.WeightAiRelated
	}
	return score
}

// SelectTop applies the two-tier selection over an already-ranked list: up
// to DesiredSmallCapCount picks that are both small-cap and AI-related, then
// the remaining slots (up to MaxPicks total) from the rest in rank order.
func (r *Ranker) SelectTop(ranked []models.StockCandidate) []models.StockCandidate {
	picks := make([]models.StockCandidate, 0, r.cfg.MaxPicks)
	taken := make(map[int]bool, r.cfg.MaxPicks)

	for i, sc := range ranked {
		if len(picks) >= r.cfg.DesiredSmallCapCount {
			break
		}
		if sc.IsSmallCap && sc.IsAiRelated {
			picks = append(picks, sc)
			taken[i] = true
		}
	}

	for i, sc := range ranked {
		if len(picks) >= r.cfg.MaxPicks {
			break
		}
		if !taken[i] {
			picks = append(picks, sc)
		}
	}
	return picks
}
