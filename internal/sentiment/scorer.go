// Package sentiment scores text polarity with a bag-of-words lexicon. It is
// not real NLP: positive and negative term occurrences are counted and the
// difference is normalized by sentence count. The lexicons come from
// configuration so the scorer can be tuned or replaced wholesale.
package sentiment

import (
	"context"
	"regexp"
	"strings"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
	"github.com/investordaily/AI-Investor-Daily/internal/scrape"
)

// scanLimit bounds how much text is scored.
const scanLimit = 7000

var sentencePattern = regexp.MustCompile(`[.!?]+`)

// Scorer computes lexicon-based polarity scores.
type Scorer struct {
	positive []*regexp.Regexp
	negative []*regexp.Regexp
	client   *scrape.Client
}

// NewScorer creates a Scorer. The scrape client is used by ScoreURL to fetch
// page text first; it may be nil if only Score is used.
func NewScorer(cfg config.SentimentConfig, client *scrape.Client) *Scorer {
	return &Scorer{
		positive: compileTerms(cfg.Positive),
		negative: compileTerms(cfg.Negative),
		client:   client,
	}
}

// compileTerms turns lexicon words into whole-word patterns, so "gain" does
// not fire inside "against" or "win" inside "window".
func compileTerms(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		out = append(out, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

// Score returns (positive hits - negative hits) / sentence count for the
// given text. Lexicon terms match whole words only. Text beyond the scan
// limit is ignored. A text with no detectable sentences scores 0.
func (s *Scorer) Score(text string) float64 {
	lower := scrape.Truncate(strings.ToLower(text), scanLimit)

	sentences := len(sentencePattern.FindAllString(lower, -1))
	if sentences == 0 {
		return 0
	}

	var hits int
	for _, re := range s.positive {
		hits += len(re.FindAllStringIndex(lower, -1))
	}
	for _, re := range s.negative {
		hits -= len(re.FindAllStringIndex(lower, -1))
	}

	return float64(hits) / float64(sentences)
}

// ScoreURL fetches the page at the given URL and scores its extracted text.
// A fetch failure scores 0.
func (s *Scorer) ScoreURL(ctx context.Context, pageURL string) float64 {
	if s.client == nil {
		return 0
	}
	return s.Score(s.client.ArticleText(ctx, pageURL))
}
