package market

import (
	"context"
	"hash/fnv"

	"github.com/investordaily/AI-Investor-Daily/internal/models"
)

// FallbackRatingsProvider produces deterministic stand-in rating counts when
// no real analyst data source is wired up. The numbers are keyed off a hash
// of the symbol so they are stable across runs, but they are a mock, not
// real analyst coverage. Swap in a real RatingsProvider to replace it.
type FallbackRatingsProvider struct{}

// NewFallbackRatingsProvider creates the mock provider.
func NewFallbackRatingsProvider() *FallbackRatingsProvider {
	return &FallbackRatingsProvider{}
}

// LookupRatings returns the deterministic {buy, hold, sell} triple for a
// symbol. It never fails.
func (p *FallbackRatingsProvider) LookupRatings(_ context.Context, symbol string) (models.RatingCounts, error) {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	n := h.Sum32()

	return models.RatingCounts{
		Buy:  3 + int(n%10),
		Hold: 1 + int(n/10%7),
		Sell: int(n / 100 % 4),
	}, nil
}
