// Package market resolves ticker symbols to quote snapshots and analyst
// rating counts. Lookups are independently fallible: a provider error means
// "no data for this symbol", never a failed run.
package market

import (
	"context"

	"github.com/investordaily/AI-Investor-Daily/internal/models"
)

// QuoteProvider resolves a symbol to a point-in-time quote snapshot.
type QuoteProvider interface {
	LookupQuote(ctx context.Context, symbol string) (*models.QuoteSnapshot, error)
}

// RatingsProvider resolves a symbol to analyst rating counts.
type RatingsProvider interface {
	LookupRatings(ctx context.Context, symbol string) (models.RatingCounts, error)
}
