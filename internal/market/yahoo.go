package market

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"

	"github.com/investordaily/AI-Investor-Daily/internal/models"
)

// YahooProvider looks up quotes through the Yahoo Finance API via
// finance-go.
type YahooProvider struct {
	timeout time.Duration
}

// NewYahooProvider creates a YahooProvider with the given per-lookup
// timeout.
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	return &YahooProvider{timeout: timeout}
}

// LookupQuote fetches the current quote for a symbol. The finance-go client
// takes no context, so the deadline is enforced by abandoning the call when
// it expires; the stray goroutine finishes on the library's own HTTP
// timeout.
func (p *YahooProvider) LookupQuote(ctx context.Context, symbol string) (*models.QuoteSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type result struct {
		eq  *finance.Equity
		err error
	}
	ch := make(chan result, 1)
	go func() {
		eq, err := equity.Get(symbol)
		ch <- result{eq: eq, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("quote lookup for %q: %w", symbol, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("quote lookup for %q: %w", symbol, r.err)
		}
		if r.eq == nil || r.eq.RegularMarketPrice <= 0 {
			return nil, fmt.Errorf("quote lookup for %q: no tradable quote", symbol)
		}
		name := r.eq.ShortName
		if name == "" {
			name = r.eq.LongName
		}
		return &models.QuoteSnapshot{
			Symbol:        symbol,
			Price:         r.eq.RegularMarketPrice,
			MarketCap:     float64(r.eq.MarketCap),
			ChangePercent: r.eq.RegularMarketChangePercent,
			DisplayName:   name,
		}, nil
	}
}
