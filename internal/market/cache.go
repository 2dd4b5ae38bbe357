package market

import (
	"context"
	"sync"

	"github.com/investordaily/AI-Investor-Daily/internal/models"
)

// CachedQuoteProvider wraps a QuoteProvider with a per-run cache so each
// symbol is fetched at most once per execution. Failed lookups are cached
// too: a symbol that errored once stays "no data" for the rest of the run.
type CachedQuoteProvider struct {
	inner QuoteProvider

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	quote *models.QuoteSnapshot
	err   error
}

// NewCachedQuoteProvider wraps the given provider.
func NewCachedQuoteProvider(inner QuoteProvider) *CachedQuoteProvider {
	return &CachedQuoteProvider{
		inner:   inner,
		entries: make(map[string]cacheEntry),
	}
}

// LookupQuote returns the cached result for symbol, fetching it through the
// inner provider on first use.
func (c *CachedQuoteProvider) LookupQuote(ctx context.Context, symbol string) (*models.QuoteSnapshot, error) {
	c.mu.Lock()
	if entry, ok := c.entries[symbol]; ok {
		c.mu.Unlock()
		return entry.quote, entry.err
	}
	c.mu.Unlock()

	// The fetch happens outside the lock; a duplicate in-flight lookup for
	// the same symbol is possible but harmless, and the sequential ranking
	// stage never produces one.
	quote, err := c.inner.LookupQuote(ctx, symbol)

	c.mu.Lock()
	c.entries[symbol] = cacheEntry{quote: quote, err: err}
	c.mu.Unlock()

	return quote, err
}
