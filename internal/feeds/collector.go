package feeds

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
	"github.com/investordaily/AI-Investor-Daily/internal/models"
)

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// Collector fetches the configured RSS feeds, filters items by keyword, and
// merges the survivors into a single newest-first list.
type Collector struct {
	client   *http.Client
	feeds    config.FeedsConfig
	keywords config.KeywordsConfig
	now      func() time.Time
}

// NewCollector creates a Collector with an HTTP client configured with the
// feed timeout and a descriptive User-Agent.
func NewCollector(feeds config.FeedsConfig, keywords config.KeywordsConfig, userAgent string) *Collector {
	return &Collector{
		client: &http.Client{
			Timeout: feeds.Timeout(),
			Transport: &userAgentTransport{
				base:      http.DefaultTransport,
				userAgent: userAgent,
			},
		},
		feeds:    feeds,
		keywords: keywords,
		now:      time.Now,
	}
}

// userAgentTransport wraps an http.RoundTripper to inject a custom
// User-Agent header on every request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,*/*;q=0.8")
	return t.base.RoundTrip(req)
}

// CollectAll fetches every configured feed with bounded concurrency. A feed
// that fails to fetch or parse is logged and skipped; partial results are
// acceptable. The merged result is sorted by publish date descending.
func (c *Collector) CollectAll(ctx context.Context) []models.FeedItem {
	var (
		items []models.FeedItem
		mu    sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.feeds.MaxConcurrent)

	for _, src := range c.feeds.Sources {
		src := src
		g.Go(func() error {
			feedItems, err := c.collectFeed(ctx, src)
			if err != nil {
				slog.Warn("failed to fetch feed",
					"source", src.Name,
					"url", src.URL,
					"error", err,
				)
				return nil // skip failures, don't fail the batch
			}

			mu.Lock()
			items = append(items, feedItems...)
			mu.Unlock()

			slog.Info("fetched feed", "source", src.Name, "items", len(feedItems))
			return nil
		})
	}

	// Worker errors are swallowed above; Wait only propagates ctx errors.
	_ = g.Wait()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	return items
}

// collectFeed retrieves and parses a single feed, returning the items that
// pass the keyword filter, capped at MaxItemsPerFeed.
func (c *Collector) collectFeed(ctx context.Context, src config.FeedSource) ([]models.FeedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.feeds.Timeout())
	defer cancel()

	fp := gofeed.NewParser()
	fp.Client = c.client

	feed, err := fp.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", src.URL, err)
	}

	return c.filterItems(src, feed), nil
}

// filterItems converts gofeed items into FeedItems, keeping only those whose
// title or snippet matches the keyword rules. Items without a parseable
// publish date fall back to now, so they sort as newest.
func (c *Collector) filterItems(src config.FeedSource, feed *gofeed.Feed) []models.FeedItem {
	now := c.now()

	var items []models.FeedItem
	for _, item := range feed.Items {
		if len(items) >= c.feeds.MaxItemsPerFeed {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}

		snippet := stripHTML(item.Description)
		if !MatchesKeywords(item.Title+" "+snippet, c.keywords.Include, c.keywords.Exclude) {
			continue
		}

		publishedAt := now
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		items = append(items, models.FeedItem{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: publishedAt,
			SourceName:  src.Name,
			Snippet:     snippet,
		})
	}
	return items
}

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return html.UnescapeString(clean)
}
