package scrape

import (
	"context"
	"log/slog"
)

// minParagraphs is the minimum number of selector-scoped paragraphs before
// falling back to broader extraction strategies.
const minParagraphs = 3

// ArticleText fetches a page and returns its cleaned body text. When the
// selector-based extraction yields too little, go-readability takes over.
// Failures return an empty string; callers treat empty text as "skip this
// article" rather than an error.
func (c *Client) ArticleText(ctx context.Context, pageURL string) string {
	doc, err := c.document(ctx, pageURL)
	if err != nil {
		slog.Warn("failed to fetch article", "url", pageURL, "error", err)
		return ""
	}

	texts := paragraphs(doc)
	if len(texts) >= minParagraphs {
		return cleanText(texts)
	}

	full, err := c.readabilityText(pageURL, c.cfg.Timeout())
	if err != nil {
		slog.Warn("readability fallback failed", "url", pageURL, "error", err)
		return cleanText(texts)
	}
	return cleanText([]string{full})
}
