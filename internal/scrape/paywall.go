package scrape

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// paywallScanLimit bounds how much extracted text is scanned for
	// paywall phrases.
	paywallScanLimit = 4000

	// shortTextLimit marks extracted text as implausibly short for a real
	// article page.
	shortTextLimit = 400
)

// paywallPhrases are matched as substrings against the lowercased page text.
var paywallPhrases = []string{
	"subscribe to continue",
	"subscription required",
	"subscribers only",
	"sign in to read",
	"log in to continue",
	"create a free account",
	"already a subscriber",
	"to continue reading",
	"unlock this article",
	"this content is for members",
	"start your free trial",
}

// paywallSelectors are container selectors used by common metering vendors.
var paywallSelectors = []string{
	".paywall",
	"#paywall",
	".meteredContent",
	".piano-offer",
	".tp-modal",
	"[data-paywall]",
	".subscription-required",
}

// IsPaywalled reports whether the page at the given URL appears to be behind
// a paywall. Any fetch or parse failure is treated as paywalled: showing a
// broken or access-gated article is worse than skipping a readable one.
func (c *Client) IsPaywalled(ctx context.Context, pageURL string) bool {
	doc, err := c.document(ctx, pageURL)
	if err != nil {
		slog.Warn("paywall check failed, treating as paywalled", "url", pageURL, "error", err)
		return true
	}

	text := Truncate(cleanText(paragraphs(doc)), paywallScanLimit)
	lower := strings.ToLower(text)

	for _, phrase := range paywallPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, sel := range paywallSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	if len(lower) < shortTextLimit && strings.Contains(lower, "continue reading") {
		return true
	}
	return false
}
