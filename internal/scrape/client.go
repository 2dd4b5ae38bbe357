// Package scrape fetches article pages and turns them into clean text. It
// also classifies pages as paywalled before the pipeline spends time on them.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
)

// articleSelectors are tried first so that navigation, comments, and footer
// paragraphs don't pollute the extracted text.
const articleSelectors = "article p, [itemprop=articleBody] p, .article-body p, .post-content p, .entry-content p"

// Client fetches and parses article pages.
type Client struct {
	http *http.Client
	cfg  config.ScrapeConfig
}

// NewClient creates a Client with the configured page timeout and
// User-Agent.
func NewClient(cfg config.ScrapeConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout()},
		cfg:  cfg,
	}
}

// document fetches a URL and parses it into a goquery document.
func (c *Client) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %q: %w", pageURL, err)
	}
	c.browserHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: HTTP %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %q: %w", pageURL, err)
	}
	return doc, nil
}

// browserHeaders sets browser-like request headers so sites that check
// Accept or User-Agent don't reject the request.
func (c *Client) browserHeaders(r *http.Request) {
	r.Header.Set("User-Agent", c.cfg.UserAgent)
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

// paragraphs extracts paragraph texts from the article-scoped selectors,
// falling back to every paragraph on the page when too few are found.
func paragraphs(doc *goquery.Document) []string {
	texts := selectionTexts(doc.Find(articleSelectors))
	if len(texts) < 3 {
		texts = selectionTexts(doc.Find("p"))
	}
	return texts
}

func selectionTexts(sel *goquery.Selection) []string {
	var texts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			texts = append(texts, t)
		}
	})
	return texts
}

// cleanText collapses runs of whitespace inside each paragraph and joins
// paragraphs with single newlines.
func cleanText(paragraphs []string) string {
	cleaned := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if collapsed := strings.Join(strings.Fields(p), " "); collapsed != "" {
			cleaned = append(cleaned, collapsed)
		}
	}
	return strings.Join(cleaned, "\n")
}

// readabilityText extracts the main readable text of a page with
// go-readability. Used as a last resort when selector extraction comes up
// short. The pinned go-readability release predates the request-modifier
// variant of FromURL, so the fetch (timeout client, browser headers, HTML
// content-type check) is done here and the body handed to FromReader,
// which runs the same parser.
func (c *Client) readabilityText(pageURL string, timeout time.Duration) (string, error) {
	parsedURL, err := url.ParseRequestURI(pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction: failed to parse URL: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("readability extraction: failed to fetch the page: %v", err)
	}
	c.browserHeaders(req)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("readability extraction: failed to fetch the page: %v", err)
	}
	defer resp.Body.Close()

	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", fmt.Errorf("readability extraction: URL is not a HTML document")
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction: %w", err)
	}
	return article.TextContent, nil
}

// Truncate cuts text to at most limit bytes without splitting a multi-byte
// rune: the cut backs up to the nearest rune boundary.
func Truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

// Summary returns the first maxWords whitespace-delimited words of text.
func Summary(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "…"
}
