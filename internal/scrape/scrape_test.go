package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
)

func testClient() *Client {
	return NewClient(config.ScrapeConfig{
		PageTimeoutSeconds: 5,
		UserAgent:          "test-agent/1.0",
		SummaryWords:       10,
	})
}

func htmlPage(body string) string {
	return "<html><head><title>t</title></head><body>" + body + "</body></html>"
}

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func repeatParagraphs(n int, text string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "<p>%s paragraph %d</p>", text, i)
	}
	return sb.String()
}

func TestIsPaywalled(t *testing.T) {
	longArticle := "<article>" + repeatParagraphs(10, "Plenty of freely readable analysis about chips and models.") + "</article>"

	tests := []struct {
		name string
		html string
		want bool
	}{
		{
			name: "clean article",
			html: htmlPage(longArticle),
			want: false,
		},
		{
			name: "paywall phrase in text",
			html: htmlPage("<article>" + repeatParagraphs(5, "Teaser text.") + "<p>Subscribe to continue reading this story.</p></article>"),
			want: true,
		},
		{
			name: "paywall container present",
			html: htmlPage(longArticle + `<div class="paywall"></div>`),
			want: true,
		},
		{
			name: "metered container present",
			html: htmlPage(longArticle + `<div data-paywall="true"></div>`),
			want: true,
		},
		{
			name: "short text with continue reading marker",
			html: htmlPage("<article><p>Short teaser.</p><p>Continue reading on our site.</p><p>More.</p></article>"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.html)
			if got := testClient().IsPaywalled(context.Background(), srv.URL); got != tt.want {
				t.Errorf("IsPaywalled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPaywalled_FailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if !testClient().IsPaywalled(context.Background(), srv.URL) {
		t.Error("fetch failure should be treated as paywalled")
	}
	if !testClient().IsPaywalled(context.Background(), "http://127.0.0.1:1/unreachable") {
		t.Error("unreachable host should be treated as paywalled")
	}
}

func TestArticleText_ScopedSelectors(t *testing.T) {
	srv := serve(t, htmlPage(
		`<nav><p>Menu item</p></nav>`+
			`<article><p>First   body  line.</p><p>Second line.</p><p>Third line.</p></article>`+
			`<footer><p>Footer junk</p></footer>`))

	got := testClient().ArticleText(context.Background(), srv.URL)

	want := "First body line.\nSecond line.\nThird line."
	if got != want {
		t.Errorf("ArticleText = %q, want %q", got, want)
	}
}

func TestArticleText_FallsBackToAllParagraphs(t *testing.T) {
	// No article-scoped container, so the page-wide paragraph fallback
	// applies.
	srv := serve(t, htmlPage(`<div><p>One.</p><p>Two.</p><p>Three.</p><p>Four.</p></div>`))

	got := testClient().ArticleText(context.Background(), srv.URL)
	if !strings.Contains(got, "One.") || !strings.Contains(got, "Four.") {
		t.Errorf("ArticleText = %q, want all page paragraphs", got)
	}
}

func TestArticleText_FetchFailureReturnsEmpty(t *testing.T) {
	if got := testClient().ArticleText(context.Background(), "http://127.0.0.1:1/unreachable"); got != "" {
		t.Errorf("ArticleText on failure = %q, want empty string", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "shorter than limit unchanged",
			text:  "short",
			limit: 10,
			want:  "short",
		},
		{
			name:  "cut at limit",
			text:  "abcdef",
			limit: 4,
			want:  "abcd",
		},
		{
			name:  "cut backs off a split rune",
			text:  "abcé",
			limit: 4, // é is two bytes; a byte cut would leave half of it
			want:  "abc",
		},
		{
			name:  "cut inside a rune near the start",
			text:  "héllo",
			limit: 2,
			want:  "h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.limit); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWords int
		want     string
	}{
		{
			name:     "short text unchanged",
			text:     "a few words only",
			maxWords: 10,
			want:     "a few words only",
		},
		{
			name:     "long text truncated",
			text:     "one two three four five",
			maxWords: 3,
			want:     "one two three…",
		},
		{
			name:     "whitespace normalized",
			text:     "  spaced \n out  words ",
			maxWords: 10,
			want:     "spaced out words",
		},
		{
			name:     "empty text",
			text:     "",
			maxWords: 5,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.text, tt.maxWords); got != tt.want {
				t.Errorf("Summary(%q, %d) = %q, want %q", tt.text, tt.maxWords, got, tt.want)
			}
		})
	}
}
