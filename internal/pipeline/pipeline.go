// Package pipeline orchestrates one newsletter run: collect feeds, scrape
// articles, extract and rank tickers, render, and write the output. Each
// stage's per-item failures are logged and skipped; only output I/O is
// fatal.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
	"github.com/investordaily/AI-Investor-Daily/internal/feeds"
	"github.com/investordaily/AI-Investor-Daily/internal/market"
	"github.com/investordaily/AI-Investor-Daily/internal/models"
	"github.com/investordaily/AI-Investor-Daily/internal/newsletter"
	"github.com/investordaily/AI-Investor-Daily/internal/output"
	"github.com/investordaily/AI-Investor-Daily/internal/rank"
	"github.com/investordaily/AI-Investor-Daily/internal/scrape"
	"github.com/investordaily/AI-Investor-Daily/internal/sentiment"
	"github.com/investordaily/AI-Investor-Daily/internal/subscribers"
	"github.com/investordaily/AI-Investor-Daily/internal/tickers"
)

// SubscriberSource yields the recipient list for a run.
type SubscriberSource interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Deps are the pipeline's collaborators. Zero-valued fields are replaced
// with production defaults by New; tests inject substitutes.
type Deps struct {
	Collector   *feeds.Collector
	Scraper     *scrape.Client
	Extractor   *tickers.Extractor
	Ranker      *rank.Ranker
	Subscribers SubscriberSource
	Writer      *output.Writer
	Now         func() time.Time
}

// Pipeline runs the whole batch once.
type Pipeline struct {
	cfg         *config.Config
	collector   *feeds.Collector
	scraper     *scrape.Client
	extractor   *tickers.Extractor
	ranker      *rank.Ranker
	subscribers SubscriberSource
	writer      *output.Writer
	now         func() time.Time
}

// New wires a Pipeline from configuration, filling any nil dependency with
// its production implementation.
func New(cfg *config.Config, deps Deps) *Pipeline {
	if deps.Collector == nil {
		deps.Collector = feeds.NewCollector(cfg.Feeds, cfg.Keywords, cfg.Scrape.UserAgent)
	}
	if deps.Scraper == nil {
		deps.Scraper = scrape.NewClient(cfg.Scrape)
	}
	if deps.Extractor == nil {
		deps.Extractor = tickers.NewExtractor(cfg.Keywords.Include)
	}
	if deps.Ranker == nil {
		quotes := market.NewCachedQuoteProvider(market.NewYahooProvider(cfg.Market.Timeout()))
		ratings := market.NewFallbackRatingsProvider()
		scorer := sentiment.NewScorer(cfg.Sentiment, deps.Scraper)
		deps.Ranker = rank.NewRanker(cfg.Ranking, cfg.Keywords, quotes, ratings, scorer)
	}
	if deps.Subscribers == nil {
		if src := subscribers.NewSheetsSource(cfg.Subscribers); src != nil {
			deps.Subscribers = src
		}
	}
	if deps.Writer == nil {
		deps.Writer = output.NewWriter(cfg.Output.Dir)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Pipeline{
		cfg:         cfg,
		collector:   deps.Collector,
		scraper:     deps.Scraper,
		extractor:   deps.Extractor,
		ranker:      deps.Ranker,
		subscribers: deps.Subscribers,
		writer:      deps.Writer,
		now:         deps.Now,
	}
}

// Run executes one newsletter generation pass.
func (p *Pipeline) Run(ctx context.Context) error {
	items := p.collector.CollectAll(ctx)
	slog.Info("collected feed items", "count", len(items))

	articles := p.fetchArticles(ctx, items)

	candidates := p.tickerCandidates(articles)
	slog.Info("extracted ticker candidates", "count", len(candidates))

	ranked := p.ranker.Rank(ctx, candidates)
	picks := p.ranker.SelectTop(ranked)
	slog.Info("selected picks", "ranked", len(ranked), "picks", len(picks))

	others := unpickedArticles(articles, picks)

	date := p.now().Format("2006-01-02")
	html, err := newsletter.Render(date, picks, others)
	if err != nil {
		return fmt.Errorf("rendering newsletter: %w", err)
	}

	if err := p.writer.Reset(); err != nil {
		return err
	}
	path, err := p.writer.WriteNewsletter(date, html)
	if err != nil {
		return err
	}
	slog.Info("wrote newsletter", "path", path)

	if p.cfg.Output.WriteRecipients {
		if err := p.writeRecipients(ctx); err != nil {
			return err
		}
	}
	return nil
}

// fetchArticles scrapes body text for every collected item with a bounded
// worker pool. Paywalled and unscrapable pages yield articles with empty
// bodies; the item itself is never dropped, so it can still appear in the
// "other articles" section. Input order is preserved.
func (p *Pipeline) fetchArticles(ctx context.Context, items []models.FeedItem) []models.ArticleCandidate {
	articles := make([]models.ArticleCandidate, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Feeds.MaxConcurrent)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			article := models.ArticleCandidate{FeedItem: item}

			if p.scraper.IsPaywalled(ctx, item.Link) {
				slog.Info("skipping paywalled article", "url", item.Link)
			} else if body := p.scraper.ArticleText(ctx, item.Link); body != "" {
				article.BodyText = body
				article.Summary = scrape.Summary(body, p.cfg.Scrape.SummaryWords)
			}
			if article.Summary == "" {
				article.Summary = scrape.Summary(item.Snippet, p.cfg.Scrape.SummaryWords)
			}

			article.ExtractedSymbols = p.extractor.Extract(item.Title + " " + article.BodyText)

			// Workers write disjoint indices, so no lock is needed.
			articles[i] = article
			return nil
		})
	}
	_ = g.Wait()

	return articles
}

// tickerCandidates maps each unique symbol to the newest article that
// mentioned it. Items are already newest-first, so the first sighting wins.
func (p *Pipeline) tickerCandidates(articles []models.ArticleCandidate) []rank.Candidate {
	seen := make(map[string]bool)
	var candidates []rank.Candidate
	for _, article := range articles {
		for _, sym := range article.ExtractedSymbols {
			if seen[sym] {
				continue
			}
			seen[sym] = true
			candidates = append(candidates, rank.Candidate{Symbol: sym, Article: article})
		}
	}
	return candidates
}

// unpickedArticles returns the articles not backing any pick, preserving
// newest-first order.
func unpickedArticles(articles []models.ArticleCandidate, picks []models.StockCandidate) []models.ArticleCandidate {
	picked := make(map[string]bool, len(picks))
	for _, pick := range picks {
		picked[pick.Article.Link] = true
	}

	var others []models.ArticleCandidate
	for _, article := range articles {
		if !picked[article.Link] {
			others = append(others, article)
		}
	}
	return others
}

// writeRecipients fetches the subscriber list and writes the recipients
// file. Subscriber failures degrade to an empty list and skip the file.
func (p *Pipeline) writeRecipients(ctx context.Context) error {
	if p.subscribers == nil {
		return nil
	}

	emails, err := p.subscribers.Fetch(ctx)
	if err != nil {
		slog.Warn("failed to fetch subscriber list", "error", err)
		return nil
	}
	if len(emails) == 0 {
		return nil
	}

	path, err := p.writer.WriteRecipients(subscribers.RecipientsLine(emails))
	if err != nil {
		return err
	}
	slog.Info("wrote recipients", "path", path, "count", len(emails))
	return nil
}
