package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration. Every tunable the pipeline
// depends on lives here so that tests can substitute values instead of
// reaching for package-level constants.
type Config struct {
	Feeds       FeedsConfig       `toml:"feeds"`
	Keywords    KeywordsConfig    `toml:"keywords"`
	Scrape      ScrapeConfig      `toml:"scrape"`
	Market      MarketConfig      `toml:"market"`
	Sentiment   SentimentConfig   `toml:"sentiment"`
	Ranking     RankingConfig     `toml:"ranking"`
	Subscribers SubscribersConfig `toml:"subscribers"`
	Output      OutputConfig      `toml:"output"`
}

// FeedSource is a single RSS feed to poll.
type FeedSource struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// FeedsConfig holds RSS collection settings.
type FeedsConfig struct {
	Sources         []FeedSource `toml:"sources"`
	MaxItemsPerFeed int          `toml:"max_items_per_feed"`
	TimeoutSeconds  int          `toml:"timeout_seconds"`
	MaxConcurrent   int          `toml:"max_concurrent"`
}

// Timeout returns the per-feed fetch timeout.
func (c FeedsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// KeywordsConfig holds the inclusion/exclusion keyword lists used to filter
// feed items. The inclusion list doubles as the AI-relevance test during
// ranking and as the domain-keyword exclusion set during ticker extraction.
type KeywordsConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// ScrapeConfig holds article page fetching settings.
type ScrapeConfig struct {
	PageTimeoutSeconds int    `toml:"page_timeout_seconds"`
	UserAgent          string `toml:"user_agent"`
	SummaryWords       int    `toml:"summary_words"`
}

// Timeout returns the per-page fetch timeout.
func (c ScrapeConfig) Timeout() time.Duration {
	return time.Duration(c.PageTimeoutSeconds) * time.Second
}

// MarketConfig holds quote provider settings.
type MarketConfig struct {
	QuoteTimeoutSeconds int `toml:"quote_timeout_seconds"`
}

// Timeout returns the per-quote lookup timeout.
func (c MarketConfig) Timeout() time.Duration {
	return time.Duration(c.QuoteTimeoutSeconds) * time.Second
}

// SentimentConfig holds the polarity lexicons. The scorer is a plain
// bag-of-words counter, so changing these lists changes scores directly.
type SentimentConfig struct {
	Positive []string `toml:"positive"`
	Negative []string `toml:"negative"`
}

// RankingConfig holds composite-score weights and selection settings.
type RankingConfig struct {
	MaxPicks             int     `toml:"max_picks"`
	DesiredSmallCapCount int     `toml:"desired_small_cap_count"`
	SmallCapFloor        float64 `toml:"small_cap_floor"`
	SmallCapCeiling      float64 `toml:"small_cap_ceiling"`
	WeightSmallCap       float64 `toml:"weight_small_cap"`
	WeightAiRelated      float64 `toml:"weight_ai_related"`
	WeightBuy            float64 `toml:"weight_buy"`
	WeightHold           float64 `toml:"weight_hold"`
	WeightSentiment      float64 `toml:"weight_sentiment"`
	WeightChangePercent  float64 `toml:"weight_change_percent"`
}

// SubscribersConfig holds the optional Google Sheets subscriber list source.
// An empty spreadsheet ID disables the lookup entirely.
type SubscribersConfig struct {
	SpreadsheetID  string `toml:"spreadsheet_id"`
	ReadRange      string `toml:"read_range"`
	CredentialsEnv string `toml:"credentials_env"`
}

// OutputConfig holds output directory settings.
type OutputConfig struct {
	Dir             string `toml:"dir"`
	WriteRecipients bool   `toml:"write_recipients"`
}

const defaultConfigContent = `[feeds]
max_items_per_feed = 10
timeout_seconds = 15
max_concurrent = 4

[[feeds.sources]]
name = "TechCrunch AI"
url = "https://techcrunch.com/category/artificial-intelligence/feed/"

[[feeds.sources]]
name = "VentureBeat AI"
url = "https://venturebeat.com/category/ai/feed/"

[[feeds.sources]]
name = "The Verge AI"
url = "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml"

[keywords]
# Built-in include/exclude lists apply when these are omitted.
# include = ["AI", "artificial intelligence"]
# exclude = ["sports"]

[scrape]
page_timeout_seconds = 10
summary_words = 60

[market]
quote_timeout_seconds = 8

[ranking]
max_picks = 5
desired_small_cap_count = 3

[subscribers]
spreadsheet_id = ""
read_range = "Subscribers!A2:A"
credentials_env = "GOOGLE_SERVICE_ACCOUNT_JSON"

[output]
dir = "./dist"
write_recipients = true
`

// Load reads and parses the TOML config from the given path. If the file
// does not exist, a default config file is created there first. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg, md)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config populated entirely from built-in defaults,
// without touching the filesystem. Tests build on top of this.
func Default() *Config {
	var cfg Config
	md, _ := toml.Decode("", &cfg)
	applyDefaults(&cfg, md)
	return &cfg
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// applyDefaults sets default values for zero-valued fields. Ranking fields
// consult the decode metadata: a zero written in the file is an explicit
// setting (a disabled weight, no reserved small-cap slots) and is kept.
func applyDefaults(cfg *Config, md toml.MetaData) {
	ranking := func(key string) bool { return md.IsDefined("ranking", key) }
	if len(cfg.Feeds.Sources) == 0 {
		cfg.Feeds.Sources = []FeedSource{
			{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/"},
			{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed/"},
			{Name: "The Verge AI", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml"},
		}
	}
	if cfg.Feeds.MaxItemsPerFeed == 0 {
		cfg.Feeds.MaxItemsPerFeed = 10
	}
	if cfg.Feeds.TimeoutSeconds == 0 {
		cfg.Feeds.TimeoutSeconds = 15
	}
	if cfg.Feeds.MaxConcurrent == 0 {
		cfg.Feeds.MaxConcurrent = 4
	}

	if len(cfg.Keywords.Include) == 0 {
		cfg.Keywords.Include = []string{
			"AI", "artificial intelligence", "machine learning", "LLM",
			"neural", "deep learning", "generative", "chatbot", "GPT",
			"robotics", "autonomous",
		}
	}
	if len(cfg.Keywords.Exclude) == 0 {
		cfg.Keywords.Exclude = []string{
			"sports", "celebrity", "horoscope", "recipe", "sponsored content",
		}
	}

	if cfg.Scrape.PageTimeoutSeconds == 0 {
		cfg.Scrape.PageTimeoutSeconds = 10
	}
	if cfg.Scrape.UserAgent == "" {
		cfg.Scrape.UserAgent = "Mozilla/5.0 (compatible; AIInvestorDaily/1.0; +https://github.com/investordaily/AI-Investor-Daily)"
	}
	if cfg.Scrape.SummaryWords == 0 {
		cfg.Scrape.SummaryWords = 60
	}

	if cfg.Market.QuoteTimeoutSeconds == 0 {
		cfg.Market.QuoteTimeoutSeconds = 8
	}

	if len(cfg.Sentiment.Positive) == 0 {
		cfg.Sentiment.Positive = []string{
			"surge", "soar", "gain", "growth", "record", "beat", "strong",
			"rally", "breakthrough", "profit", "upgrade", "outperform",
			"bullish", "innovative", "partnership", "expansion", "win",
			"success", "momentum", "optimistic",
		}
	}
	if len(cfg.Sentiment.Negative) == 0 {
		cfg.Sentiment.Negative = []string{
			"plunge", "drop", "fall", "loss", "miss", "weak", "lawsuit",
			"decline", "downgrade", "underperform", "bearish", "layoff",
			"investigation", "recall", "bankruptcy", "fraud", "warning",
			"slump", "crash", "pessimistic",
		}
	}

	if cfg.Ranking.MaxPicks == 0 && !ranking("max_picks") {
		cfg.Ranking.MaxPicks = 5
	}
	if cfg.Ranking.DesiredSmallCapCount == 0 && !ranking("desired_small_cap_count") {
		cfg.Ranking.DesiredSmallCapCount = 3
	}
	if cfg.Ranking.SmallCapFloor == 0 && !ranking("small_cap_floor") {
		cfg.Ranking.SmallCapFloor = 50_000_000
	}
	if cfg.Ranking.SmallCapCeiling == 0 && !ranking("small_cap_ceiling") {
		cfg.Ranking.SmallCapCeiling = 2_000_000_000
	}
	if cfg.Ranking.WeightSmallCap == 0 && !ranking("weight_small_cap") {
		cfg.Ranking.WeightSmallCap = 40
	}
	if cfg.Ranking.WeightAiRelated == 0 && !ranking("weight_ai_related") {
		cfg.Ranking.WeightAiRelated = 20
	}
	if cfg.Ranking.WeightBuy == 0 && !ranking("weight_buy") {
		cfg.Ranking.WeightBuy = 15
	}
	if cfg.Ranking.WeightHold == 0 && !ranking("weight_hold") {
		cfg.Ranking.WeightHold = 3
	}
	if cfg.Ranking.WeightSentiment == 0 && !ranking("weight_sentiment") {
		cfg.Ranking.WeightSentiment = 25
	}
	if cfg.Ranking.WeightChangePercent == 0 && !ranking("weight_change_percent") {
		cfg.Ranking.WeightChangePercent = 4
	}

	if cfg.Subscribers.ReadRange == "" {
		cfg.Subscribers.ReadRange = "Subscribers!A2:A"
	}
	if cfg.Subscribers.CredentialsEnv == "" {
		cfg.Subscribers.CredentialsEnv = "GOOGLE_SERVICE_ACCOUNT_JSON"
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./dist"
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NEWSLETTER_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("NEWSLETTER_SPREADSHEET_ID"); v != "" {
		cfg.Subscribers.SpreadsheetID = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Feeds.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid feeds.timeout_seconds %d: must be >= 1", cfg.Feeds.TimeoutSeconds)
	}
	if cfg.Feeds.MaxConcurrent < 1 {
		return fmt.Errorf("invalid feeds.max_concurrent %d: must be >= 1", cfg.Feeds.MaxConcurrent)
	}
	if cfg.Ranking.MaxPicks < 1 {
		return fmt.Errorf("invalid ranking.max_picks %d: must be >= 1", cfg.Ranking.MaxPicks)
	}
	if cfg.Ranking.DesiredSmallCapCount > cfg.Ranking.MaxPicks {
		return fmt.Errorf("invalid ranking.desired_small_cap_count %d: must be <= max_picks %d",
			cfg.Ranking.DesiredSmallCapCount, cfg.Ranking.MaxPicks)
	}
	if cfg.Ranking.SmallCapFloor >= cfg.Ranking.SmallCapCeiling {
		return fmt.Errorf("invalid small-cap range [%.0f, %.0f]: floor must be below ceiling",
			cfg.Ranking.SmallCapFloor, cfg.Ranking.SmallCapCeiling)
	}
	if cfg.Subscribers.SpreadsheetID == "" {
		slog.Info("subscribers.spreadsheet_id is empty, subscriber list disabled")
	}
	return nil
}
