package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig is a helper that writes a TOML config file to a temp
// directory and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
[feeds]
max_items_per_feed = 3
timeout_seconds = 5
max_concurrent = 2

[[feeds.sources]]
name = "Test Feed"
url = "https://example.com/feed.xml"

[keywords]
include = ["AI"]
exclude = ["sports"]

[ranking]
max_picks = 4
desired_small_cap_count = 2

[output]
dir = "/tmp/out"
`
	path := writeTestConfig(t, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}

	if len(cfg.Feeds.Sources) != 1 || cfg.Feeds.Sources[0].URL != "https://example.com/feed.xml" {
		t.Errorf("Feeds.Sources = %+v, want single test feed", cfg.Feeds.Sources)
	}
	if cfg.Feeds.MaxItemsPerFeed != 3 {
		t.Errorf("Feeds.MaxItemsPerFeed = %d, want 3", cfg.Feeds.MaxItemsPerFeed)
	}
	if cfg.Ranking.MaxPicks != 4 {
		t.Errorf("Ranking.MaxPicks = %d, want 4", cfg.Ranking.MaxPicks)
	}
	if cfg.Ranking.DesiredSmallCapCount != 2 {
		t.Errorf("Ranking.DesiredSmallCapCount = %d, want 2", cfg.Ranking.DesiredSmallCapCount)
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "/tmp/out")
	}

	// Unset sections pick up defaults.
	if cfg.Market.QuoteTimeoutSeconds != 8 {
		t.Errorf("Market.QuoteTimeoutSeconds = %d, want default 8", cfg.Market.QuoteTimeoutSeconds)
	}
	if len(cfg.Sentiment.Positive) == 0 || len(cfg.Sentiment.Negative) == 0 {
		t.Error("sentiment lexicons should have defaults")
	}
	if cfg.Ranking.WeightSmallCap != 40 {
		t.Errorf("Ranking.WeightSmallCap = %v, want default 40", cfg.Ranking.WeightSmallCap)
	}
}

func TestLoad_MissingFile_CreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file should have been created: %v", err)
	}
	if len(cfg.Feeds.Sources) == 0 {
		t.Error("default config should include feed sources")
	}
	if cfg.Ranking.MaxPicks != 5 {
		t.Errorf("Ranking.MaxPicks = %d, want 5", cfg.Ranking.MaxPicks)
	}
}

func TestLoad_ExplicitZerosPreserved(t *testing.T) {
	// A zero written in the file is a deliberate setting, not an omission:
	// it disables the weight (or reserved slots) instead of falling back to
	// the default.
	content := `
[ranking]
weight_change_percent = 0.0
desired_small_cap_count = 0
`
	path := writeTestConfig(t, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}

	if cfg.Ranking.WeightChangePercent != 0 {
		t.Errorf("Ranking.WeightChangePercent = %v, want the explicitly configured 0", cfg.Ranking.WeightChangePercent)
	}
	if cfg.Ranking.DesiredSmallCapCount != 0 {
		t.Errorf("Ranking.DesiredSmallCapCount = %d, want the explicitly configured 0", cfg.Ranking.DesiredSmallCapCount)
	}
	// Omitted fields still pick up their defaults.
	if cfg.Ranking.WeightBuy != 15 {
		t.Errorf("Ranking.WeightBuy = %v, want default 15", cfg.Ranking.WeightBuy)
	}
	if cfg.Ranking.MaxPicks != 5 {
		t.Errorf("Ranking.MaxPicks = %d, want default 5", cfg.Ranking.MaxPicks)
	}
}

func TestLoad_InvalidSelection(t *testing.T) {
	content := `
[ranking]
max_picks = 2
desired_small_cap_count = 4
`
	path := writeTestConfig(t, content)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error when desired_small_cap_count exceeds max_picks")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeTestConfig(t, "[output]\ndir = \"/tmp/from-file\"\n")

	t.Setenv("NEWSLETTER_OUTPUT_DIR", "/tmp/from-env")
	t.Setenv("NEWSLETTER_SPREADSHEET_ID", "sheet-from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}

	if cfg.Output.Dir != "/tmp/from-env" {
		t.Errorf("Output.Dir = %q, want env override %q", cfg.Output.Dir, "/tmp/from-env")
	}
	if cfg.Subscribers.SpreadsheetID != "sheet-from-env" {
		t.Errorf("Subscribers.SpreadsheetID = %q, want env override", cfg.Subscribers.SpreadsheetID)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Ranking.MaxPicks != 5 {
		t.Errorf("MaxPicks = %d, want 5", cfg.Ranking.MaxPicks)
	}
	if cfg.Ranking.SmallCapFloor != 50_000_000 || cfg.Ranking.SmallCapCeiling != 2_000_000_000 {
		t.Errorf("small-cap range = [%v, %v], want [5e7, 2e9]",
			cfg.Ranking.SmallCapFloor, cfg.Ranking.SmallCapCeiling)
	}
	if len(cfg.Keywords.Include) == 0 {
		t.Error("default include keywords should not be empty")
	}
}
