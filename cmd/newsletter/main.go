package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
	"github.com/investordaily/AI-Investor-Daily/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	outDir := flag.String("out", "", "output directory (overrides config)")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	p := pipeline.New(cfg, pipeline.Deps{})

	// Per-item failures inside the run are logged and skipped; an error
	// here means the newsletter itself could not be produced.
	if err := p.Run(context.Background()); err != nil {
		slog.Error("newsletter run failed", "error", err)
		os.Exit(1)
	}
}
