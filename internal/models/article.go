package models

import "time"

// FeedItem is a single article reference discovered from an RSS feed and
// surviving the keyword filter.
type FeedItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
	SourceName  string    `json:"source_name"`
	Snippet     string    `json:"snippet,omitempty"`
}

// ArticleCandidate is a FeedItem enriched with scraped body text and the
// ticker symbols extracted from it. It exists only for the duration of a run.
type ArticleCandidate struct {
	FeedItem
	BodyText         string   `json:"body_text,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	ExtractedSymbols []string `json:"extracted_symbols,omitempty"`
}
