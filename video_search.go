package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// This file resolves search phrases to playable video results through
// yt-dlp's "ytsearchN:<phrase>" pseudo-URL with flat extraction. Flat
// extraction returns only lightweight metadata (title, id, webpage url)
// without resolving playable streams, which keeps a five-song lookup fast.
//
// The resolver never surfaces an error: it retries a failing invocation up
// to maxSearchRetries times and returns an empty slice once exhausted.

const maxSearchRetries = 3

const unknownTitle = "Unknown Title"

type VideoSearcher interface {
	Search(ctx context.Context, query string, limit int) []VideoResult
}

// searchRunner abstracts the yt-dlp subprocess so tests can inject canned
// JSON instead of spawning a binary.
type searchRunner interface {
	run(ctx context.Context, searchSpec string) (string, error)
}

type ytdlpRunner struct{}

func (ytdlpRunner) run(ctx context.Context, searchSpec string) (string, error) {
	result, err := ytdlp.New().
		Quiet().
		SkipDownload().
		NoPlaylist().
		FlatPlaylist().
		DumpSingleJSON().
		Run(ctx, searchSpec)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

// YTDLPSearcher implements VideoSearcher on top of yt-dlp.
type YTDLPSearcher struct {
	runner searchRunner
	logger *slog.Logger
}

func NewYTDLPSearcher(logger *slog.Logger) *YTDLPSearcher {
	return &YTDLPSearcher{
		runner: ytdlpRunner{},
		logger: logger,
	}
}

// Search returns up to limit results for query, in backend order. An empty
// or whitespace-only query returns nothing without touching the backend.
// Entries missing an id or url are kept with empty placeholders; filtering
// is the caller's decision.
func (s *YTDLPSearcher) Search(ctx context.Context, query string, limit int) []VideoResult {
	if strings.TrimSpace(query) == "" {
		s.logger.Warn("empty video search query")
		return nil
	}

	searchSpec := fmt.Sprintf("ytsearch%d:%s", limit, query)

	for attempt := 1; attempt <= maxSearchRetries; attempt++ {
		s.logger.Debug("searching videos", "query", query, "limit", limit, "attempt", attempt)

		stdout, err := s.runner.run(ctx, searchSpec)
		if err != nil {
			s.logger.Warn("video search attempt failed", "query", query, "attempt", attempt, "error", err)
			continue
		}

		results, err := parseSearchOutput(stdout)
		if err != nil {
			s.logger.Warn("failed to parse video search output", "query", query, "attempt", attempt, "error", err)
			continue
		}

		if len(results) > limit {
			results = results[:limit]
		}
		return results
	}

	s.logger.Warn("video search exhausted all attempts", "query", query)
	return nil
}

func parseSearchOutput(stdout string) ([]VideoResult, error) {
	var info struct {
		Entries []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			ID    string `json:"id"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		return nil, fmt.Errorf("failed to decode search output: %w", err)
	}

	results := make([]VideoResult, 0, len(info.Entries))
	for _, entry := range info.Entries {
		title := entry.Title
		if title == "" {
			title = unknownTitle
		}
		// In flat mode "url" is the webpage link, not a stream URL.
		results = append(results, VideoResult{
			Title: title,
			Link:  entry.URL,
			ID:    entry.ID,
		})
	}
	return results, nil
}
