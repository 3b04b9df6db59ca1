package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// This file contains the top-level control flow for one generation
// request: resolve the city, fetch weather, pick the AI or keyword path,
// resolve videos and replace the session playlist. Every adapter below is
// failure-safe, so the orchestrator's job reduces to inspecting emptiness
// and choosing the next step or a user-facing message.

// Weather-mode values accepted on a generation request. Anything other
// than weatherModeIgnore includes the weather phrase in the fallback query.
const (
	weatherModeInclude = "include"
	weatherModeIgnore  = "ignore"
)

// anySentinel is the selector value meaning "no preference".
const anySentinel = "Any"

// fallbackSearchLimit is the result count requested by the single
// keyword-fallback search; the AI path requests one result per suggestion.
const fallbackSearchLimit = 10

// ErrBlankCity is a user-input error: the pipeline is not started.
var ErrBlankCity = errors.New("city name must not be blank")

// ErrNoVideosFound means the assembled queue ended up empty. The session's
// prior playlist, if any, is left untouched.
var ErrNoVideosFound = errors.New("no videos found")

// GenerationResult is everything one successful pipeline run produced.
// Notices carry informational degradation messages (mock data used,
// fallback path taken) for the UI; they are not errors.
type GenerationResult struct {
	Location    Location
	Weather     WeatherReading
	Suggestions []string
	Notices     []string
	Playlist    *Playlist
}

// generatePlaylist runs the full pipeline for one request and, on success,
// replaces the session's playlist wholesale with the new queue.
func (cfg *apiConfig) generatePlaylist(ctx context.Context, sessionID string, req PlaylistRequest) (*GenerationResult, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, ErrBlankCity
	}

	normalized, err := normalizeCityName(city)
	if err != nil {
		cfg.logger.Warn("could not normalize city name", "city", city, "error", err)
		normalized = city
	}

	location, err := cfg.geocoder.Geocode(ctx, normalized)
	if err != nil {
		generationsTotal.WithLabelValues("none", "city_not_found").Inc()
		return nil, err
	}
	cfg.logger.Debug("city resolved", "city", location.CityName, "country", location.CountryCode, "mock", location.IsMock)

	result := &GenerationResult{Location: location}
	if location.IsMock {
		result.Notices = append(result.Notices, "Location service unavailable, using mock coordinates.")
	}

	result.Weather = cfg.weather.CurrentWeather(ctx, location.Latitude, location.Longitude)
	if result.Weather.IsMock {
		result.Notices = append(result.Notices, "Weather service unavailable, using mock weather.")
	}

	path := "ai"
	var videos []VideoResult
	if !cfg.aiEnabled {
		path = "fallback"
		result.Notices = append(result.Notices, "Recommendation backend not configured, falling back to keyword search.")
		query := buildFallbackQuery(req, result.Weather)
		cfg.logger.Debug("running fallback search", "query", query)
		videos = cfg.searcher.Search(ctx, query, fallbackSearchLimit)
	} else {
		result.Suggestions = cfg.recommender.Recommend(ctx, RecommendationContext{
			Weather:     &result.Weather,
			Mood:        req.Mood,
			Language:    req.Language,
			ContentType: req.ContentType,
			City:        location.CityName,
		})
		if len(result.Suggestions) == 0 {
			// The keyword path is deliberately not re-run here; an empty
			// suggestion list yields an empty queue.
			result.Notices = append(result.Notices, "Recommendation engine returned no suggestions.")
		}
		for _, suggestion := range result.Suggestions {
			videos = append(videos, cfg.searcher.Search(ctx, suggestion, 1)...)
		}
	}

	if len(videos) == 0 {
		generationsTotal.WithLabelValues(path, "empty").Inc()
		return nil, ErrNoVideosFound
	}

	playlist := &Playlist{Items: videos}
	if err := cfg.sessions.Set(ctx, sessionID, playlist); err != nil {
		generationsTotal.WithLabelValues(path, "store_error").Inc()
		return nil, fmt.Errorf("could not store session playlist: %w", err)
	}

	generationsTotal.WithLabelValues(path, "ok").Inc()
	cfg.logger.Info("playlist generated", "city", location.CityName, "path", path, "tracks", len(videos))
	result.Playlist = playlist
	return result, nil
}

// buildFallbackQuery assembles the single keyword-search phrase used when
// the AI path is unavailable. "Any" selectors are omitted, except that the
// content type defaults to "Songs"; the weather phrase joins only when the
// request asks for weather and the category has a phrase.
func buildFallbackQuery(req PlaylistRequest, weather WeatherReading) string {
	var parts []string
	if req.Language != "" && req.Language != anySentinel {
		parts = append(parts, req.Language)
	}
	if req.ContentType != "" && req.ContentType != anySentinel {
		parts = append(parts, req.ContentType)
	} else {
		parts = append(parts, "Songs")
	}
	if req.Mood != "" && req.Mood != anySentinel {
		parts = append(parts, req.Mood)
	}
	if req.WeatherMode != weatherModeIgnore {
		if phrase := weatherQueryPhrase(weather); phrase != "" {
			parts = append(parts, phrase)
		}
	}
	return strings.Join(parts, " ")
}
