package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// --- Mocks ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockGeocodingService is a mock for the GeocodingService interface.
type mockGeocodingService struct {
	GeocodeFunc func(ctx context.Context, cityName string) (Location, error)
}

func (m *mockGeocodingService) Geocode(ctx context.Context, cityName string) (Location, error) {
	if m.GeocodeFunc != nil {
		return m.GeocodeFunc(ctx, cityName)
	}
	return Location{}, errors.New("GeocodeFunc not implemented in mock")
}

// mockWeatherService is a mock for the WeatherService interface.
type mockWeatherService struct {
	CurrentWeatherFunc func(ctx context.Context, lat, lon float64) WeatherReading
}

func (m *mockWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) WeatherReading {
	if m.CurrentWeatherFunc != nil {
		return m.CurrentWeatherFunc(ctx, lat, lon)
	}
	return WeatherReading{}
}

// mockRecommender is a mock for the Recommender interface.
type mockRecommender struct {
	RecommendFunc func(ctx context.Context, rc RecommendationContext) []string
}

func (m *mockRecommender) Recommend(ctx context.Context, rc RecommendationContext) []string {
	if m.RecommendFunc != nil {
		return m.RecommendFunc(ctx, rc)
	}
	return nil
}

// mockVideoSearcher is a mock for the VideoSearcher interface. It records
// every query it receives.
type mockVideoSearcher struct {
	SearchFunc func(ctx context.Context, query string, limit int) []VideoResult
	queries    []string
	limits     []int
}

func (m *mockVideoSearcher) Search(ctx context.Context, query string, limit int) []VideoResult {
	m.queries = append(m.queries, query)
	m.limits = append(m.limits, limit)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	return nil
}

// mockSearchRunner is a mock for the searchRunner interface used by
// YTDLPSearcher. outputs is consumed one entry per invocation.
type mockSearchRunner struct {
	outputs []runnerOutput
	calls   int
	specs   []string
}

type runnerOutput struct {
	stdout string
	err    error
}

func (m *mockSearchRunner) run(_ context.Context, searchSpec string) (string, error) {
	m.calls++
	m.specs = append(m.specs, searchSpec)
	if len(m.outputs) == 0 {
		return "", errors.New("mockSearchRunner has no outputs left")
	}
	out := m.outputs[0]
	m.outputs = m.outputs[1:]
	return out.stdout, out.err
}

// failingSessionStore fails every operation, for exercising store-error paths.
type failingSessionStore struct{}

func (failingSessionStore) Get(context.Context, string) (*Playlist, error) {
	return nil, errors.New("session store unavailable")
}

func (failingSessionStore) Set(context.Context, string, *Playlist) error {
	return errors.New("session store unavailable")
}

func (failingSessionStore) Delete(context.Context, string) error {
	return errors.New("session store unavailable")
}
