package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// This file wraps the OpenWeatherMap current-weather API behind the
// WeatherService interface. Unlike geocoding there is no "not found"
// condition here: coordinates always have weather, so from the caller's
// point of view the adapter cannot fail. Any backend error is absorbed
// into a fixed mock reading and logged.

const (
	mockWeatherCategory    = "clear"
	mockWeatherDescription = "clear sky (mock data)"
	mockWeatherTempC       = 25.0
)

type WeatherService interface {
	CurrentWeather(ctx context.Context, lat, lon float64) WeatherReading
}

// OWMWeatherService implements WeatherService using the OpenWeatherMap
// current-weather API with metric units.
type OWMWeatherService struct {
	apiKey     string
	weatherURL string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOWMWeatherService(apiKey, weatherURL string, httpClient *http.Client, logger *slog.Logger) *OWMWeatherService {
	return &OWMWeatherService{
		apiKey:     apiKey,
		weatherURL: weatherURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (s *OWMWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) WeatherReading {
	reading, err := s.performWeatherRequest(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("weather backend error, using mock reading", "lat", lat, "lon", lon, "error", err)
		return WeatherReading{
			Category:     mockWeatherCategory,
			Description:  mockWeatherDescription,
			TemperatureC: mockWeatherTempC,
			IsMock:       true,
		}
	}
	return reading
}

func (s *OWMWeatherService) performWeatherRequest(ctx context.Context, lat, lon float64) (WeatherReading, error) {
	baseURL, err := url.Parse(s.weatherURL)
	if err != nil {
		return WeatherReading{}, fmt.Errorf("failed to parse base weather URL: %w", err)
	}

	q := baseURL.Query()
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("units", "metric")
	q.Set("appid", s.apiKey)
	baseURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return WeatherReading{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return WeatherReading{}, fmt.Errorf("weather API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return WeatherReading{}, fmt.Errorf("weather API request returned non-200 status: %s", resp.Status)
	}

	return parseCurrentWeatherOWM(resp.Body)
}

func parseCurrentWeatherOWM(body io.Reader) (WeatherReading, error) {
	var response responseCurrentWeatherOWM

	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return WeatherReading{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	if len(response.Weather) == 0 {
		return WeatherReading{}, errors.New("weather response contains no conditions")
	}

	return WeatherReading{
		Category:     strings.ToLower(response.Weather[0].Main),
		Description:  strings.ToLower(response.Weather[0].Description),
		TemperatureC: response.Main.Temp,
	}, nil
}

// responseCurrentWeatherOWM mirrors the subset of the OpenWeatherMap
// current-weather payload this application consumes.
type responseCurrentWeatherOWM struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}
