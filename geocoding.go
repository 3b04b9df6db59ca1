package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// This file provides the application's geocoding capability: converting a
// free-text city name into geographical coordinates. The provider is
// abstracted behind a GeocodingService interface so tests and future
// replacements don't depend on the OpenWeatherMap geocoding API.
//
// Failure policy (deliberately asymmetric):
//   - an empty result set means the city genuinely does not exist and is
//     reported as ErrCityNotFound, which aborts the whole pipeline;
//   - transport, HTTP-status and decode errors degrade silently into a
//     synthetic mock Location so the pipeline can proceed.

// ErrCityNotFound is returned when the geocoding backend recognizes the
// query but has no candidates for it.
var ErrCityNotFound = errors.New("no location found for the given city name")

type GeocodingService interface {
	Geocode(ctx context.Context, cityName string) (Location, error)
}

// OWMGeocodingService implements GeocodingService using the OpenWeatherMap
// direct geocoding API.
type OWMGeocodingService struct {
	apiKey     string
	geocodeURL string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOWMGeocodingService(apiKey, geocodeURL string, httpClient *http.Client, logger *slog.Logger) *OWMGeocodingService {
	return &OWMGeocodingService{
		apiKey:     apiKey,
		geocodeURL: geocodeURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Geocode resolves cityName to a Location. The caller is responsible for
// rejecting blank input; this adapter assumes a non-empty name.
func (s *OWMGeocodingService) Geocode(ctx context.Context, cityName string) (Location, error) {
	loc, err := s.performGeocodeRequest(ctx, cityName)
	if err == nil || errors.Is(err, ErrCityNotFound) {
		return loc, err
	}

	s.logger.Warn("geocoding backend error, using mock coordinates", "city", cityName, "error", err)
	return Location{
		Latitude:    0,
		Longitude:   0,
		CityName:    cityName,
		CountryCode: "Mockland",
		IsMock:      true,
	}, nil
}

func (s *OWMGeocodingService) performGeocodeRequest(ctx context.Context, cityName string) (Location, error) {
	baseURL, err := url.Parse(s.geocodeURL)
	if err != nil {
		return Location{}, fmt.Errorf("failed to parse base geocode URL: %w", err)
	}

	q := baseURL.Query()
	q.Set("q", cityName)
	q.Set("limit", strconv.Itoa(1))
	q.Set("appid", s.apiKey)
	baseURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocoding API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocoding API request returned non-200 status: %s", resp.Status)
	}

	var candidates []geoCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return Location{}, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(candidates) == 0 {
		return Location{}, ErrCityNotFound
	}

	return Location{
		Latitude:    candidates[0].Lat,
		Longitude:   candidates[0].Lon,
		CityName:    candidates[0].Name,
		CountryCode: candidates[0].Country,
	}, nil
}

// geoCandidate mirrors one entry of the OpenWeatherMap geocoding response.
type geoCandidate struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}
