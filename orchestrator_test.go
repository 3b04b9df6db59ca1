package main

import (
	"context"
	"errors"
	"testing"
)

func newTestConfig() *apiConfig {
	return &apiConfig{
		geocoder: &mockGeocodingService{
			GeocodeFunc: func(ctx context.Context, cityName string) (Location, error) {
				return Location{Latitude: 17.36, Longitude: 78.47, CityName: "Hyderabad", CountryCode: "IN"}, nil
			},
		},
		weather: &mockWeatherService{
			CurrentWeatherFunc: func(ctx context.Context, lat, lon float64) WeatherReading {
				return WeatherReading{Category: "clouds", Description: "scattered clouds", TemperatureC: 28.0}
			},
		},
		recommender: &mockRecommender{},
		searcher:    &mockVideoSearcher{},
		sessions:    newMemorySessionStore(),
		aiEnabled:   true,
		logger:      newTestLogger(),
	}
}

func TestBuildFallbackQuery(t *testing.T) {
	testCases := []struct {
		name    string
		req     PlaylistRequest
		weather WeatherReading
		want    string
	}{
		{
			name: "Content Type Defaults To Songs",
			req: PlaylistRequest{
				Language:    "Telugu",
				ContentType: "Any",
				Mood:        "Happy",
				WeatherMode: weatherModeIgnore,
			},
			weather: WeatherReading{Category: "rain"},
			want:    "Telugu Songs Happy",
		},
		{
			name: "All Any Without Weather",
			req: PlaylistRequest{
				Language:    "Any",
				ContentType: "Any",
				Mood:        "Any",
				WeatherMode: weatherModeIgnore,
			},
			want: "Songs",
		},
		{
			name: "Explicit Content Type",
			req: PlaylistRequest{
				Language:    "Hindi",
				ContentType: "Meditation",
				Mood:        "Any",
				WeatherMode: weatherModeIgnore,
			},
			want: "Hindi Meditation",
		},
		{
			name: "Weather Included With Unknown Category",
			req: PlaylistRequest{
				Language:    "English",
				ContentType: "Any",
				Mood:        "Relax",
				WeatherMode: weatherModeInclude,
			},
			weather: WeatherReading{Category: "thunderstorm"},
			want:    "English Songs Relax",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildFallbackQuery(tc.req, tc.weather); got != tc.want {
				t.Errorf("buildFallbackQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildFallbackQuery_IncludesWeatherPhrase(t *testing.T) {
	origIntn := intn
	defer func() { intn = origIntn }()
	intn = func(n int) int { return 0 }

	req := PlaylistRequest{
		Language:    "Telugu",
		ContentType: "Any",
		Mood:        "Happy",
		WeatherMode: weatherModeInclude,
	}
	want := "Telugu Songs Happy rainy day"
	if got := buildFallbackQuery(req, WeatherReading{Category: "rain"}); got != want {
		t.Errorf("buildFallbackQuery() = %q, want %q", got, want)
	}
}

func TestGeneratePlaylist_BlankCity(t *testing.T) {
	cfg := newTestConfig()

	for _, city := range []string{"", "   "} {
		_, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{City: city})
		if !errors.Is(err, ErrBlankCity) {
			t.Errorf("Expected ErrBlankCity for city %q, got %v", city, err)
		}
	}
}

func TestGeneratePlaylist_CityNotFound(t *testing.T) {
	cfg := newTestConfig()
	cfg.geocoder = &mockGeocodingService{
		GeocodeFunc: func(ctx context.Context, cityName string) (Location, error) {
			return Location{}, ErrCityNotFound
		},
	}
	searcher := cfg.searcher.(*mockVideoSearcher)

	_, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{City: "Atlantis"})
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("Expected ErrCityNotFound, got %v", err)
	}
	if len(searcher.queries) != 0 {
		t.Errorf("Pipeline should stop before video resolution, saw queries %v", searcher.queries)
	}
}

// End-to-end AI path with a dead weather backend: mock weather is used,
// five suggestions each resolve to one video, the queue has five tracks at
// index zero.
func TestGeneratePlaylist_AIPathWithMockWeather(t *testing.T) {
	cfg := newTestConfig()
	cfg.weather = &mockWeatherService{
		CurrentWeatherFunc: func(ctx context.Context, lat, lon float64) WeatherReading {
			return WeatherReading{
				Category:     mockWeatherCategory,
				Description:  mockWeatherDescription,
				TemperatureC: mockWeatherTempC,
				IsMock:       true,
			}
		},
	}
	suggestions := []string{"S1 by A1", "S2 by A2", "S3 by A3", "S4 by A4", "S5 by A5"}
	cfg.recommender = &mockRecommender{
		RecommendFunc: func(ctx context.Context, rc RecommendationContext) []string {
			if rc.City != "Hyderabad" {
				t.Errorf("Expected recommendation context city 'Hyderabad', got '%s'", rc.City)
			}
			if rc.Weather == nil || !rc.Weather.IsMock {
				t.Error("Expected the mock weather reading in the recommendation context")
			}
			return suggestions
		},
	}
	searcher := &mockVideoSearcher{
		SearchFunc: func(ctx context.Context, query string, limit int) []VideoResult {
			return []VideoResult{{Title: query, Link: "https://www.youtube.com/watch?v=" + query, ID: query}}
		},
	}
	cfg.searcher = searcher

	result, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{City: "Hyderabad"})
	if err != nil {
		t.Fatalf("generatePlaylist() returned an unexpected error: %v", err)
	}

	if len(result.Playlist.Items) != 5 {
		t.Errorf("Expected a 5-track queue, got %d", len(result.Playlist.Items))
	}
	if result.Playlist.CurrentIndex != 0 {
		t.Errorf("Expected the cursor at 0, got %d", result.Playlist.CurrentIndex)
	}
	if len(searcher.queries) != 5 {
		t.Fatalf("Expected one search per suggestion, got %d", len(searcher.queries))
	}
	for i, q := range searcher.queries {
		if q != suggestions[i] {
			t.Errorf("Search %d used query %q, want %q", i, q, suggestions[i])
		}
		if searcher.limits[i] != 1 {
			t.Errorf("Search %d used limit %d, want 1", i, searcher.limits[i])
		}
	}
	if !result.Weather.IsMock {
		t.Error("Expected the result to carry the mock weather reading")
	}

	stored, err := cfg.sessions.Get(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Expected the playlist to be stored: %v", err)
	}
	if len(stored.Items) != 5 || stored.CurrentIndex != 0 {
		t.Errorf("Stored playlist has %d items at index %d, want 5 at 0", len(stored.Items), stored.CurrentIndex)
	}
}

// Failed per-song lookups shrink the queue silently; order of the
// remaining tracks follows suggestion order.
func TestGeneratePlaylist_PartialVideoResolution(t *testing.T) {
	cfg := newTestConfig()
	cfg.recommender = &mockRecommender{
		RecommendFunc: func(ctx context.Context, rc RecommendationContext) []string {
			return []string{"S1 by A1", "S2 by A2", "S3 by A3"}
		},
	}
	cfg.searcher = &mockVideoSearcher{
		SearchFunc: func(ctx context.Context, query string, limit int) []VideoResult {
			if query == "S2 by A2" {
				return nil
			}
			return []VideoResult{{Title: query, ID: query}}
		},
	}

	result, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{City: "Hyderabad"})
	if err != nil {
		t.Fatalf("generatePlaylist() returned an unexpected error: %v", err)
	}
	if len(result.Playlist.Items) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(result.Playlist.Items))
	}
	if result.Playlist.Items[0].ID != "S1 by A1" || result.Playlist.Items[1].ID != "S3 by A3" {
		t.Errorf("Tracks out of suggestion order: %v", result.Playlist.Items)
	}
}

// Zero AI suggestions end the request with an empty queue; the keyword
// path is deliberately not re-run and prior session state is preserved.
func TestGeneratePlaylist_EmptySuggestions(t *testing.T) {
	cfg := newTestConfig()
	prior := samplePlaylist()
	if err := cfg.sessions.Set(context.Background(), "session-1", prior); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}
	searcher := cfg.searcher.(*mockVideoSearcher)

	_, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{City: "Hyderabad"})
	if !errors.Is(err, ErrNoVideosFound) {
		t.Fatalf("Expected ErrNoVideosFound, got %v", err)
	}
	if len(searcher.queries) != 0 {
		t.Errorf("Keyword path must not run on empty AI suggestions, saw queries %v", searcher.queries)
	}

	stored, err := cfg.sessions.Get(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Prior playlist should survive a failed generation: %v", err)
	}
	if len(stored.Items) != len(prior.Items) {
		t.Errorf("Prior playlist was modified: got %d items, want %d", len(stored.Items), len(prior.Items))
	}
}

func TestGeneratePlaylist_FallbackPath(t *testing.T) {
	cfg := newTestConfig()
	cfg.aiEnabled = false
	searcher := &mockVideoSearcher{
		SearchFunc: func(ctx context.Context, query string, limit int) []VideoResult {
			return []VideoResult{{Title: "Hit", ID: "hit"}}
		},
	}
	cfg.searcher = searcher

	result, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{
		City:        "Hyderabad",
		Language:    "Telugu",
		ContentType: "Any",
		Mood:        "Happy",
		WeatherMode: weatherModeIgnore,
	})
	if err != nil {
		t.Fatalf("generatePlaylist() returned an unexpected error: %v", err)
	}

	if len(searcher.queries) != 1 {
		t.Fatalf("Expected a single fallback search, got %d", len(searcher.queries))
	}
	if searcher.queries[0] != "Telugu Songs Happy" {
		t.Errorf("Fallback query = %q, want %q", searcher.queries[0], "Telugu Songs Happy")
	}
	if searcher.limits[0] != fallbackSearchLimit {
		t.Errorf("Fallback search limit = %d, want %d", searcher.limits[0], fallbackSearchLimit)
	}

	foundNotice := false
	for _, n := range result.Notices {
		if n == "Recommendation backend not configured, falling back to keyword search." {
			foundNotice = true
		}
	}
	if !foundNotice {
		t.Errorf("Expected a fallback notice, got %v", result.Notices)
	}
}

func TestGeneratePlaylist_StoreError(t *testing.T) {
	cfg := newTestConfig()
	cfg.sessions = failingSessionStore{}
	cfg.recommender = &mockRecommender{
		RecommendFunc: func(ctx context.Context, rc RecommendationContext) []string {
			return []string{"S1 by A1"}
		},
	}
	cfg.searcher = &mockVideoSearcher{
		SearchFunc: func(ctx context.Context, query string, limit int) []VideoResult {
			return []VideoResult{{Title: query, ID: query}}
		},
	}

	_, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{City: "Hyderabad"})
	if err == nil {
		t.Fatal("Expected an error when the session store fails")
	}
}

func TestGeneratePlaylist_MockLocationNotice(t *testing.T) {
	cfg := newTestConfig()
	cfg.geocoder = &mockGeocodingService{
		GeocodeFunc: func(ctx context.Context, cityName string) (Location, error) {
			return Location{CityName: cityName, CountryCode: "Mockland", IsMock: true}, nil
		},
	}
	cfg.recommender = &mockRecommender{
		RecommendFunc: func(ctx context.Context, rc RecommendationContext) []string {
			return []string{"S1 by A1"}
		},
	}
	cfg.searcher = &mockVideoSearcher{
		SearchFunc: func(ctx context.Context, query string, limit int) []VideoResult {
			return []VideoResult{{Title: query, ID: query}}
		},
	}

	result, err := cfg.generatePlaylist(context.Background(), "session-1", PlaylistRequest{City: "Gotham"})
	if err != nil {
		t.Fatalf("generatePlaylist() returned an unexpected error: %v", err)
	}
	if !result.Location.IsMock {
		t.Error("Expected the mock location in the result")
	}
	if len(result.Notices) == 0 {
		t.Error("Expected a degradation notice for the mock location")
	}
}
