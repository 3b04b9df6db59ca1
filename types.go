package main

// Location is the canonical result of resolving a free-text city name.
// IsMock marks a synthetic fallback produced when the geocoding backend
// was unreachable; downstream consumers never branch on it, it exists
// purely for observability in API responses.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CityName    string  `json:"city_name"`
	CountryCode string  `json:"country_code"`
	IsMock      bool    `json:"is_mock"`
}

// WeatherReading is a normalized current-weather observation. Category is
// the lowercased provider condition group ("rain", "clouds", "clear", ...);
// the vocabulary is open, so it stays a plain string rather than an enum.
type WeatherReading struct {
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	TemperatureC float64 `json:"temperature_c"`
	IsMock       bool    `json:"is_mock"`
}

// RecommendationContext carries everything the recommendation engine needs
// to tailor its suggestions. Weather is nil when no reading is available.
type RecommendationContext struct {
	Weather     *WeatherReading
	Mood        string
	Language    string
	ContentType string
	City        string
}

// VideoResult is one playable search hit. ID is the stable media
// identifier, Link the embeddable webpage URL. Duplicate IDs across
// searches are possible and preserved.
type VideoResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	ID    string `json:"id"`
}

// PlaylistRequest is the body of a generation request.
type PlaylistRequest struct {
	City        string `json:"city"`
	Language    string `json:"language"`
	Mood        string `json:"mood"`
	ContentType string `json:"content_type"`
	WeatherMode string `json:"weather_mode"`
}

type PlaylistStateJSON struct {
	Items        []VideoResult `json:"items"`
	CurrentIndex int           `json:"current_index"`
	NowPlaying   *VideoResult  `json:"now_playing,omitempty"`
	EmbedURL     string        `json:"embed_url,omitempty"`
}

type PlaylistResponse struct {
	Location    Location          `json:"location"`
	Weather     WeatherReading    `json:"weather"`
	Suggestions []string          `json:"suggestions,omitempty"`
	Notices     []string          `json:"notices,omitempty"`
	Playlist    PlaylistStateJSON `json:"playlist"`
}

type ConfigResponse struct {
	DevMode   bool `json:"dev_mode"`
	AIEnabled bool `json:"ai_enabled"`
}
