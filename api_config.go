package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// defaultOpenWeatherKey substitutes when no OPENWEATHER_API_KEY is set.
// The Gemini key has no such default: its absence switches the pipeline to
// the keyword-fallback path.
const defaultOpenWeatherKey = "20cd0409349298b3dd45fa02799329de"

const (
	defaultGeocodeURL  = "http://api.openweathermap.org/geo/1.0/direct"
	defaultWeatherURL  = "http://api.openweathermap.org/data/2.5/weather"
	defaultGenerateURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-flash-latest:generateContent"
)

type apiConfig struct {
	geocoder    GeocodingService
	weather     WeatherService
	recommender Recommender
	searcher    VideoSearcher
	sessions    SessionStore
	httpClient  *http.Client
	aiEnabled   bool
	port        string
	devMode     bool
	logger      *slog.Logger
}

// getEnv retrieves an environment variable by key, with a fallback value.
func getEnv(key, fallback string, logger *slog.Logger) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	logger.Info("environment variable not set, using fallback", "key", key, "fallback", fallback)
	return fallback
}

func config() *apiConfig {
	devModeStr := os.Getenv("DEV_MODE")
	devMode, err := strconv.ParseBool(devModeStr)
	if err != nil {
		devMode = false
	}

	var logger *slog.Logger
	if devMode {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	owmKey := os.Getenv("OPENWEATHER_API_KEY")
	if owmKey == "" {
		logger.Info("OPENWEATHER_API_KEY not set, using built-in default key")
		owmKey = defaultOpenWeatherKey
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		logger.Info("GEMINI_API_KEY not set, AI recommendations disabled")
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	var sessions SessionStore
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.Error("could not parse Redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opt)
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Error("could not connect to Redis", "error", err)
			os.Exit(1)
		}
		sessions = NewRedisSessionStore(redisClient)
	} else {
		logger.Info("REDIS_URL not set, using in-memory session store")
		sessions = newMemorySessionStore()
	}

	cfg := apiConfig{
		geocoder:    NewOWMGeocodingService(owmKey, getEnv("OWM_GEOCODE_URL", defaultGeocodeURL, logger), httpClient, logger),
		weather:     NewOWMWeatherService(owmKey, getEnv("OWM_WEATHER_URL", defaultWeatherURL, logger), httpClient, logger),
		recommender: NewGeminiRecommender(geminiKey, getEnv("GEMINI_GENERATE_URL", defaultGenerateURL, logger), httpClient, logger),
		searcher:    NewYTDLPSearcher(logger),
		sessions:    sessions,
		httpClient:  httpClient,
		aiEnabled:   geminiKey != "",
		port:        getEnv("PORT", "8080", logger),
		devMode:     devMode,
		logger:      logger,
	}

	return &cfg
}
