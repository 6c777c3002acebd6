package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

type AppConfig struct {
	// Upstream forecast API. An empty key is allowed; upstream rejects it.
	WeatherAPIKey  string
	WeatherBaseURL string
	BaseTime       string

	// Location used for the current local date and hour.
	Location *time.Location

	HTTPTimeout time.Duration

	// Resilience and throttling of outbound calls. Zero values disable them.
	FetchMaxRetries  int
	FetchRateLimit   float64
	FetchRateBurst   int
	FetchConcurrency int

	// RefreshInterval re-fetches every city periodically (0 = startup only).
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = common.FirstNonEmpty(os.Getenv("WEATHER_API_KEY"), os.Getenv("VITE_WEATHER_API_KEY"))
	cfg.WeatherBaseURL = common.FirstNonEmpty(
		os.Getenv("WEATHER_BASE_URL"),
		os.Getenv("VITE_WEATHER_BASE_URL"),
		providers.DefaultKMABaseURL,
	)

	cfg.BaseTime = getenvDefault("WEATHER_BASE_TIME", weather.DefaultBaseTime)
	if !validBaseTime(cfg.BaseTime) {
		return nil, fmt.Errorf("invalid WEATHER_BASE_TIME %q: want HHMM", cfg.BaseTime)
	}

	tz := getenvDefault("WEATHER_TIMEZONE", "Asia/Seoul")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}

	if cfg.FetchMaxRetries, err = getenvInt("FETCH_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.FetchRateBurst, err = getenvInt("FETCH_RATE_BURST", 1); err != nil {
		return nil, err
	}
	if cfg.FetchConcurrency, err = getenvInt("FETCH_CONCURRENCY", 0); err != nil {
		return nil, err
	}

	rateStr := getenvDefault("FETCH_RATE_LIMIT", "0")
	cfg.FetchRateLimit, err = strconv.ParseFloat(rateStr, 64)
	if err != nil || cfg.FetchRateLimit < 0 || math.IsNaN(cfg.FetchRateLimit) || math.IsInf(cfg.FetchRateLimit, 0) {
		return nil, fmt.Errorf("invalid FETCH_RATE_LIMIT %q", rateStr)
	}

	if cfg.FetchMaxRetries < 0 {
		return nil, fmt.Errorf("invalid FETCH_MAX_RETRIES: must not be negative")
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// Backoff returns the retry policy for outbound calls.
func (c *AppConfig) Backoff() providers.BackoffConfig {
	return providers.BackoffConfig{
		MaxRetries:      c.FetchMaxRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func validBaseTime(s string) bool {
	if len(s) != 4 {
		return false
	}
	t, err := time.Parse("1504", s)
	return err == nil && t.Format("1504") == s
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
