package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the service reads from the environment.
type AppConfig struct {
	OpenWeatherAPIKey string
	GeocoderAPIKey    string

	// HTTPTimeout bounds outbound forecast calls.
	HTTPTimeout time.Duration

	// CacheCapacity bounds how many coordinates the LFU cache holds.
	// Zero disables caching.
	CacheCapacity int

	// WarmInterval controls how often the scheduler re-warms the cache for
	// WarmCities. Zero disables warming.
	WarmInterval time.Duration
	WarmCities   []string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.CacheCapacity = getenvInt("CACHE_CAPACITY", 32)
	if cfg.CacheCapacity < 0 {
		return nil, fmt.Errorf("CACHE_CAPACITY must not be negative")
	}

	warmStr := getenvDefault("WARM_INTERVAL", "15m")
	warm, err := time.ParseDuration(warmStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = warm

	if cities := os.Getenv("WARM_CITIES"); cities != "" {
		for _, c := range strings.Split(cities, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.WarmCities = append(cfg.WarmCities, c)
			}
		}
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
