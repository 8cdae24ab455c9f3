package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"visit-route-service/internal/domain"
)

// Config carries everything the service reads from the environment.
// Secrets stay in env vars; structured configuration (coverage polygon,
// capability table) lives in JSON files referenced by path.
type Config struct {
	Port             string
	DatabaseURL      string
	RedisAddr        string
	RedisPassword    string
	SeedPath         string
	CoveragePath     string
	CapabilityPath   string
	ScheduleCacheTTL time.Duration
	LogLevel         string
	LogFormat        string
}

// Load reads the service configuration from the environment.
func Load() Config {
	return Config{
		Port:             Get("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        Get("REDIS_ADDR", ""),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		SeedPath:         Get("SEED_PATH", "data/seeds/directory.json"),
		CoveragePath:     Get("COVERAGE_PATH", "data/config/coverage.json"),
		CapabilityPath:   Get("CAPABILITY_PATH", ""),
		ScheduleCacheTTL: GetDuration("SCHEDULE_CACHE_TTL", 5*time.Minute),
		LogLevel:         Get("LOG_LEVEL", "info"),
		LogFormat:        Get("LOG_FORMAT", "json"),
	}
}

// Get returns the env var value or a fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the env var parsed as int, or the fallback.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetDuration returns the env var parsed as a time.Duration, or the fallback.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

type coverageFile struct {
	Name     string `json:"name"`
	Vertices []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"vertices"`
}

// LoadCoveragePolygon reads the static service-area boundary from a
// JSON file: an ordered vertex list defining a closed polygon.
func LoadCoveragePolygon(path string) ([]domain.Coordinates, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load coverage polygon: read %q: %w", path, err)
	}

	var f coverageFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("load coverage polygon: parse json: %w", err)
	}
	if len(f.Vertices) < 3 {
		return nil, fmt.Errorf("load coverage polygon: %q has %d vertices, need at least 3", path, len(f.Vertices))
	}

	polygon := make([]domain.Coordinates, 0, len(f.Vertices))
	for _, v := range f.Vertices {
		polygon = append(polygon, domain.Coordinates{Lat: v.Lat, Lon: v.Lon})
	}
	return polygon, nil
}
