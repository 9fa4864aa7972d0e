// Package config loads the process-wide settings once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPort          = 4000
	DefaultStaticDir     = "./public"
	DefaultSourceTimeout = 5 * time.Second
	DefaultRateLimitRPS  = 20
	DefaultRateBurst     = 40
)

// keys recognised in the environment, lower-cased by the loader.
var keys = map[string]bool{
	"github_username":   true,
	"github_token":      true,
	"weather_latitude":  true,
	"weather_longitude": true,
	"port":              true,
	"log_level":         true,
	"log_format":        true,
	"static_dir":        true,
	"source_timeout":    true,
	"rate_limit_rps":    true,
	"rate_limit_burst":  true,
}

// Weather holds the coordinates for the weather source. Set is false when
// either coordinate is missing.
type Weather struct {
	Latitude  float64
	Longitude float64
	Set       bool
}

type Config struct {
	GitHubUsername string
	GitHubToken    string
	Weather        Weather
	Port           int
	LogLevel       string
	LogFormat      string
	StaticDir      string
	SourceTimeout  time.Duration
	RateLimitRPS   float64
	RateBurst      int
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load reads an optional .env file and then the process environment.
// Variables already in the environment win over the file.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	ko := koanf.New(".")
	err := ko.Load(env.Provider("", ".", func(s string) string {
		k := strings.ToLower(s)
		if !keys[k] {
			return ""
		}
		return k
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return parse(ko)
}

func parse(ko *koanf.Koanf) (Config, error) {
	cfg := Config{
		GitHubUsername: strings.TrimSpace(ko.String("github_username")),
		GitHubToken:    strings.TrimSpace(ko.String("github_token")),
		Port:           DefaultPort,
		LogLevel:       strings.ToLower(ko.String("log_level")),
		LogFormat:      strings.ToLower(ko.String("log_format")),
		StaticDir:      ko.String("static_dir"),
		SourceTimeout:  DefaultSourceTimeout,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateBurst:      DefaultRateBurst,
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = DefaultStaticDir
	}

	if raw := ko.String("port"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}

	lat, latSet, err := coordinate(ko.String("weather_latitude"), 90)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_LATITUDE: %w", err)
	}
	lon, lonSet, err := coordinate(ko.String("weather_longitude"), 180)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_LONGITUDE: %w", err)
	}
	cfg.Weather = Weather{Latitude: lat, Longitude: lon, Set: latSet && lonSet}

	if raw := ko.String("source_timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SOURCE_TIMEOUT %q", raw)
		}
		cfg.SourceTimeout = d
	}

	if raw := ko.String("rate_limit_rps"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS %q", raw)
		}
		cfg.RateLimitRPS = rps
	}
	if raw := ko.String("rate_limit_burst"); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST %q", raw)
		}
		cfg.RateBurst = burst
	}

	return cfg, nil
}

func coordinate(raw string, limit float64) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	if v < -limit || v > limit {
		return 0, false, fmt.Errorf("%v out of range", v)
	}
	return v, true, nil
}
