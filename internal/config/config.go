// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides environment-based configuration for gitstory.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/llbbl/gitstory/internal/scoring"
)

// Environment variables read by Load.
const (
	EnvLogLevel     = "GITSTORY_LOG_LEVEL"
	EnvLogFormat    = "GITSTORY_LOG_FORMAT"
	EnvSyncInterval = "GITSTORY_SYNC_INTERVAL"
	EnvDBPath       = "GITSTORY_DB_PATH"
	EnvPeriodStart  = "GITSTORY_PERIOD_START"
	EnvTopRepos     = "GITSTORY_TOP_REPOS"
	EnvTopLanguages = "GITSTORY_TOP_LANGUAGES"
)

// Defaults applied when a variable is unset or unusable.
const (
	DefaultSyncInterval = 5 * time.Minute
	DefaultTopRepos     = 5
	DefaultTopLanguages = 3
)

// periodStartLayout is the accepted GITSTORY_PERIOD_START format.
const periodStartLayout = "2006-01-02"

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	LogLevel     string
	LogFormat    string
	SyncInterval time.Duration
	DBPath       string // empty selects ~/.gitstory/gitstory.db
	PeriodStart  time.Time
	TopRepos     int
	TopLanguages int
}

// Load reads configuration from the environment after applying an optional
// .env file from the working directory. Variables already set win over .env.
func Load() (*Config, error) {
	return load(time.Now())
}

func load(now time.Time) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     envString(EnvLogLevel, "info"),
		LogFormat:    envString(EnvLogFormat, "text"),
		SyncInterval: envDuration(EnvSyncInterval, DefaultSyncInterval),
		DBPath:       os.Getenv(EnvDBPath),
		TopRepos:     envPositiveInt(EnvTopRepos, DefaultTopRepos),
		TopLanguages: envPositiveInt(EnvTopLanguages, DefaultTopLanguages),
	}

	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid %s %q: must be one of %v", EnvLogLevel, cfg.LogLevel, validLogLevels)
	}
	if !slices.Contains(validLogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid %s %q: must be one of %v", EnvLogFormat, cfg.LogFormat, validLogFormats)
	}

	start, err := periodStart(now)
	if err != nil {
		return nil, err
	}
	cfg.PeriodStart = start

	return cfg, nil
}

// periodStart returns GITSTORY_PERIOD_START as a UTC midnight, or January 1st
// of now's UTC year when unset.
func periodStart(now time.Time) (time.Time, error) {
	value := os.Getenv(EnvPeriodStart)
	if value == "" {
		return scoring.YearToDate(now).Start, nil
	}
	start, err := time.Parse(periodStartLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: must be YYYY-MM-DD", EnvPeriodStart, value)
	}
	return start, nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envDuration parses a Go duration such as "90s", falling back when unset or invalid.
func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

// envPositiveInt parses a positive integer, falling back when unset, invalid or <= 0.
func envPositiveInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
