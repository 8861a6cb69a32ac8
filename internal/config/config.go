// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer optional file and environment over defaults in Load.
// - External errors are wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration for matchbookd.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of submission workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// SeasonFile points at the season YAML (point table, validation
	// mappings). Empty means the built-in reference season.
	SeasonFile string `koanf:"season_file"`

	// ResultsBaseURL and ResultsAPIKey configure the official results
	// provider. An empty base URL disables validation lookups.
	ResultsBaseURL string `koanf:"results_base_url"`
	ResultsAPIKey  string `koanf:"results_api_key"`

	// ResultsTimeoutMS bounds one results API request.
	ResultsTimeoutMS int `koanf:"results_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		QueueSize:        10_000,
		WorkerCount:      runtime.NumCPU() * 2,
		DedupeSize:       50_000,
		SeasonFile:       "",
		ResultsBaseURL:   "https://www.thebluealliance.com/api/v3",
		ResultsAPIKey:    "",
		ResultsTimeoutMS: 10_000,
	}
}
