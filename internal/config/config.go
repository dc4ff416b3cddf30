// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// teamsync client library. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the authoritative backend endpoint settings used by the
	// collection transport.
	Remote Remote `envPrefix:"REMOTE_"`

	// Identity holds the endpoint settings for the identity provider that
	// issues session tokens.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Local holds the on-disk cache settings.
	Local Local `envPrefix:"LOCAL_"`

	// Sync holds reconciliation tuning: the collection set, the
	// per-collection throttle, and the periodic background pass.
	Sync Sync `envPrefix:"SYNC_"`

	// Bootstrap holds the bounded-retry startup probe settings.
	Bootstrap Bootstrap `envPrefix:"BOOTSTRAP_"`

	// Probe holds the steady-state connectivity probe settings.
	Probe Probe `envPrefix:"PROBE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds connection settings for the authoritative backend.
type Remote struct {
	// BaseURL is the HTTP base of the backend API
	// (e.g. "https://sync.example.com").
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// WatchURL is the WebSocket base for live collection subscriptions.
	// When empty it is derived from BaseURL by swapping the scheme.
	// Env: REMOTE_WATCH_URL
	WatchURL string `env:"WATCH_URL"`

	// RequestTimeout bounds a single outbound request (e.g. "10s").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// BatchLimit is the backend's per-request record ceiling. A collection
	// commit counts its delete phase and its write phase against the same
	// limit.
	// Env: REMOTE_BATCH_LIMIT
	BatchLimit int `env:"BATCH_LIMIT"`
}

// Identity holds connection settings for the identity provider.
type Identity struct {
	// BaseURL is the HTTP base of the identity API. Defaults to
	// Remote.BaseURL when empty.
	// Env: IDENTITY_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single identity request.
	// Env: IDENTITY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Local holds settings for the SQLite-backed offline cache.
type Local struct {
	// DSN is the SQLite connection string for the cache database
	// (e.g. "/var/lib/teamsync/cache.db").
	// Env: LOCAL_DSN
	DSN string `env:"DSN"`

	// KeyPrefix namespaces cache keys, isolating multiple tenants sharing
	// one cache file.
	// Env: LOCAL_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// Sync tunes the reconciliation behaviour.
type Sync struct {
	// Collections seeds the fixed enumeration order of full reconciliation
	// passes. Collections touched at runtime are added to the set.
	// Env: SYNC_COLLECTIONS (comma-separated)
	Collections []string `env:"COLLECTIONS" envSeparator:","`

	// Throttle is the delay between collections during a full pass.
	// Env: SYNC_THROTTLE
	Throttle time.Duration `env:"THROTTLE"`

	// JobInterval is the period of the background reconciliation worker.
	// Zero disables the worker.
	// Env: SYNC_JOB_INTERVAL
	JobInterval time.Duration `env:"JOB_INTERVAL"`
}

// Bootstrap holds the bounded-retry startup settings: the backend is polled
// PollInterval apart at most MaxAttempts times before the client degrades
// permanently to local-only mode.
type Bootstrap struct {
	// Env: BOOTSTRAP_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// Env: BOOTSTRAP_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`
}

// Probe holds the steady-state connectivity probe settings.
type Probe struct {
	// Interval is the period between reachability probes.
	// Env: PROBE_INTERVAL
	Interval time.Duration `env:"INTERVAL"`
}

// GetConfig loads, merges, and validates the client configuration from all
// available sources in the following priority order (earlier sources win
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
