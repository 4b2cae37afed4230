// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from defaults,
// environment variables, command-line flags, and an optional config file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds session and integrity settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local durable store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local API listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings for the remote backend client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds drain trigger and queue retention settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// ConfigFilePath is the optional path to a JSON or TOML configuration
	// file. The format is chosen by file extension (.toml, otherwise JSON).
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Token is the bearer token of the current session. Its family_id claim
	// scopes queued operations.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// HashKey is the HMAC key used for request integrity hashing
	// (the HashSHA256 header). Optional.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// LogPath is the file the client logs to, rotated by size. Empty logs
	// to stdout.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Storage groups the configuration for the local durable store.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local database.
type DB struct {
	// Driver is the database/sql driver name: "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name, a file path for sqlite3 or a connection
	// URL for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds settings of the local API served to the UI process.
type Server struct {
	// HTTPAddress is the TCP address of the local API in "host:port" form.
	// Empty disables the local API.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings of the remote backend client.
type Adapter struct {
	// HTTPAddress is the base address of the backend REST API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every remote call. An expired call counts as a
	// retryable failure of that single operation.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ProbeInterval is how often reachability of the backend is probed.
	// Env: ADAPTER_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Workers holds drain trigger and retention settings.
type Workers struct {
	// SyncInterval is the period of the background drain while reachable.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// SettleDelay is how long connectivity must stay reachable before a
	// reconnect drain starts.
	// Env: WORKERS_SETTLE_DELAY
	SettleDelay time.Duration `env:"SETTLE_DELAY"`

	// RetentionWindow is the age after which a still-failing queued
	// operation is evicted.
	// Env: WORKERS_RETENTION_WINDOW
	RetentionWindow time.Duration `env:"RETENTION_WINDOW"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags
//  4. Config file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withFile().
		build()
}
