package config

import (
	"fmt"
	"time"
)

// ClientApp holds session and integrity settings.
type ClientApp struct {
	// Token is the session bearer token.
	Token string
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
	// LogPath is the rotated log file, or empty for stdout.
	LogPath string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend REST endpoint address.
	HTTPAddress string
	// RequestTimeout is the timeout for every outbound request.
	RequestTimeout time.Duration
	// ProbeInterval is the connectivity probe period.
	ProbeInterval time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// Driver is "sqlite3" or "pgx".
	Driver string
	// DSN is the SQLite file path or the PostgreSQL connection string.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background drain runs.
	SyncInterval time.Duration
	// SettleDelay is the reconnect debounce before a drain.
	SettleDelay time.Duration
	// RetentionWindow is the age at which failing operations are evicted.
	RetentionWindow time.Duration
}

// ClientServer contains local API settings.
type ClientServer struct {
	// HTTPAddress is empty when the local API is disabled.
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Server  ClientServer
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. args are the command-line arguments
// without the program name.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Token:   cfg.App.Token,
			HashKey: cfg.App.HashKey,
			LogPath: cfg.App.LogPath,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ProbeInterval:  cfg.Adapter.ProbeInterval,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Driver: cfg.Storage.DB.Driver,
				DSN:    cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			SettleDelay:     cfg.Workers.SettleDelay,
			RetentionWindow: cfg.Workers.RetentionWindow,
		},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}
}
