// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] is usable.
// Field-level rules live in [ClientConfig.validate]; the raw view only
// rejects an unknown driver so a typo fails before any defaults hide it.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "", "sqlite3", "pgx":
		return nil
	default:
		return ErrInvalidStorageConfigs
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.Driver == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.ProbeInterval <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.SettleDelay < 0 || cfg.Workers.RetentionWindow <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Server.HTTPAddress != "" && cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
