package config

import "time"

const (
	DefaultDriver          = "sqlite3"
	DefaultDSN             = "chore-keeper.db"
	DefaultAdapterAddress  = "http://localhost:8080"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultProbeInterval   = 10 * time.Second
	DefaultSyncInterval    = 5 * time.Minute
	DefaultSettleDelay     = time.Second
	DefaultRetentionWindow = 7 * 24 * time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{Driver: DefaultDriver, DSN: DefaultDSN}},
		Server:  Server{RequestTimeout: DefaultRequestTimeout},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
			ProbeInterval:  DefaultProbeInterval,
		},
		Workers: Workers{
			SyncInterval:    DefaultSyncInterval,
			SettleDelay:     DefaultSettleDelay,
			RetentionWindow: DefaultRetentionWindow,
		},
	}
}
