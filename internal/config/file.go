package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig is the on-disk layout shared by the JSON and TOML formats.
type fileConfig struct {
	App struct {
		Token   string `json:"token" toml:"token"`
		HashKey string `json:"hash_key" toml:"hash_key"`
		LogPath string `json:"log_path" toml:"log_path"`
	} `json:"app" toml:"app"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" toml:"driver"`
			DSN    string `json:"dsn" toml:"dsn"`
		} `json:"db" toml:"db"`
	} `json:"storage" toml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"server" toml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
		ProbeInterval  Duration `json:"probe_interval" toml:"probe_interval"`
	} `json:"adapter" toml:"adapter"`

	Workers struct {
		SyncInterval    Duration `json:"sync_interval" toml:"sync_interval"`
		SettleDelay     Duration `json:"settle_delay" toml:"settle_delay"`
		RetentionWindow Duration `json:"retention_window" toml:"retention_window"`
	} `json:"workers" toml:"workers"`
}

// parseConfigFile reads a config file, choosing the decoder by extension:
// ".toml" uses BurntSushi/toml, anything else is decoded as JSON.
func parseConfigFile(path string) (*StructuredConfig, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return parseTOML(path)
	}
	return parseJSON(path)
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var fc fileConfig
	if err := json.NewDecoder(jsonFile).Decode(&fc); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return fc.toStructured(), nil
}

func parseTOML(tomlFilePath string) (*StructuredConfig, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(tomlFilePath, &fc); err != nil {
		return nil, fmt.Errorf("error decoding toml configs: %w", err)
	}

	return fc.toStructured(), nil
}

func (fc fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Token:   fc.App.Token,
			HashKey: fc.App.HashKey,
			LogPath: fc.App.LogPath,
		},
		Storage: Storage{
			DB: DB{
				Driver: fc.Storage.DB.Driver,
				DSN:    fc.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			ProbeInterval:  time.Duration(fc.Adapter.ProbeInterval),
		},
		Workers: Workers{
			SyncInterval:    time.Duration(fc.Workers.SyncInterval),
			SettleDelay:     time.Duration(fc.Workers.SettleDelay),
			RetentionWindow: time.Duration(fc.Workers.RetentionWindow),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and TOML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
