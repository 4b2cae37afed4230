package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the client command-line flags from args.
//
// Flags:
//
//	-a local API address in format [host]:[port]
//	-s backend address (URL or host:port)
//	-d database DSN
//	-driver database driver (sqlite3 or pgx)
//	-c/-config config file path (JSON or TOML)
//	-token session bearer token
//	-hash-key request integrity hash key
//	-log log file path
//	-request-timeout remote request timeout (e.g. "15s")
//	-probe-interval connectivity probe interval
//	-sync-interval background drain interval
//	-settle-delay reconnect settle delay
//	-retention queued operation retention window
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("chore-keeper", flag.ContinueOnError)

	var (
		serverAddress   NetAddress
		adapterAddress  string
		databaseDSN     string
		databaseDriver  string
		configPath      string
		token           string
		hashKey         string
		logPath         string
		requestTimeout  time.Duration
		probeInterval   time.Duration
		syncInterval    time.Duration
		settleDelay     time.Duration
		retentionWindow time.Duration
	)

	fs.Var(&serverAddress, "a", "Local API net address host:port")
	fs.StringVar(&adapterAddress, "s", "", "Backend address")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (sqlite3, pgx)")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&token, "token", "", "Session bearer token")
	fs.StringVar(&hashKey, "hash-key", "", "Security hash key")
	fs.StringVar(&logPath, "log", "", "Log file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 15s)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval")
	fs.DurationVar(&settleDelay, "settle-delay", 0, "Reconnect settle delay")
	fs.DurationVar(&retentionWindow, "retention", 0, "Queued operation retention window")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Token:   token,
			HashKey: hashKey,
			LogPath: logPath,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			ProbeInterval:  probeInterval,
		},
		Workers: Workers{
			SyncInterval:    syncInterval,
			SettleDelay:     settleDelay,
			RetentionWindow: retentionWindow,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
