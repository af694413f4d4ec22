// Package config loads the server configuration from a TOML file, with a
// tolerated-missing .env file and environment variables taking precedence
// for deployment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/vanityaddr/btcvanity/pkg/vanity"
)

// Environment override keys.
const (
	envAPIPort = "BTCVANITY_API_PORT"
	envDBPath  = "BTCVANITY_DB_PATH"
)

// Config holds all configurable settings (decode from toml file).
type Config struct {
	Server  ServerConfig
	Search  SearchConfig
	Storage StorageConfig
	Log     LogConfig
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	APIPort        int
	AllowedOrigins []string `toml:",omitempty"`
}

// SearchConfig configures the search engine defaults.
type SearchConfig struct {
	Workers         int    // 0 selects the bounded default pool
	DefaultMaxTries uint64 // per-worker budget when a request omits max_tries
}

// StorageConfig configures the persisted-record store.
type StorageConfig struct {
	DBPath string
}

// LogConfig configures logging.
type LogConfig struct {
	Level      uint32
	JSONFormat bool
	Color      bool
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			APIPort: 11880,
		},
		Search: SearchConfig{
			Workers:         0,
			DefaultMaxTries: 500000,
		},
		Storage: StorageConfig{
			DBPath: "btcvanity.db",
		},
		Log: LogConfig{
			Level: 4, // logrus.InfoLevel
			Color: true,
		},
	}
}

// Load reads the TOML file at path (defaults apply when path is empty)
// and then applies .env / environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %q: %w", path, err)
		}
	}

	// Missing .env is fine; env vars may come from the host directly.
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envAPIPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envAPIPort, err)
		}
		c.Server.APIPort = port
	}
	if v := os.Getenv(envDBPath); v != "" {
		c.Storage.DBPath = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.APIPort <= 0 || c.Server.APIPort > 65535 {
		return fmt.Errorf("invalid api port %v", c.Server.APIPort)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("invalid worker count %v", c.Search.Workers)
	}
	if c.Search.Workers > vanity.DefaultMaxWorkers {
		// Cap to the shared-host bound.
		c.Search.Workers = vanity.DefaultMaxWorkers
	}
	if c.Search.DefaultMaxTries == 0 {
		return fmt.Errorf("default max tries must be positive")
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage db path must not be empty")
	}
	return nil
}
