package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const appName = "accountctl"

// envFileName is an optional dotenv file read from the config file's
// directory. Real environment variables take precedence over it.
const envFileName = "accountctl.env"

// Storage backends for the persisted session mirror.
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// Config holds all accountctl configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Session SessionConfig `toml:"session"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig points at the remote account service.
type APIConfig struct {
	BaseURL string `toml:"base_url" env:"API_URL, overwrite"`
	// Timeout is a duration string; empty means no client-side timeout.
	Timeout string `toml:"timeout" env:"API_TIMEOUT, overwrite"`
}

// SessionConfig controls the persisted session mirror.
type SessionConfig struct {
	TTL string `toml:"ttl" env:"SESSION_TTL, overwrite"`
}

// StorageConfig selects where the session mirror lives.
type StorageConfig struct {
	Backend string `toml:"backend" env:"STORAGE_BACKEND, overwrite"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL, overwrite"`
	Pretty bool   `toml:"pretty" env:"LOG_PRETTY, overwrite"`
}

func defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://metscare-be.vercel.app",
		},
		Session: SessionConfig{
			TTL: "168h",
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config from path. If path is empty, returns defaults.
// Environment variables prefixed with ACCOUNTCTL_ override file values,
// either from the process environment or from accountctl.env beside path.
func Load(path string) (*Config, error) {
	lookuper := envconfig.OsLookuper()
	if path != "" {
		dotenv, err := readEnvFile(filepath.Join(filepath.Dir(path), envFileName))
		if err != nil {
			return nil, err
		}
		if len(dotenv) > 0 {
			lookuper = envconfig.MultiLookuper(lookuper, envconfig.MapLookuper(dotenv))
		}
	}
	return load(path, lookuper)
}

// readEnvFile parses a dotenv file. A missing file yields no values.
func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return vals, nil
}

func load(path string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper("ACCOUNTCTL_", lookuper),
	}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail far from where they were set.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base_url %q: must be an http(s) URL", c.API.BaseURL)
	}
	if _, err := c.APITimeout(); err != nil {
		return err
	}
	if _, err := c.SessionTTL(); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case BackendSQLite, BackendKeyring:
	default:
		return fmt.Errorf("invalid storage backend %q (use %s or %s)", c.Storage.Backend, BackendSQLite, BackendKeyring)
	}
	return nil
}

// APITimeout returns the per-request timeout, zero when unset.
func (c *Config) APITimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid api timeout %q", c.API.Timeout)
	}
	return d, nil
}

// SessionTTL returns how long persisted session entries live.
func (c *Config) SessionTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Session.TTL)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid session ttl %q", c.Session.TTL)
	}
	return d, nil
}

// ConfigDir returns the accountctl config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the accountctl data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}
