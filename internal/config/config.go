package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDomainSuffix is appended to every base name submitted through the register form
const DefaultDomainSuffix = ".block"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Pebble    PebbleConfig    `yaml:"pebble"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// LedgerConfig describes how the dashboard reaches the ledger service
type LedgerConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// DashboardConfig holds the deploy-time constants of the dashboard
type DashboardConfig struct {
	DomainSuffix      string `yaml:"domain_suffix"`
	SettleTimeoutSecs int    `yaml:"settle_timeout_secs"`
	EventBufferSize   int    `yaml:"event_buffer_size"`
	PollIntervalSecs  int    `yaml:"poll_interval_secs"`
}

// PebbleConfig represents the Pebble database configuration (ledgerd only)
type PebbleConfig struct {
	Path string `yaml:"path"`
}

// LogConfig selects the most verbose enabled log level
type LogConfig struct {
	Level string `yaml:"level"`
}

// Timeout returns the per-request ledger timeout
func (l LedgerConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSecs) * time.Second
}

// SettleTimeout returns how long a front-end action waits for rendering before redirecting
func (d DashboardConfig) SettleTimeout() time.Duration {
	return time.Duration(d.SettleTimeoutSecs) * time.Second
}

// PollInterval returns how often the dashboard checks the ledger for blocks
// appended by other clients, 0 when disabled
func (d DashboardConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalSecs) * time.Second
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Ledger: LedgerConfig{
			BaseURL:     "http://127.0.0.1:5000",
			TimeoutSecs: 10,
		},
		Dashboard: DashboardConfig{
			DomainSuffix:      DefaultDomainSuffix,
			SettleTimeoutSecs: 3,
			EventBufferSize:   64,
		},
		Pebble: PebbleConfig{
			Path: "./data/pebble",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file and environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if it exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.loadEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadEnv() {
	// Server config
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}

	// Ledger config
	if url := os.Getenv("LEDGER_URL"); url != "" {
		c.Ledger.BaseURL = url
	}
	if timeout := os.Getenv("LEDGER_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.Ledger.TimeoutSecs = t
		}
	}

	// Dashboard config
	if suffix, ok := os.LookupEnv("DOMAIN_SUFFIX"); ok {
		c.Dashboard.DomainSuffix = suffix
	}
	if settle := os.Getenv("SETTLE_TIMEOUT"); settle != "" {
		if s, err := strconv.Atoi(settle); err == nil {
			c.Dashboard.SettleTimeoutSecs = s
		}
	}
	if poll := os.Getenv("POLL_INTERVAL"); poll != "" {
		if p, err := strconv.Atoi(poll); err == nil {
			c.Dashboard.PollIntervalSecs = p
		}
	}

	// Pebble config
	if path := os.Getenv("PEBBLE_PATH"); path != "" {
		c.Pebble.Path = path
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Ledger.BaseURL == "" {
		return fmt.Errorf("ledger base_url is required")
	}
	if c.Ledger.TimeoutSecs <= 0 {
		c.Ledger.TimeoutSecs = 10
	}
	if c.Dashboard.PollIntervalSecs < 0 {
		return fmt.Errorf("invalid dashboard poll_interval_secs: %d", c.Dashboard.PollIntervalSecs)
	}
	if c.Dashboard.EventBufferSize <= 0 {
		c.Dashboard.EventBufferSize = 64
	}
	return nil
}
