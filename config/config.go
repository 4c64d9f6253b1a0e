package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Messaging MessagingConfig `yaml:"messaging"`
	DevServer DevServerConfig `yaml:"dev_server"`
}

// APIConfig holds the backend connection settings. BaseURL is used both for
// default requests and for rewriting loopback hosts in scanned QR links.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"` // Ignored by YAML parser
	RatePerSec     float64       `yaml:"rate_per_sec"`
	RateBurst      int           `yaml:"rate_burst"`
}

// SessionConfig holds the local session database settings.
type SessionConfig struct {
	DBPath string `yaml:"db_path"`
}

// MessagingConfig holds the conversation polling settings.
type MessagingConfig struct {
	PollIntervalMillis int           `yaml:"poll_interval_millis"`
	PollInterval       time.Duration `yaml:"-"`
}

// DevServerConfig holds the settings for the local development stub backend.
type DevServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateBurst       int     `yaml:"rate_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration usable without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:3000"
	_ = cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be configured")
	}
	base, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL)
	}

	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}
	cfg.API.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second

	if cfg.API.RatePerSec <= 0 {
		cfg.API.RatePerSec = 10
	}
	if cfg.API.RateBurst <= 0 {
		cfg.API.RateBurst = 5
	}

	if cfg.Session.DBPath == "" {
		cfg.Session.DBPath = "./session.db"
	}

	if cfg.Messaging.PollIntervalMillis <= 0 {
		cfg.Messaging.PollIntervalMillis = 2000
	}
	cfg.Messaging.PollInterval = time.Duration(cfg.Messaging.PollIntervalMillis) * time.Millisecond

	if cfg.DevServer.Port <= 0 {
		cfg.DevServer.Port = 3000
	}
	if cfg.DevServer.RateLimitPerSec <= 0 {
		cfg.DevServer.RateLimitPerSec = 10
	}
	// The burst follows the configured rate so raising the rate never
	// leaves the bucket too small for back-to-back requests.
	if cfg.DevServer.RateBurst <= 0 {
		cfg.DevServer.RateBurst = int(cfg.DevServer.RateLimitPerSec)
	}
	if cfg.DevServer.CacheTTLSeconds <= 0 {
		cfg.DevServer.CacheTTLSeconds = 5
	}
	return nil
}
