package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	API struct {
		BaseURL            string  `yaml:"base_url"`
		TimeoutSeconds     int     `yaml:"timeout_seconds"`
		CacheTTLSeconds    int     `yaml:"cache_ttl_seconds"`
		RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
		RateLimitBurst     int     `yaml:"rate_limit_burst"`
	} `yaml:"api"`

	Store struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Prefix  string `yaml:"prefix"`
	} `yaml:"store"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Booking struct {
		MaxAdvanceDays int  `yaml:"max_advance_days"`
		DegradedMode   bool `yaml:"degraded_mode"`
	} `yaml:"booking"`

	Payment struct {
		MaxRetries          int  `yaml:"max_retries"`
		EnableFailAction    bool `yaml:"enable_fail_action"`
		ClearDraftOnSuccess bool `yaml:"clear_draft_on_success"`
		SuccessDelayMs      int  `yaml:"success_delay_ms"`
		BlockedDelayMs      int  `yaml:"blocked_delay_ms"`
	} `yaml:"payment"`

	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
		HealthCheckPort   int  `yaml:"health_check_port"`
	} `yaml:"monitoring"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.API.BaseURL = "http://localhost:8080/api"
	cfg.Store.Backend = StoreSQLite
	cfg.Booking.DegradedMode = true
	cfg.Payment.EnableFailAction = true
	cfg.Payment.ClearDraftOnSuccess = true
	cfg.applyDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	// A .env next to the config file feeds the ${ENV_VAR} placeholders.
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.Store.Backend == StoreSQLite {
		if err = os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = StoreSQLite
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/pitch_storage.db"
	}
	if c.Store.Prefix == "" {
		c.Store.Prefix = "pitch:"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "exports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
}

// Timeout is the HTTP client timeout; zero leaves the transport default.
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	if c.API.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.API.CacheTTLSeconds) * time.Second
}

func (c *Config) BookingMaxAdvance() time.Duration {
	if c.Booking.MaxAdvanceDays <= 0 {
		return 90 * 24 * time.Hour
	}
	return time.Duration(c.Booking.MaxAdvanceDays) * 24 * time.Hour
}

func (c *Config) MaxRetries() int {
	if c.Payment.MaxRetries <= 0 {
		return 2
	}
	return c.Payment.MaxRetries
}

func (c *Config) SuccessDelay() time.Duration {
	if c.Payment.SuccessDelayMs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Payment.SuccessDelayMs) * time.Millisecond
}

func (c *Config) BlockedDelay() time.Duration {
	if c.Payment.BlockedDelayMs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Payment.BlockedDelayMs) * time.Millisecond
}
