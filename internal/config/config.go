package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the pacing and retry tunables for talking to the store.
// The defaults are deliberately conservative: the store is treated as
// rate-limited, so bulk work trades throughput for staying under its limits.
type Config struct {
	// Bulk operation pacing.
	BatchSize  int           `yaml:"batch_size"`
	BatchPause time.Duration `yaml:"batch_pause"`
	ItemPause  time.Duration `yaml:"item_pause"`

	// Sequence allocation retry policy.
	MaxRetries  int           `yaml:"max_retries"`
	BackoffBase time.Duration `yaml:"backoff_base"`

	// Sustained store calls per second for paced operations.
	StoreRatePerSec int `yaml:"store_rate_per_sec"`

	// In-flight mutation guard cool-down after a mutation completes.
	GuardCooldown time.Duration `yaml:"guard_cooldown"`
}

// DefaultConfig returns the built-in pacing defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:       3,
		BatchPause:      300 * time.Millisecond,
		ItemPause:       100 * time.Millisecond,
		MaxRetries:      3,
		BackoffBase:     100 * time.Millisecond,
		StoreRatePerSec: 10,
		GuardCooldown:   500 * time.Millisecond,
	}
}

// Load reads configuration from an optional YAML file, then applies
// CREWPLAN_* environment overrides on top. A missing file is not an error;
// the defaults apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values that would stall or hammer the store.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative, got %d", c.MaxRetries)
	}
	if c.StoreRatePerSec <= 0 {
		return fmt.Errorf("store_rate_per_sec must be positive, got %d", c.StoreRatePerSec)
	}
	if c.BatchPause < 0 || c.ItemPause < 0 || c.BackoffBase < 0 || c.GuardCooldown < 0 {
		return fmt.Errorf("pauses and delays must be non-negative")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CREWPLAN_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}
	if v := os.Getenv("CREWPLAN_BATCH_PAUSE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.BatchPause = d
		}
	}
	if v := os.Getenv("CREWPLAN_ITEM_PAUSE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.ItemPause = d
		}
	}
	if v := os.Getenv("CREWPLAN_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("CREWPLAN_BACKOFF_BASE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.BackoffBase = d
		}
	}
	if v := os.Getenv("CREWPLAN_STORE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StoreRatePerSec = n
		}
	}
	if v := os.Getenv("CREWPLAN_GUARD_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.GuardCooldown = d
		}
	}
}
