// Package config loads the labyrinth.yaml project file used by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "labyrinth.yaml"

// Store kinds.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the project configuration. Command-line flags override it.
type Config struct {
	Dir      string      `yaml:"dir"`
	LogLevel string      `yaml:"log_level"`
	Seed     uint64      `yaml:"seed"`
	Store    StoreConfig `yaml:"store"`
	Redis    RedisConfig `yaml:"redis"`
	HTTP     HTTPConfig  `yaml:"http"`
	Metrics  bool        `yaml:"metrics"`
}

// StoreConfig selects where discovered routes are kept.
type StoreConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

// RedisConfig configures the Redis route store.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Dir:      ".",
		LogLevel: "warn",
		Store:    StoreConfig{Kind: StoreNone},
		Redis:    RedisConfig{Addr: "localhost:6379", Prefix: "labyrinth:route:"},
		HTTP:     HTTPConfig{Port: 8080},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case "", StoreNone, StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative")
	}
	return nil
}
