package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	sk "github.com/njchilds90/symkernel"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig `yaml:"server" toml:"server"`
	Engine  EngineConfig `yaml:"engine" toml:"engine"`
	Logging LogConfig    `yaml:"logging" toml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080" yaml:"port" toml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host" toml:"host"`
}

// EngineConfig holds simplifier limits.
type EngineConfig struct {
	Precision      uint32 `envconfig:"SYMKERNEL_PRECISION" default:"21" yaml:"precision" toml:"precision"`
	MaxIterations  int    `envconfig:"SYMKERNEL_MAX_ITERATIONS" default:"64" yaml:"max_iterations" toml:"max_iterations"`
	MaxExactDigits int    `envconfig:"SYMKERNEL_MAX_EXACT_DIGITS" default:"4096" yaml:"max_exact_digits" toml:"max_exact_digits"`
	CacheSize      int    `envconfig:"SYMKERNEL_CACHE_SIZE" default:"1024" yaml:"cache_size" toml:"cache_size"`
	BatchWorkers   int    `envconfig:"SYMKERNEL_BATCH_WORKERS" default:"4" yaml:"batch_workers" toml:"batch_workers"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	ec := sk.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
		Engine: EngineConfig{
			Precision:      ec.Precision,
			MaxIterations:  ec.MaxIterations,
			MaxExactDigits: ec.MaxExactDigits,
			CacheSize:      ec.CacheSize,
			BatchWorkers:   4,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// LoadFile reads a YAML or TOML file over the defaults, then applies any
// environment variables that are set.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrides mirrors Config without defaults; unset variables stay nil.
type overrides struct {
	Port           *string `envconfig:"PORT"`
	Host           *string `envconfig:"HOST"`
	Precision      *uint32 `envconfig:"SYMKERNEL_PRECISION"`
	MaxIterations  *int    `envconfig:"SYMKERNEL_MAX_ITERATIONS"`
	MaxExactDigits *int    `envconfig:"SYMKERNEL_MAX_EXACT_DIGITS"`
	CacheSize      *int    `envconfig:"SYMKERNEL_CACHE_SIZE"`
	BatchWorkers   *int    `envconfig:"SYMKERNEL_BATCH_WORKERS"`
	LogLevel       *string `envconfig:"LOG_LEVEL"`
	LogDev         *bool   `envconfig:"LOG_DEV"`
}

func applyEnv(cfg *Config) error {
	var o overrides
	if err := envconfig.Process("", &o); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	set(&cfg.Server.Port, o.Port)
	set(&cfg.Server.Host, o.Host)
	set(&cfg.Engine.Precision, o.Precision)
	set(&cfg.Engine.MaxIterations, o.MaxIterations)
	set(&cfg.Engine.MaxExactDigits, o.MaxExactDigits)
	set(&cfg.Engine.CacheSize, o.CacheSize)
	set(&cfg.Engine.BatchWorkers, o.BatchWorkers)
	set(&cfg.Logging.Level, o.LogLevel)
	set(&cfg.Logging.Development, o.LogDev)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ToEngine converts the engine section to a validated symkernel.Config.
func (c *Config) ToEngine() (sk.Config, error) {
	ec := sk.Config{
		Precision:      c.Engine.Precision,
		MaxIterations:  c.Engine.MaxIterations,
		MaxExactDigits: c.Engine.MaxExactDigits,
		CacheSize:      c.Engine.CacheSize,
	}
	if err := ec.Validate(); err != nil {
		return sk.Config{}, err
	}
	return ec, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
