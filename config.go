package symkernel

import (
	"fmt"

	"github.com/njchilds90/symkernel/number"
)

// Config is the immutable configuration of an Engine.
type Config struct {
	// Precision is the number of significant digits kept by decimals.
	Precision uint32 `json:"precision" yaml:"precision" toml:"precision"`
	// MaxIterations caps the canonicalize/rewrite cycles of one Simplify call.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations" toml:"max_iterations"`
	// MaxExactDigits is the digit count past which exact results fall back to
	// decimals.
	MaxExactDigits int `json:"max_exact_digits" yaml:"max_exact_digits" toml:"max_exact_digits"`
	// CacheSize is the number of memoized Simplify results; 0 disables the
	// cache.
	CacheSize int `json:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Precision:      number.DefaultPrecision,
		MaxIterations:  64,
		MaxExactDigits: number.DefaultMaxExactDigits,
		CacheSize:      1024,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Precision < 1 || c.Precision > number.MaxPrecision {
		return fmt.Errorf("precision %d out of range [1, %d]", c.Precision, number.MaxPrecision)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.MaxExactDigits <= 0 {
		return fmt.Errorf("max exact digits must be positive, got %d", c.MaxExactDigits)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	return nil
}
