// Package config provides 12-factor configuration for the symkernel
// binaries.
//
// Configuration is loaded from environment variables with defaults matching
// symkernel.DefaultConfig. A YAML or TOML file may supply a base layer;
// variables that are set still win.
//
// Configuration Sections:
//   - Server: HTTP listen address (port, host)
//   - Engine: precision, iteration cap, exact-digit limit, cache size, batch workers
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	engineCfg, err := cfg.ToEngine()
//
// Environment Variables:
//   - PORT, HOST
//   - SYMKERNEL_PRECISION, SYMKERNEL_MAX_ITERATIONS, SYMKERNEL_MAX_EXACT_DIGITS
//   - SYMKERNEL_CACHE_SIZE, SYMKERNEL_BATCH_WORKERS
//   - LOG_LEVEL, LOG_DEV
package config
