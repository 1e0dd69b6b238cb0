// Package config loads and validates the batch CLI configuration.
//
// Configuration is layered: an optional config.yml provides the base, a
// .env file and the process environment override it via Viper's automatic
// binding, and command line flags take final precedence in main. Files are
// discovered in standard locations (cmd/grangerbatch/, config/, the
// working directory) unless explicit paths are given.
//
// # Usage
//
//	var cfg config.Config
//	err := config.LoadConfig("grangerbatch", &cfg, config.WithConfigFile(path))
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
//
// Environment variables map onto nested keys by underscore splitting, so
// BATCH_MAX_CONCURRENT sets batch.max_concurrent.
package config
