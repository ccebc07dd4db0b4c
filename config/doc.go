// Package config loads and validates the application configuration from
// a YAML file (config.yml by default).
package config
