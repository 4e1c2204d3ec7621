// Package config loads client and logging configuration from YAML files
// and the environment, with .env support and struct-tag validation.
package config
