// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, overlaid with environment
// variables (a .env file is honoured) and validated using struct tags.
// A missing config.yml is not an error: every setting has a default.
package config
