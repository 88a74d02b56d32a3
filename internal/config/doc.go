// Package config provides environment-based configuration.
//
// Loads from an optional .env file (godotenv), maps to a Config struct with
// per-field defaults. Validates backend selection and duration formats.
package config
