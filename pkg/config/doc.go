// Package config loads typed configuration structs from environment
// variables (github.com/caarlos0/env) with optional .env file support
// for local development (github.com/joho/godotenv).
package config
