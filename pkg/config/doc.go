// Package config loads environment-based configuration structs using
// caarlos0/env struct tags, with one-time .env bootstrapping via godotenv.
package config
