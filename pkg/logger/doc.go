// Package logger builds configured log/slog loggers with sensible defaults:
// JSON at info level for production, text at debug level for development.
// Attribute helpers keep key names consistent across the codebase.
package logger
