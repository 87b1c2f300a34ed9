// Package pg provides PostgreSQL connectivity: pgx pool setup with retries,
// a health check closure, and goose migration application from an embedded
// filesystem.
package pg
