// Package redis provides Redis connection management with retries and a
// readiness probe. The engine uses Redis only for short-lived usage counter
// caching; subscription records are never stored here.
package redis
