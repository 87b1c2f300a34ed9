// Package httpserver runs an http.Server with graceful shutdown tied to
// context cancellation and OS termination signals, plus probe handlers for
// container orchestrators.
package httpserver
