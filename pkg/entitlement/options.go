package entitlement

import (
	"log/slog"
	"time"
)

// Option configures a Service instance.
type Option func(*service)

// WithCounter registers a counter function for a specific resource.
// Counter functions must be fast as they're called on every creation attempt.
// Panics if a counter for the same resource has already been registered
// to prevent accidental overwrites and ensure explicit configuration.
func WithCounter(res Resource, fn CounterFunc) Option {
	return func(s *service) {
		if fn == nil {
			return
		}
		if _, exists := s.counters[res]; exists {
			panic("entitlement: counter for resource " + string(res) + " already registered")
		}
		s.counters[res] = fn
	}
}

// WithLogger sets the logger used for degraded reconcile writes.
// Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the wall clock. Intended for tests that need
// deterministic expiry and grace calculations.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithGraceWindow overrides the grace window length in days.
// Non-positive values are ignored.
func WithGraceWindow(days int) Option {
	return func(s *service) {
		if days > 0 {
			s.graceDays = days
		}
	}
}
