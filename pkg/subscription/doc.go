// Package subscription defines the subscription record, its status enum, the
// pure expiration classifier, and the Store interface the entitlement engine
// persists through.
//
// Status and expiry are deliberately separate dimensions. Status is what is
// written in storage; expiry is computed from EndDate against wall-clock time.
// A record can therefore be "active" on disk yet already expired - the
// entitlement engine's reconciler is the single component that closes that
// gap, and it is the only writer of time-driven status transitions.
package subscription
