// Package entitlement wires the entitlement engine for production: the
// built-in clinic plan catalog (or a YAML override), a Postgres-backed
// subscription store with its migration, SQL usage counters for patients and
// organization users, and an optional Redis cache in front of the counters.
package entitlement
