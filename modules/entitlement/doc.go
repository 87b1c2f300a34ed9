// Package entitlement adapts engine verdicts to HTTP: gate middleware for
// chi routers that denies with the verdict's reason code as a JSON body and
// attaches allowed subscription snapshots to the request context.
package entitlement
