// Package plan defines the plan catalog: the ordered subscription tiers, the
// entitlement limits each tier carries, and the feature-to-tier requirement
// table used by the feature gate.
//
// The catalog is pure data. It is loaded once at process start through a
// Source (in-memory for tests, YAML file for deployments) and is immutable
// afterwards, so any number of request goroutines may read it without
// synchronization.
//
// Tier comparisons always go through the hierarchy index:
//
//	if !sub.Tier.AtLeast(plan.TierProfessional) {
//	    // deny
//	}
//
// String equality on tiers is never a substitute for AtLeast: the hierarchy
// is a total order and gate decisions depend on it.
package plan
