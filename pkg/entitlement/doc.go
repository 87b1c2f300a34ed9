// Package entitlement decides, on every privileged request, whether a
// tenant's subscription permits the request: base access, minimum plan tier,
// named feature, or resource creation under a numeric limit.
//
// The engine follows a reconcile-then-check pattern. A subscription's stored
// status can be stale relative to wall-clock time, so every gate first runs
// Reconcile, the single component allowed to apply time-driven transitions
// (trial expiry, the paid grace window, forced cancellation), and only then
// classifies the settled record.
//
// Denials are verdict values with stable reason codes, never errors. Storage
// read failures propagate so callers can fail closed; reconcile write
// failures are logged and degrade to the pre-transition record.
//
// Typical wiring:
//
//	svc, err := entitlement.NewService(ctx, catalogSrc, store,
//	    entitlement.WithCounter(entitlement.ResourcePatients, countPatients),
//	    entitlement.WithCounter(entitlement.ResourceUsers, countUsers),
//	    entitlement.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	v, err := svc.CheckFeature(ctx, tenantID, plan.FeatureWhiteLabel)
//	if err != nil {
//	    return err // unable to authorize, fail closed
//	}
//	if !v.Allowed {
//	    // map v.Reason onto the transport response
//	}
//
// The engine holds no cross-request state beyond the immutable plan catalog;
// subscription records are read fresh per request because caching them would
// break the grace-period invariants.
package entitlement
