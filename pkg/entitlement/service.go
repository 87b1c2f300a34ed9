package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
)

// DefaultGraceWindowDays is how long a paid subscription may stay past_due
// after its end date before it is forced to canceled. During the window
// access is denied but data is retained.
const DefaultGraceWindowDays = 30

// Service defines the public interface of the entitlement engine.
// Every privileged request goes through exactly one of the Check* gates;
// mutation endpoints additionally call CheckLimit before creating resources.
type Service interface {
	// Reconcile applies time-driven state transitions to the tenant's
	// subscription and returns the settled record. It is the only operation
	// that mutates subscription state due to time passing.
	Reconcile(ctx context.Context, tenantID uuid.UUID) (*subscription.Subscription, error)

	// CheckAccess is the base gate: may this tenant use the product at all.
	CheckAccess(ctx context.Context, tenantID uuid.UUID) (Verdict, error)

	// CheckPlan additionally requires the tenant's tier to meet min.
	CheckPlan(ctx context.Context, tenantID uuid.UUID, min plan.Tier) (Verdict, error)

	// CheckFeature additionally requires the tenant's tier to unlock feature.
	CheckFeature(ctx context.Context, tenantID uuid.UUID, feature plan.Feature) (Verdict, error)

	// CheckLimit compares the live resource count against the plan's limit.
	// Advisory: it does not reconcile and does not gate access by itself.
	CheckLimit(ctx context.Context, tenantID uuid.UUID, res Resource) (LimitResult, error)

	// Usage returns the current usage and limit for a resource.
	Usage(ctx context.Context, tenantID uuid.UUID, res Resource) (used, limit int64, err error)

	// UsagePercent returns usage as a percentage (0-100, or -1 for unlimited).
	// Returns 0 on errors so dashboards degrade quietly.
	UsagePercent(ctx context.Context, tenantID uuid.UUID, res Resource) int
}

// CounterFunc returns the current usage for a tenant resource.
// Must be fast as it's called on every resource creation attempt; consider
// database aggregates or short-lived cached values.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID) (int64, error)

type service struct {
	catalog   *plan.Catalog
	store     subscription.Store
	counters  map[Resource]CounterFunc
	log       *slog.Logger
	graceDays int
	now       func() time.Time
}

// NewService creates the engine with the given catalog source and store.
// Panics if src or store is nil to fail fast during initialization.
// Use Option functions to register usage counters and override defaults.
func NewService(ctx context.Context, src plan.Source, store subscription.Store, opts ...Option) (Service, error) {
	if src == nil {
		panic("entitlement: plan.Source is required")
	}
	if store == nil {
		panic("entitlement: subscription.Store is required")
	}

	catalog, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	s := &service{
		catalog:   catalog,
		store:     store,
		counters:  make(map[Resource]CounterFunc),
		log:       slog.Default(),
		graceDays: DefaultGraceWindowDays,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// CheckAccess reconciles the tenant's subscription and evaluates base access.
func (s *service) CheckAccess(ctx context.Context, tenantID uuid.UUID) (Verdict, error) {
	return s.resolveBaseAccess(ctx, tenantID)
}

// CheckPlan layers a minimum-tier requirement on top of the base gate.
func (s *service) CheckPlan(ctx context.Context, tenantID uuid.UUID, min plan.Tier) (Verdict, error) {
	v, err := s.resolveBaseAccess(ctx, tenantID)
	if err != nil || !v.Allowed {
		return v, err
	}

	if !v.Subscription.Tier.AtLeast(min) {
		denied := deny(v.Subscription, ReasonInsufficientPlan,
			fmt.Sprintf("This area requires the %s plan or higher.", min))
		denied.RequiredTier = min
		return denied, nil
	}

	return v, nil
}

// CheckFeature layers a named-capability requirement on top of the base gate.
// Unknown feature names gate to the enterprise tier rather than failing open.
func (s *service) CheckFeature(ctx context.Context, tenantID uuid.UUID, feature plan.Feature) (Verdict, error) {
	v, err := s.resolveBaseAccess(ctx, tenantID)
	if err != nil || !v.Allowed {
		return v, err
	}

	if !s.catalog.Unlocks(v.Subscription.Tier, feature) {
		required := s.catalog.MinimumTierFor(feature)
		denied := deny(v.Subscription, ReasonFeatureNotAvailable,
			fmt.Sprintf("The %s feature requires the %s plan.", feature, required))
		denied.RequiredTier = required
		denied.Feature = feature
		return denied, nil
	}

	return v, nil
}

// resolveBaseAccess is the single shared access sequence behind all three
// gates: reconcile, then classify the settled record.
//
// The expiry branches are evaluated ahead of the inactive-status branch on
// purpose: reconciliation demotes an expired paid subscription to past_due
// (or canceled), and callers need the grace/deleted reasons for those
// records, not a generic inactive denial.
func (s *service) resolveBaseAccess(ctx context.Context, tenantID uuid.UUID) (Verdict, error) {
	sub, err := s.Reconcile(ctx, tenantID)
	if errors.Is(err, subscription.ErrNotFound) {
		// Reconciliation could not produce a record; fall back to a direct read.
		sub, err = s.store.Get(ctx, tenantID)
		if errors.Is(err, subscription.ErrNotFound) {
			return deny(nil, ReasonSubscriptionNotFound, "No subscription found for this account."), nil
		}
	}
	if err != nil {
		return Verdict{}, err
	}

	// Recompute expiry against the possibly just-reconciled record.
	exp := sub.ExpiryAt(s.now().UTC())

	if exp.Expired && sub.Tier == plan.TierFree {
		return deny(sub, ReasonTrialExpired,
			"Your free trial has ended. Upgrade to a paid plan to continue."), nil
	}

	if exp.Expired && sub.Tier.Paid() {
		if exp.DaysElapsed >= s.graceDays {
			// Data-retention boundary reached.
			denied := deny(sub, ReasonExpiredDeleted,
				fmt.Sprintf("Your subscription expired more than %d days ago and access has been removed.", s.graceDays))
			denied.DaysElapsed = exp.DaysElapsed
			return denied, nil
		}

		// Grace preserves data from deletion, not live access.
		remaining := s.graceDays - exp.DaysElapsed
		denied := deny(sub, ReasonExpiredGracePeriod,
			fmt.Sprintf("Your subscription expired %d days ago. Renew within %d days to keep your data.", exp.DaysElapsed, remaining))
		denied.DaysElapsed = exp.DaysElapsed
		denied.DaysRemaining = remaining
		return denied, nil
	}

	if !sub.Usable() {
		return deny(sub, ReasonSubscriptionInactive, "Your subscription is not active."), nil
	}

	return allow(sub), nil
}
