package entitlement

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
)

// Reconcile reads the tenant's subscription, applies any expiration-driven
// transition, and returns the settled record.
//
// Transitions:
//   - expired free trial               -> canceled (CanceledAt set)
//   - expired paid, grace window over  -> canceled (CanceledAt set)
//   - expired paid, still active       -> past_due
//   - anything else                    -> no write
//
// The transition is a deterministic function of (tier, status, end date, now)
// and idempotent: concurrent duplicate writes set the identical target state,
// so no row lock or compare-and-swap is needed.
//
// A write failure is logged and degrades to a fresh non-reconciling read so
// that a transient storage error does not block the read path; callers still
// apply gate logic against whatever record comes back.
func (s *service) Reconcile(ctx context.Context, tenantID uuid.UUID) (*subscription.Subscription, error) {
	sub, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	exp := sub.ExpiryAt(now)
	if !exp.Expired {
		return sub, nil
	}

	switch {
	case sub.Status == subscription.StatusTrialing && sub.Tier == plan.TierFree:
		sub.Status = subscription.StatusCanceled
		sub.CanceledAt = &now

	case sub.Tier.Paid() && exp.DaysElapsed >= s.graceDays && sub.Status != subscription.StatusCanceled:
		sub.Status = subscription.StatusCanceled
		sub.CanceledAt = &now

	case sub.Tier.Paid() && sub.Status == subscription.StatusActive:
		// Within grace: demote to past_due, keep CanceledAt untouched.
		sub.Status = subscription.StatusPastDue

	default:
		// Already settled for the current wall-clock time.
		return sub, nil
	}

	sub.UpdatedAt = now
	if err := s.store.Save(ctx, sub); err != nil {
		s.log.ErrorContext(ctx, "failed to persist subscription transition",
			"tenant_id", tenantID,
			"status", sub.Status,
			"error", err,
		)

		fresh, readErr := s.store.Get(ctx, tenantID)
		if readErr != nil {
			return nil, readErr
		}
		return fresh, nil
	}

	return sub, nil
}
