package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
)

// CheckLimit compares the live resource count against the tenant's plan limit.
// Advisory: reads the subscription without reconciling. A missing subscription
// yields a zero-valued denial, not an error.
//
// Unlimited limits short-circuit before the counter runs: the result is
// always allowed, so the counting query is skipped entirely.
// Otherwise allowed = current < limit; reaching exactly the limit blocks the
// next creation.
func (s *service) CheckLimit(ctx context.Context, tenantID uuid.UUID, res Resource) (LimitResult, error) {
	sub, err := s.store.Get(ctx, tenantID)
	if errors.Is(err, subscription.ErrNotFound) {
		return LimitResult{}, nil
	}
	if err != nil {
		return LimitResult{}, err
	}

	limit, err := s.limitFor(sub.Tier, res)
	if err != nil {
		return LimitResult{}, err
	}

	if limit == plan.Unlimited {
		return LimitResult{Allowed: true, Limit: plan.Unlimited}, nil
	}

	current, err := s.count(ctx, tenantID, res)
	if err != nil {
		return LimitResult{}, err
	}

	return LimitResult{
		Allowed: current < limit,
		Current: current,
		Limit:   limit,
	}, nil
}

// Usage returns the current usage and limit for a resource.
// Unlike CheckLimit, the counter runs even for unlimited plans so dashboards
// can show real numbers.
func (s *service) Usage(ctx context.Context, tenantID uuid.UUID, res Resource) (used, limit int64, err error) {
	sub, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return 0, 0, err
	}

	limit, err = s.limitFor(sub.Tier, res)
	if err != nil {
		return 0, 0, err
	}

	used, err = s.count(ctx, tenantID, res)
	if err != nil {
		return 0, 0, err
	}

	return used, limit, nil
}

// UsagePercent returns usage as a percentage (0-100, or -1 for unlimited).
// Caps at 100 to prevent UI display issues. Returns 0 on errors.
func (s *service) UsagePercent(ctx context.Context, tenantID uuid.UUID, res Resource) int {
	used, limit, err := s.Usage(ctx, tenantID, res)
	if err != nil {
		return 0
	}

	if limit == plan.Unlimited {
		return -1
	}

	if limit == 0 {
		return 100
	}

	return min(int((used*100)/limit), 100)
}

func (s *service) limitFor(tier plan.Tier, res Resource) (int64, error) {
	ent, ok := s.catalog.Entitlements(tier)
	if !ok {
		return 0, plan.ErrTierNotFound
	}

	switch res {
	case ResourcePatients:
		return ent.PatientLimit, nil
	case ResourceUsers:
		return ent.UserLimit, nil
	default:
		return 0, ErrInvalidResource
	}
}

func (s *service) count(ctx context.Context, tenantID uuid.UUID, res Resource) (int64, error) {
	counter, ok := s.counters[res]
	if !ok {
		return 0, ErrNoCounterRegistered
	}

	current, err := counter(ctx, tenantID)
	if err != nil {
		return 0, errors.Join(ErrFailedToCountUsage, err)
	}

	return current, nil
}
