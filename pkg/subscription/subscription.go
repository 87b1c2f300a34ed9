package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/entitlement/pkg/plan"
)

// Status represents the current state of a subscription.
type Status string

const (
	StatusActive     Status = "active"
	StatusTrialing   Status = "trialing"
	StatusPastDue    Status = "past_due"
	StatusCanceled   Status = "canceled"
	StatusIncomplete Status = "incomplete"
)

// Subscription represents a tenant's subscription to a plan tier.
// Each tenant has exactly one subscription; canceled subscriptions remain as
// historical records and are never deleted.
type Subscription struct {
	ID         uuid.UUID
	TenantID   uuid.UUID // unique - one subscription per tenant
	Tier       plan.Tier
	Status     Status
	StartDate  time.Time
	EndDate    *time.Time // nil means no expiration scheduled
	CanceledAt *time.Time // set when status becomes canceled
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive returns true if the subscription is in active status.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// IsTrialing returns true if the subscription is in trial status.
func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrialing
}

// IsCanceled returns true if the subscription has been canceled.
func (s *Subscription) IsCanceled() bool {
	return s.Status == StatusCanceled
}

// Usable reports whether the status alone permits product access.
// Expiry is a separate dimension; see ExpiryAt.
func (s *Subscription) Usable() bool {
	return s.Status == StatusActive || s.Status == StatusTrialing
}

// Clone returns a deep copy of the subscription.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	out := *s
	if s.EndDate != nil {
		end := *s.EndDate
		out.EndDate = &end
	}
	if s.CanceledAt != nil {
		canceled := *s.CanceledAt
		out.CanceledAt = &canceled
	}
	return &out
}

// Expiry is the result of classifying a subscription against a point in time.
type Expiry struct {
	Expired     bool
	DaysElapsed int // whole days past EndDate; 0 when not expired
}

// ExpiryAt classifies the subscription against now. Pure: no side effects and
// no error conditions.
//
// A subscription is expired when EndDate is set and strictly before now.
// DaysElapsed uses whole-day floor division, so fractional days never round
// up: 23 hours past EndDate is still day 0, a full 24 hours is day 1.
func (s *Subscription) ExpiryAt(now time.Time) Expiry {
	if s.EndDate == nil || !s.EndDate.Before(now) {
		return Expiry{}
	}
	elapsed := now.Sub(*s.EndDate)
	return Expiry{
		Expired:     true,
		DaysElapsed: int(elapsed.Hours() / 24),
	}
}
