package entitlement

import (
	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
)

// Verdict is the outcome of a gate check. One per request, never persisted.
// A denial is a value, not an error: the gates return allowed=false for the
// expected policy outcomes and reserve errors for storage failures.
type Verdict struct {
	Allowed       bool                       `json:"allowed"`
	Reason        Reason                     `json:"reason,omitempty"`
	Message       string                     `json:"message,omitempty"`
	DaysElapsed   int                        `json:"days_elapsed,omitempty"`
	DaysRemaining int                        `json:"days_remaining,omitempty"`
	RequiredTier  plan.Tier                  `json:"required_plan,omitempty"`
	CurrentTier   plan.Tier                  `json:"current_plan,omitempty"`
	Feature       plan.Feature               `json:"feature,omitempty"`
	Subscription  *subscription.Subscription `json:"-"` // snapshot for downstream use, e.g. request context
}

func allow(sub *subscription.Subscription) Verdict {
	v := Verdict{
		Allowed:      true,
		Subscription: sub,
	}
	if sub != nil {
		v.CurrentTier = sub.Tier
	}
	return v
}

func deny(sub *subscription.Subscription, reason Reason, message string) Verdict {
	v := Verdict{
		Reason:       reason,
		Message:      message,
		Subscription: sub,
	}
	if sub != nil {
		v.CurrentTier = sub.Tier
	}
	return v
}
