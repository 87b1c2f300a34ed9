package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for subscription persistence.
// Each tenant has exactly one subscription, so TenantID serves as the lookup key.
type Store interface {
	// Get retrieves a subscription by tenant ID.
	// Returns ErrNotFound if no subscription exists for the tenant.
	Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)

	// Save creates or updates a subscription.
	// The implementation should use TenantID to determine if it's an update.
	Save(ctx context.Context, sub *Subscription) error
}
