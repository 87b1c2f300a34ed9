package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/entitlement/pkg/pg"
	"github.com/clinicore/entitlement/pkg/subscription"
)

// pgStore is the Postgres-backed subscription.Store.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a subscription.Store backed by the subscriptions
// table. Panics if pool is nil to fail fast during initialization.
func NewPostgresStore(pool *pgxpool.Pool) subscription.Store {
	if pool == nil {
		panic("entitlement: pgxpool.Pool is required")
	}
	return &pgStore{pool: pool}
}

func (s *pgStore) Get(ctx context.Context, tenantID uuid.UUID) (*subscription.Subscription, error) {
	const query = `
		SELECT id, tenant_id, tier, status, start_date, end_date, canceled_at, created_at, updated_at
		FROM subscriptions
		WHERE tenant_id = $1`

	var sub subscription.Subscription
	err := s.pool.QueryRow(ctx, query, tenantID).Scan(
		&sub.ID,
		&sub.TenantID,
		&sub.Tier,
		&sub.Status,
		&sub.StartDate,
		&sub.EndDate,
		&sub.CanceledAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, subscription.ErrNotFound
		}
		return nil, errors.Join(subscription.ErrFailedToRead, err)
	}

	return &sub, nil
}

func (s *pgStore) Save(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return subscription.ErrInvalidState
	}
	if sub.TenantID == uuid.Nil {
		return subscription.ErrMissingTenant
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	// One row per tenant: tenant_id carries a unique constraint, so Save is an upsert.
	const query = `
		INSERT INTO subscriptions (id, tenant_id, tier, status, start_date, end_date, canceled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (tenant_id) DO UPDATE SET
			tier = EXCLUDED.tier,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			canceled_at = EXCLUDED.canceled_at,
			updated_at = now()`

	if _, err := s.pool.Exec(ctx, query,
		sub.ID,
		sub.TenantID,
		sub.Tier,
		sub.Status,
		sub.StartDate,
		sub.EndDate,
		sub.CanceledAt,
	); err != nil {
		return errors.Join(subscription.ErrFailedToSave, err)
	}

	return nil
}
