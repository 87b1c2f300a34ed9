package entitlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicore/entitlement/pkg/entitlement"
)

// NewPatientCounter counts patients owned by the tenant.
func NewPatientCounter(pool *pgxpool.Pool) entitlement.CounterFunc {
	return func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		var count int64
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM patients WHERE tenant_id = $1`, tenantID,
		).Scan(&count)
		if err != nil {
			return 0, err
		}
		return count, nil
	}
}

// NewUserCounter counts users in the tenant's organization.
func NewUserCounter(pool *pgxpool.Pool) entitlement.CounterFunc {
	return func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		var count int64
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM users WHERE organization_id = $1`, tenantID,
		).Scan(&count)
		if err != nil {
			return 0, err
		}
		return count, nil
	}
}

// CachedCounter decorates a counter with a short-lived Redis cache so limit
// checks don't hit the database on every creation attempt.
//
// Only usage counts are cached, never subscription records: a slightly stale
// count is an acceptable advisory result, a stale subscription is not.
func CachedCounter(rdb *redis.Client, res entitlement.Resource, ttl time.Duration, next entitlement.CounterFunc) entitlement.CounterFunc {
	return func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		key := fmt.Sprintf("usage:%s:%s", res, tenantID)

		if count, err := rdb.Get(ctx, key).Int64(); err == nil {
			return count, nil
		}

		count, err := next(ctx, tenantID)
		if err != nil {
			return 0, err
		}

		// Best effort: a failed cache write never fails the count.
		_ = rdb.Set(ctx, key, count, ttl).Err()

		return count, nil
	}
}
