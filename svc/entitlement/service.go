package entitlement

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicore/entitlement/pkg/entitlement"
	"github.com/clinicore/entitlement/pkg/plan"
)

// New wires a production entitlement.Service: plan catalog (file or built-in),
// Postgres subscription store, and SQL usage counters optionally fronted by a
// Redis cache. rdb may be nil to disable counter caching.
func New(ctx context.Context, cfg Config, pool *pgxpool.Pool, rdb *redis.Client, log *slog.Logger) (entitlement.Service, error) {
	var src plan.Source
	if cfg.CatalogPath != "" {
		src = plan.NewFileSource(cfg.CatalogPath)
	} else {
		src = DefaultCatalogSource()
	}

	patients := NewPatientCounter(pool)
	users := NewUserCounter(pool)
	if rdb != nil {
		patients = CachedCounter(rdb, entitlement.ResourcePatients, cfg.CounterCacheTTL, patients)
		users = CachedCounter(rdb, entitlement.ResourceUsers, cfg.CounterCacheTTL, users)
	}

	return entitlement.NewService(ctx, src, NewPostgresStore(pool),
		entitlement.WithCounter(entitlement.ResourcePatients, patients),
		entitlement.WithCounter(entitlement.ResourceUsers, users),
		entitlement.WithGraceWindow(cfg.GraceWindowDays),
		entitlement.WithLogger(log),
	)
}
