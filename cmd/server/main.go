package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	gate "github.com/clinicore/entitlement/modules/entitlement"
	"github.com/clinicore/entitlement/pkg/config"
	"github.com/clinicore/entitlement/pkg/httpserver"
	"github.com/clinicore/entitlement/pkg/logger"
	"github.com/clinicore/entitlement/pkg/pg"
	"github.com/clinicore/entitlement/pkg/redis"
	"github.com/clinicore/entitlement/pkg/tenant"
	entitlementsvc "github.com/clinicore/entitlement/svc/entitlement"
)

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"production"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		appCfg   appConfig
		pgCfg    pg.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
		entCfg   entitlementsvc.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&entCfg)

	logOpt := logger.WithProduction("entitlement")
	if appCfg.Env == "development" {
		logOpt = logger.WithDevelopment("entitlement")
	}
	log := logger.New(logOpt)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, entitlementsvc.Migrations(), pgCfg, log); err != nil {
		log.ErrorContext(ctx, "failed to apply migrations", logger.Error(err))
		os.Exit(1)
	}

	// The cache only fronts usage counters, so a missing Redis degrades to
	// direct SQL counts instead of blocking startup.
	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.WarnContext(ctx, "redis unavailable, usage counters run uncached", logger.Error(err))
		rdb = nil
	}

	svc, err := entitlementsvc.New(ctx, entCfg, pool, rdb, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to build entitlement service", logger.Error(err))
		os.Exit(1)
	}

	resolver := tenant.NewChainResolver(
		tenant.NewContextResolver(),
		tenant.NewHeaderResolver(""),
	)
	m := gate.NewMiddleware(svc, resolver)

	checks := []func(context.Context) error{pg.Healthcheck(pool)}
	if rdb != nil {
		checks = append(checks, redis.Healthcheck(rdb))
	}

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, checks...))
	r.Get("/v1/entitlements", gate.SummaryHandler(svc, resolver))
	r.Mount("/v1/access", gate.Router(m, func(r chi.Router) {
		// Pure gate probe: 204 when the tenant may use the product.
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	}))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "http server failed", logger.Error(err))
		os.Exit(1)
	}
}
