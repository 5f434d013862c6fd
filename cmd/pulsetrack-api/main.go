package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pulsetrack/internal/platform/config"
	"pulsetrack/internal/platform/logger"
	phttp "pulsetrack/internal/platform/net/http"
	"pulsetrack/internal/platform/net/middleware"
	"pulsetrack/internal/platform/store"

	"pulsetrack/internal/modkit"
	apihttp "pulsetrack/internal/services/api/http"
	apimod "pulsetrack/internal/services/api/module"
	auditmod "pulsetrack/internal/services/audit/module"
	demomod "pulsetrack/internal/services/demographics/module"
	ratmod "pulsetrack/internal/services/ratings/module"
	"pulsetrack/internal/services/schema"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "pulsetrack-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := schema.Ensure(context.Background(), st.PG); err != nil {
		l.Panic().Err(err).Msg("schema ensure failed")
	}

	deps := modkit.Deps{Log: *l, Cfg: apiCfg, PG: st.PG}

	ratings := ratmod.New(deps)
	demos := demomod.New(deps)
	audits := auditmod.New(deps)

	srv := phttp.NewServer(apiCfg)
	r := srv.Router()
	r.Use(
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestScope(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Second}),
		middleware.Heartbeat("/healthz"),
		middleware.Timeout(30*time.Second),
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		}),
	)

	apimod.New(deps, apihttp.Ports{
		Ratings:   ratings.Ports().Reader,
		Demos:     demos.Ports().Reader,
		Audit:     audits.Ports().Reader,
		UploadDir: apiCfg.MustString("INGEST_DIR"),
	}).MountRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
