package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pulsetrack/internal/platform/config"
	"pulsetrack/internal/platform/logger"
	"pulsetrack/internal/platform/store"

	"pulsetrack/internal/modkit"
	auditmod "pulsetrack/internal/services/audit/module"
	demomod "pulsetrack/internal/services/demographics/module"
	ingestmod "pulsetrack/internal/services/ingest/module"
	ratmod "pulsetrack/internal/services/ratings/module"
	rawmod "pulsetrack/internal/services/rawinputs/module"
	"pulsetrack/internal/services/schema"
)

func main() {
	once := flag.Bool("once", false, "run a single ingestion pass and exit")
	flag.Parse()

	_ = godotenv.Load()

	root := config.New()
	ingCfg := root.Prefix("CORE_INGEST_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "pulsetrack-ingest",
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

	deps := modkit.Deps{Log: *l, Cfg: ingCfg, PG: st.PG}

	ratings := ratmod.New(deps)
	raws := rawmod.New(deps)
	demos := demomod.New(deps)
	audits := auditmod.New(deps)

	ing := ingestmod.New(deps, ingestmod.Ports{
		Ratings: ratings.Ports().RW,
		Raws:    raws.Ports().RW,
		Demos:   demos.Ports().Reader,
		Audit:   audits.Ports().Recorder,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		report, err := ing.Coordinator().RunPass(ctx)
		if err != nil {
			l.Panic().Err(err).Msg("ingestion pass failed")
		}
		l.Info().Int("files", len(report.Files)).Str("elapsed", report.Elapsed).Msg("single pass complete")
		return
	}

	if err := ing.Scheduler().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Panic().Err(err).Msg("scheduler stopped")
	}
}
