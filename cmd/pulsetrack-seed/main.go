package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"pulsetrack/internal/platform/config"
	"pulsetrack/internal/platform/logger"
	"pulsetrack/internal/platform/store"

	"pulsetrack/internal/modkit"
	demomod "pulsetrack/internal/services/demographics/module"
	"pulsetrack/internal/services/schema"
)

func main() {
	path := flag.String("csv", "", "path to the state demographics csv")
	flag.Parse()

	_ = godotenv.Load()

	root := config.New()
	seedCfg := root.Prefix("CORE_SEED_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	csvPath := *path
	if csvPath == "" {
		csvPath = seedCfg.MustString("DEMOGRAPHICS_CSV")
	}

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "pulsetrack-seed",
			PG: store.PGConfig{
				Enabled:  true,
				URL:      pgCfg.MustString("DBURL"),
				MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 2)),
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

	ctx := context.Background()
	if err := schema.Ensure(ctx, st.PG); err != nil {
		l.Panic().Err(err).Msg("schema ensure failed")
	}

	demos := demomod.New(modkit.Deps{Log: *l, Cfg: seedCfg, PG: st.PG})
	n, err := demos.Ports().Loader.LoadCSV(ctx, csvPath)
	if err != nil {
		l.Panic().Err(err).Str("csv", csvPath).Msg("demographics load failed")
	}
	l.Info().Int("rows", n).Str("csv", csvPath).Msg("demographics seeded")
}
