// Package module wires the ingestion coordinator and scheduler
package module

import (
	"pulsetrack/internal/core/candidate"
	"pulsetrack/internal/core/sentiment"
	"pulsetrack/internal/core/verify"
	"pulsetrack/internal/modkit"
	auditdom "pulsetrack/internal/services/audit/domain"
	demodom "pulsetrack/internal/services/demographics/domain"
	"pulsetrack/internal/services/ingest/domain"
	"pulsetrack/internal/services/ingest/service"
	rawdom "pulsetrack/internal/services/rawinputs/domain"
)

// Ports are dependencies injected into the ingest module
type Ports struct {
	Ratings service.RatingsPort    // required
	Raws    rawdom.ReadWriterPort  // required
	Demos   demodom.ReaderPort     // required
	Audit   auditdom.RecorderPort  // optional
	Feed    domain.FeedPort        // optional
}

// Module owns the ingest wiring
type Module struct {
	coordinator domain.CoordinatorPort
	scheduler   *service.Scheduler
}

// New constructs the ingest module from config and injected ports
func New(deps modkit.Deps, ports Ports) *Module {
	if ports.Ratings == nil || ports.Raws == nil || ports.Demos == nil {
		panic("ingest module: Ports missing Ratings, Raws, or Demos")
	}

	dir := deps.Cfg.MustString("DIR")
	roster := deps.Cfg.MayCSV("CANDIDATES", candidate.DefaultRoster)
	threshold := deps.Cfg.MayFloat64("VERIFY_THRESHOLD", verify.DefaultThresholdFraction)

	// a broken lexicon degrades scoring to neutral rather than blocking ingest
	lex, err := sentiment.Load()
	if err != nil {
		deps.Log.Warn().Err(err).Msg("sentiment lexicon unavailable, scoring degraded to neutral")
	}

	coord := service.NewCoordinator(
		service.Config{
			Dir:        dir,
			ArchiveDir: deps.Cfg.MayString("ARCHIVE_DIR", ""),
			Source:     deps.Cfg.MayString("SOURCE", ""),
			UserID:     deps.Cfg.MayString("USER_ID", ""),
		},
		candidate.NewTokenMatcher(roster),
		sentiment.New(lex, deps.Log),
		verify.New(threshold),
		ports.Ratings,
		ports.Raws,
		ports.Demos,
		ports.Audit,
		ports.Feed,
		deps.Log,
	)

	sched := service.NewScheduler(
		service.SchedulerConfig{
			Interval: deps.Cfg.MayDuration("INTERVAL", 0),
			Watch:    deps.Cfg.MayBool("WATCH", true),
			Debounce: deps.Cfg.MayDuration("DEBOUNCE", 0),
		},
		dir,
		coord,
		deps.Log,
	)

	return &Module{coordinator: coord, scheduler: sched}
}

// Name identifies the module
func (m *Module) Name() string { return "ingest" }

// Coordinator exposes the pipeline for one-shot runs and uploads
func (m *Module) Coordinator() domain.CoordinatorPort { return m.coordinator }

// Scheduler exposes the serialized pass loop
func (m *Module) Scheduler() *service.Scheduler { return m.scheduler }
