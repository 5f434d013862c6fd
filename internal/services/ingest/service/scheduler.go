package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/services/ingest/domain"
)

// SchedulerConfig controls pass cadence
type SchedulerConfig struct {
	// Interval between timer-driven passes, defaults to 10 minutes
	Interval time.Duration

	// Watch enables file-system change triggers on the ingest directory
	Watch bool

	// Debounce coalesces bursts of fs events into one trigger
	Debounce time.Duration
}

// Scheduler serializes ingestion passes. Triggers that arrive while a pass is
// running set a pending flag, so at most one extra pass follows a burst and
// passes never overlap
type Scheduler struct {
	cfg   SchedulerConfig
	dir   string
	coord domain.CoordinatorPort
	log   logger.Logger

	mu      sync.Mutex
	running bool
	pending bool
	wg      sync.WaitGroup
}

// NewScheduler constructs a Scheduler for dir
func NewScheduler(cfg SchedulerConfig, dir string, coord domain.CoordinatorPort, log logger.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}
	return &Scheduler{cfg: cfg, dir: dir, coord: coord, log: log}
}

// Run blocks until ctx is cancelled, then waits for the in-flight pass to
// finish before returning
func (s *Scheduler) Run(ctx context.Context) error {
	trigger := make(chan string, 1)

	// timer trigger
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// fs trigger
	var watcher *fsnotify.Watcher
	if s.cfg.Watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			s.log.Warn().Err(err).Msg("fs watcher unavailable, timer only")
		} else if err := w.Add(s.dir); err != nil {
			s.log.Warn().Err(err).Str("dir", s.dir).Msg("cannot watch ingest dir, timer only")
			_ = w.Close()
		} else {
			watcher = w
			defer watcher.Close()
			go s.watchLoop(ctx, watcher, trigger)
		}
	}

	s.log.Info().
		Dur("interval", s.cfg.Interval).
		Bool("watching", watcher != nil).
		Str("dir", s.dir).
		Msg("scheduler started")

	// initial pass on boot so a pre-populated directory drains immediately
	s.kick(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.log.Info().Msg("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.kick(ctx, "interval")
		case reason := <-trigger:
			s.kick(ctx, reason)
		}
	}
}

// watchLoop forwards debounced csv events into trigger
func (s *Scheduler) watchLoop(ctx context.Context, w *fsnotify.Watcher, trigger chan<- string) {
	var timer *time.Timer
	fire := func() {
		select {
		case trigger <- "fsevent":
		default:
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(strings.ToLower(ev.Name), ".csv") {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(s.cfg.Debounce, fire)
			} else {
				timer.Reset(s.cfg.Debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("fs watcher error")
		}
	}
}

// kick starts a pass unless one is already running, in which case it queues
// exactly one follow-up pass
func (s *Scheduler) kick(ctx context.Context, reason string) {
	s.mu.Lock()
	if s.running {
		s.pending = true
		s.mu.Unlock()
		s.log.Debug().Str("reason", reason).Msg("pass already running, queued")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			s.runOnce(ctx, reason)

			s.mu.Lock()
			if !s.pending || ctx.Err() != nil {
				s.running = false
				s.mu.Unlock()
				return
			}
			s.pending = false
			s.mu.Unlock()
			reason = "queued"
		}
	}()
}

func (s *Scheduler) runOnce(ctx context.Context, reason string) {
	started := time.Now()
	report, err := s.coord.RunPass(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("reason", reason).Msg("ingestion pass failed")
		return
	}
	done := 0
	for _, f := range report.Files {
		if f.State == domain.StateDone {
			done++
		}
	}
	s.log.Info().
		Str("reason", reason).
		Int("files", len(report.Files)).
		Int("done", done).
		Dur("elapsed", time.Since(started)).
		Msg("ingestion pass complete")
}
