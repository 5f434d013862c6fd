package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/services/ingest/domain"
)

// blockingCoord counts passes and blocks until released
type blockingCoord struct {
	mu      sync.Mutex
	passes  int
	active  int
	maxSeen int
	release chan struct{}
}

// RunPass blocks on release regardless of ctx, simulating in-flight work that
// must finish before shutdown
func (b *blockingCoord) RunPass(context.Context) (domain.PassReport, error) {
	b.mu.Lock()
	b.passes++
	b.active++
	if b.active > b.maxSeen {
		b.maxSeen = b.active
	}
	b.mu.Unlock()

	<-b.release

	b.mu.Lock()
	b.active--
	b.mu.Unlock()
	return domain.PassReport{}, nil
}

func (b *blockingCoord) IngestFile(context.Context, string) domain.FileReport {
	return domain.FileReport{}
}

func TestScheduler_SerializesPasses(t *testing.T) {
	coord := &blockingCoord{release: make(chan struct{})}
	s := NewScheduler(SchedulerConfig{Interval: time.Hour}, t.TempDir(), coord, *logger.Named("ingest-test"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// first kick starts a pass, the rest must queue into a single pending slot
	s.kick(ctx, "one")
	s.kick(ctx, "two")
	s.kick(ctx, "three")
	s.kick(ctx, "four")

	// release the running pass and the single queued follow-up
	close(coord.release)

	deadline := time.After(2 * time.Second)
	for {
		coord.mu.Lock()
		passes, maxSeen, active := coord.passes, coord.maxSeen, coord.active
		coord.mu.Unlock()
		if passes == 2 && active == 0 {
			if maxSeen != 1 {
				t.Fatalf("max concurrent passes = %d, want 1", maxSeen)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("passes = %d (max concurrent %d), want exactly 2", passes, maxSeen)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestScheduler_ShutdownWaitsForInflight(t *testing.T) {
	coord := &blockingCoord{release: make(chan struct{})}
	s := NewScheduler(SchedulerConfig{Interval: time.Hour}, t.TempDir(), coord, *logger.Named("ingest-test"))

	ctx, cancel := context.WithCancel(context.Background())
	s.kick(ctx, "one")

	// give the pass goroutine a moment to start
	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("wait returned while pass still blocked")
	case <-time.After(50 * time.Millisecond):
	}

	close(coord.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight pass never finished")
	}
}
