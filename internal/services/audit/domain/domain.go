// Package domain defines audit log types and ports
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one audit trail row
type Event struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"event_type"`
	Detail    map[string]any `json:"detail"`
	CreatedAt time.Time      `json:"created_at"`
}

// RecorderPort appends audit events. Failures are reported back so callers
// can decide whether the unit of work is degraded or fatal, the recorder
// itself never panics or blocks a pipeline
type RecorderPort interface {
	Record(ctx context.Context, eventType string, detail map[string]any) error
}

// ReaderPort lists recent audit events
type ReaderPort interface {
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// StorageRepo is the persistence surface for the audit log
type StorageRepo interface {
	Insert(ctx context.Context, eventType string, detail map[string]any) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}
