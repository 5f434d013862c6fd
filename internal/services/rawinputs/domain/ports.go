package domain

import (
	"context"
	"time"
)

// WriterPort persists incoming opinions
type WriterPort interface {
	// WriteBatch stores xs, silently skipping records whose content was seen
	// before. Returns the number of rows actually inserted
	WriteBatch(ctx context.Context, xs []RawInputWrite) (int, error)
}

// ReaderPort serves stored opinions back to the transform stage
type ReaderPort interface {
	// ListSince returns inputs with ts >= since ordered by ts, up to limit
	ListSince(ctx context.Context, since time.Time, limit int) ([]RawInput, error)
}

// ReadWriterPort is both sides of the raw input store, used by the
// ingestion coordinator which writes pulled opinions and reads them back
// for scoring
type ReadWriterPort interface {
	WriterPort
	ReaderPort
}

// StorageRepo is the persistence surface for raw inputs
type StorageRepo interface {
	InsertBatch(ctx context.Context, xs []RawInputWrite) (int, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]RawInput, error)
}
