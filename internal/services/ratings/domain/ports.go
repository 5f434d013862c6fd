package domain

import (
	"context"
	"time"
)

// WriterPort persists ratings and breakdown rows
type WriterPort interface {
	// UpsertRating deletes any existing row for (candidate, ts) and inserts r,
	// both inside one transaction so readers never observe a gap
	UpsertRating(ctx context.Context, r ApprovalRating) error

	// InsertBreakdown appends one breakdown row, history is never rewritten
	InsertBreakdown(ctx context.Context, b SentimentBreakdown) error
}

// ReaderPort serves dashboard queries
type ReaderPort interface {
	// PreviousScore returns the most recently stored score for candidate,
	// 0 with no error when no row exists yet
	PreviousScore(ctx context.Context, candidate string) (float64, error)

	// Latest returns the newest rating per candidate
	Latest(ctx context.Context) ([]ApprovalRating, error)

	// Series returns ratings for candidate within [since, until) ordered by ts
	Series(ctx context.Context, candidate string, since, until time.Time) ([]ApprovalRating, error)

	// Breakdowns returns the newest breakdown rows for candidate, up to limit
	Breakdowns(ctx context.Context, candidate string, limit int) ([]SentimentBreakdown, error)
}

// ReadWriterPort bundles both surfaces for pipeline consumers
type ReadWriterPort interface {
	WriterPort
	ReaderPort
}

// StorageRepo is the persistence surface for ratings
type StorageRepo interface {
	DeleteRating(ctx context.Context, candidate string, ts time.Time) error
	InsertRating(ctx context.Context, r ApprovalRating) error
	InsertBreakdown(ctx context.Context, b SentimentBreakdown) error
	LatestScore(ctx context.Context, candidate string) (float64, bool, error)
	Latest(ctx context.Context) ([]ApprovalRating, error)
	Series(ctx context.Context, candidate string, since, until time.Time) ([]ApprovalRating, error)
	Breakdowns(ctx context.Context, candidate string, limit int) ([]SentimentBreakdown, error)
}
