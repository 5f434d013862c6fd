package domain

import (
	"context"
	"time"
)

// CoordinatorPort drives ingestion passes
type CoordinatorPort interface {
	// RunPass scans the ingest directory and processes every batch file found
	RunPass(ctx context.Context) (PassReport, error)

	// IngestFile processes a single batch file through the full pipeline
	IngestFile(ctx context.Context, path string) FileReport
}

// FeedRecord is one opinion pulled from an external feed
type FeedRecord struct {
	Source  string
	Content string
	UserID  string
	TS      time.Time
}

// FeedPort pulls fresh opinions for a candidate from an external source.
// Implementations that have no live upstream return an empty slice
type FeedPort interface {
	Pull(ctx context.Context, candidate string) ([]FeedRecord, error)
}
