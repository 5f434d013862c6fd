// Package service implements the raw inputs service
package service

import (
	"context"
	"strings"
	"time"

	perr "pulsetrack/internal/platform/errors"
	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/core/verify"
	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/rawinputs/domain"
)

const defaultListLimit = 5000

// Service implements domain.WriterPort and domain.ReaderPort
type Service struct {
	tx   repokit.TxRunner
	repo repokit.Binder[domain.StorageRepo]
	log  logger.Logger
}

// New constructs a raw inputs service
func New(tx repokit.TxRunner, repo repokit.Binder[domain.StorageRepo], log logger.Logger) *Service {
	return &Service{tx: tx, repo: repo, log: log}
}

// WriteBatch implements domain.WriterPort. Blank-content records are dropped
// before the insert, duplicates are skipped by the repo
func (s *Service) WriteBatch(ctx context.Context, xs []domain.RawInputWrite) (int, error) {
	kept := make([]domain.RawInputWrite, 0, len(xs))
	for _, x := range xs {
		if strings.TrimSpace(x.Content) == "" {
			continue
		}
		if x.TS.IsZero() {
			x.TS = time.Now().UTC()
		}
		if x.Verification == "" {
			x.Verification = verify.StatusVerified
		}
		kept = append(kept, x)
	}
	if len(kept) == 0 {
		return 0, nil
	}

	n, err := s.repo.Bind(s.tx).InsertBatch(ctx, kept)
	if err != nil {
		return 0, perr.FromPostgresf(err, "insert raw inputs")
	}
	if skipped := len(kept) - n; skipped > 0 {
		s.log.Debug().Int("inserted", n).Int("duplicates", skipped).Msg("raw input batch had duplicates")
	}
	return n, nil
}

// ListSince implements domain.ReaderPort
func (s *Service) ListSince(ctx context.Context, since time.Time, limit int) ([]domain.RawInput, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	out, err := s.repo.Bind(s.tx).ListSince(ctx, since, limit)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list raw inputs")
	}
	return out, nil
}
