// Package service implements the ratings service
package service

import (
	"context"
	"time"

	perr "pulsetrack/internal/platform/errors"
	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/ratings/domain"
)

const defaultBreakdownLimit = 50

// Service implements domain.WriterPort and domain.ReaderPort
type Service struct {
	tx   repokit.TxRunner
	repo repokit.Binder[domain.StorageRepo]
	log  logger.Logger
}

// New constructs a ratings service
func New(tx repokit.TxRunner, repo repokit.Binder[domain.StorageRepo], log logger.Logger) *Service {
	return &Service{tx: tx, repo: repo, log: log}
}

// UpsertRating implements domain.WriterPort. Delete and insert run in one
// transaction so a (candidate, ts) pair never has zero visible rows
func (s *Service) UpsertRating(ctx context.Context, r domain.ApprovalRating) error {
	if r.Candidate == "" {
		return perr.InvalidArgf("upsert rating: empty candidate")
	}
	if r.TS.IsZero() {
		return perr.InvalidArgf("upsert rating: zero timestamp")
	}
	if r.State == "" {
		r.State = domain.StateNational
	}

	err := repokit.WithTx(ctx, s.tx, s.repo, func(repo domain.StorageRepo) error {
		if err := repo.DeleteRating(ctx, r.Candidate, r.TS); err != nil {
			return err
		}
		return repo.InsertRating(ctx, r)
	})
	if err != nil {
		return perr.FromPostgresf(err, "upsert rating %s@%s", r.Candidate, r.TS.Format(time.RFC3339))
	}
	return nil
}

// InsertBreakdown implements domain.WriterPort
func (s *Service) InsertBreakdown(ctx context.Context, b domain.SentimentBreakdown) error {
	if b.Candidate == "" {
		return perr.InvalidArgf("insert breakdown: empty candidate")
	}
	if err := s.repo.Bind(s.tx).InsertBreakdown(ctx, b); err != nil {
		return perr.FromPostgresf(err, "insert breakdown %s", b.Candidate)
	}
	return nil
}

// PreviousScore implements domain.ReaderPort
func (s *Service) PreviousScore(ctx context.Context, candidate string) (float64, error) {
	score, found, err := s.repo.Bind(s.tx).LatestScore(ctx, candidate)
	if err != nil {
		return 0, perr.FromPostgresf(err, "previous score %s", candidate)
	}
	if !found {
		return 0, nil
	}
	return score, nil
}

// Latest implements domain.ReaderPort
func (s *Service) Latest(ctx context.Context) ([]domain.ApprovalRating, error) {
	out, err := s.repo.Bind(s.tx).Latest(ctx)
	if err != nil {
		return nil, perr.FromPostgresf(err, "latest ratings")
	}
	return out, nil
}

// Series implements domain.ReaderPort
func (s *Service) Series(ctx context.Context, candidate string, since, until time.Time) ([]domain.ApprovalRating, error) {
	if candidate == "" {
		return nil, perr.InvalidArgf("series: empty candidate")
	}
	if until.IsZero() {
		until = time.Now().UTC()
	}
	out, err := s.repo.Bind(s.tx).Series(ctx, candidate, since, until)
	if err != nil {
		return nil, perr.FromPostgresf(err, "ratings series %s", candidate)
	}
	return out, nil
}

// Breakdowns implements domain.ReaderPort
func (s *Service) Breakdowns(ctx context.Context, candidate string, limit int) ([]domain.SentimentBreakdown, error) {
	if candidate == "" {
		return nil, perr.InvalidArgf("breakdowns: empty candidate")
	}
	if limit <= 0 {
		limit = defaultBreakdownLimit
	}
	out, err := s.repo.Bind(s.tx).Breakdowns(ctx, candidate, limit)
	if err != nil {
		return nil, perr.FromPostgresf(err, "breakdowns %s", candidate)
	}
	return out, nil
}
