// Package service implements the audit service
package service

import (
	"context"

	perr "pulsetrack/internal/platform/errors"
	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/audit/domain"
)

const defaultRecentLimit = 100

// Service implements domain.RecorderPort and domain.ReaderPort
type Service struct {
	tx   repokit.TxRunner
	repo repokit.Binder[domain.StorageRepo]
	log  logger.Logger
}

// New constructs an audit service
func New(tx repokit.TxRunner, repo repokit.Binder[domain.StorageRepo], log logger.Logger) *Service {
	return &Service{tx: tx, repo: repo, log: log}
}

// Record implements domain.RecorderPort. The failure is logged here and also
// returned so the caller can mark its unit of work degraded
func (s *Service) Record(ctx context.Context, eventType string, detail map[string]any) error {
	if eventType == "" {
		return perr.InvalidArgf("audit record: empty event type")
	}
	if err := s.repo.Bind(s.tx).Insert(ctx, eventType, detail); err != nil {
		s.log.Warn().Err(err).Str("event_type", eventType).Msg("audit write failed")
		return perr.FromPostgresf(err, "audit record %s", eventType)
	}
	return nil
}

// Recent implements domain.ReaderPort
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	out, err := s.repo.Bind(s.tx).Recent(ctx, limit)
	if err != nil {
		return nil, perr.FromPostgresf(err, "audit recent")
	}
	return out, nil
}
