// Package repo provides the Postgres repository for the audit log
package repo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/audit/domain"
)

// binder implements repokit.Binder[domain.StorageRepo]
type binder struct{}

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

func (s *pg) Insert(ctx context.Context, eventType string, detail map[string]any) error {
	if detail == nil {
		detail = map[string]any{}
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx,
		`INSERT INTO audit_log (id, event_type, detail) VALUES ($1,$2,$3)`,
		uuid.New(), eventType, raw)
	return err
}

func (s *pg) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	const q = `
		SELECT id, event_type, detail, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := s.q.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		var raw []byte
		if err := rows.Scan(&e.ID, &e.Type, &raw, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Detail); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
