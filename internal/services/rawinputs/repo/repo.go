// Package repo provides the Postgres repository for raw inputs
package repo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	pstr "pulsetrack/internal/platform/strings"

	"github.com/google/uuid"

	"pulsetrack/internal/core/verify"
	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/rawinputs/domain"
)

// binder implements repokit.Binder[domain.StorageRepo]
type binder struct{}

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

// InsertBatch writes xs, deduping on the content hash
func (s *pg) InsertBatch(ctx context.Context, xs []domain.RawInputWrite) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO raw_inputs
		(id, source, content, content_sha, user_id, candidate, location, verification, ts)
		VALUES `)
	args := make([]any, 0, len(xs)*9)
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*9 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args,
			uuid.New(), x.Source, x.Content, contentSHA(x.Content),
			x.UserID, x.Candidate, pstr.SQLNull(pstr.Deref(x.Location)), string(x.Verification), x.TS)
	}
	sb.WriteString(` ON CONFLICT (content_sha) DO NOTHING`)
	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ListSince returns inputs with ts >= since ordered by ts then id
func (s *pg) ListSince(ctx context.Context, since time.Time, limit int) ([]domain.RawInput, error) {
	const q = `
		SELECT id, source, content, user_id, candidate, location, verification, ts, created_at
		FROM raw_inputs
		WHERE ts >= $1
		ORDER BY ts, id
		LIMIT $2`
	rows, err := s.q.Query(ctx, q, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RawInput
	for rows.Next() {
		var r domain.RawInput
		var verification string
		if err := rows.Scan(&r.ID, &r.Source, &r.Content, &r.UserID, &r.Candidate, &r.Location, &verification, &r.TS, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Verification = verify.Status(verification)
		out = append(out, r)
	}
	return out, rows.Err()
}

func contentSHA(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
