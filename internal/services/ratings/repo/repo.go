// Package repo provides the Postgres repository for approval ratings
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pulsetrack/internal/core/verify"
	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/ratings/domain"
)

// binder implements repokit.Binder[domain.StorageRepo]
type binder struct{}

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

func (s *pg) DeleteRating(ctx context.Context, candidate string, ts time.Time) error {
	_, err := s.q.Exec(ctx,
		`DELETE FROM approval_ratings WHERE candidate = $1 AND ts = $2`,
		candidate, ts)
	return err
}

func (s *pg) InsertRating(ctx context.Context, r domain.ApprovalRating) error {
	id := r.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO approval_ratings
			(id, candidate, ts, rating_score, change_delta, state, verification)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, r.Candidate, r.TS, r.RatingScore, r.ChangeDelta, r.State, string(r.Verification))
	return err
}

func (s *pg) InsertBreakdown(ctx context.Context, b domain.SentimentBreakdown) error {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	phrases := b.TrendingPhrases
	if phrases == nil {
		phrases = []string{}
	}
	headlines := b.Headlines
	if headlines == nil {
		headlines = []string{}
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO sentiment_breakdown
			(id, candidate, ts, positive, negative, neutral, trending_phrases, headlines)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		id, b.Candidate, b.TS, b.Positive, b.Negative, b.Neutral, phrases, headlines)
	return err
}

// LatestScore returns the newest stored score for candidate and whether a row exists
func (s *pg) LatestScore(ctx context.Context, candidate string) (float64, bool, error) {
	const q = `
		SELECT rating_score
		FROM approval_ratings
		WHERE candidate = $1
		ORDER BY ts DESC
		LIMIT 1`
	rows, err := s.q.Query(ctx, q, candidate)
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, rows.Err()
	}
	var score float64
	if err := rows.Scan(&score); err != nil {
		return 0, false, err
	}
	return score, true, rows.Err()
}

// Latest returns the newest rating per candidate ordered by candidate
func (s *pg) Latest(ctx context.Context) ([]domain.ApprovalRating, error) {
	const q = `
		SELECT DISTINCT ON (candidate)
			id, candidate, ts, rating_score, change_delta, state, verification, created_at
		FROM approval_ratings
		ORDER BY candidate, ts DESC`
	rows, err := s.q.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRatings(rows)
}

func (s *pg) Series(ctx context.Context, candidate string, since, until time.Time) ([]domain.ApprovalRating, error) {
	const q = `
		SELECT id, candidate, ts, rating_score, change_delta, state, verification, created_at
		FROM approval_ratings
		WHERE candidate = $1 AND ts >= $2 AND ts < $3
		ORDER BY ts`
	rows, err := s.q.Query(ctx, q, candidate, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRatings(rows)
}

func (s *pg) Breakdowns(ctx context.Context, candidate string, limit int) ([]domain.SentimentBreakdown, error) {
	const q = `
		SELECT id, candidate, ts, positive, negative, neutral, trending_phrases, headlines, created_at
		FROM sentiment_breakdown
		WHERE candidate = $1
		ORDER BY ts DESC, created_at DESC
		LIMIT $2`
	rows, err := s.q.Query(ctx, q, candidate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SentimentBreakdown
	for rows.Next() {
		var b domain.SentimentBreakdown
		if err := rows.Scan(&b.ID, &b.Candidate, &b.TS, &b.Positive, &b.Negative, &b.Neutral,
			&b.TrendingPhrases, &b.Headlines, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanRatings(rows repokit.Rows) ([]domain.ApprovalRating, error) {
	var out []domain.ApprovalRating
	for rows.Next() {
		var r domain.ApprovalRating
		var verification string
		if err := rows.Scan(&r.ID, &r.Candidate, &r.TS, &r.RatingScore, &r.ChangeDelta,
			&r.State, &verification, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Verification = verify.Status(verification)
		out = append(out, r)
	}
	return out, rows.Err()
}
