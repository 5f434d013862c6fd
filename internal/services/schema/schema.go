// Package schema creates the tables pulsetrack needs when they are missing.
// Every statement is idempotent so Ensure is safe to run on each boot
package schema

import (
	"context"

	perr "pulsetrack/internal/platform/errors"

	"pulsetrack/internal/modkit/repokit"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS raw_inputs (
		id           UUID PRIMARY KEY,
		source       TEXT NOT NULL,
		content      TEXT NOT NULL,
		content_sha  TEXT NOT NULL,
		user_id      TEXT NOT NULL DEFAULT '',
		candidate    TEXT NOT NULL DEFAULT '',
		location     TEXT,
		verification TEXT NOT NULL DEFAULT 'verified',
		ts           TIMESTAMPTZ NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS raw_inputs_content_sha_idx
		ON raw_inputs (content_sha)`,

	`CREATE TABLE IF NOT EXISTS approval_ratings (
		id            UUID PRIMARY KEY,
		candidate     TEXT NOT NULL,
		ts            TIMESTAMPTZ NOT NULL,
		rating_score  DOUBLE PRECISION NOT NULL,
		change_delta  DOUBLE PRECISION NOT NULL,
		state         TEXT NOT NULL DEFAULT 'National',
		verification  TEXT NOT NULL DEFAULT 'verified',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS approval_ratings_candidate_ts_idx
		ON approval_ratings (candidate, ts)`,

	`CREATE TABLE IF NOT EXISTS sentiment_breakdown (
		id               UUID PRIMARY KEY,
		candidate        TEXT NOT NULL,
		ts               TIMESTAMPTZ NOT NULL,
		positive         DOUBLE PRECISION NOT NULL,
		negative         DOUBLE PRECISION NOT NULL,
		neutral          DOUBLE PRECISION NOT NULL,
		trending_phrases TEXT[] NOT NULL DEFAULT '{}',
		headlines        TEXT[] NOT NULL DEFAULT '{}',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS sentiment_breakdown_candidate_ts_idx
		ON sentiment_breakdown (candidate, ts)`,

	`CREATE TABLE IF NOT EXISTS state_demographics (
		state                  TEXT PRIMARY KEY,
		total_population       BIGINT NOT NULL,
		voting_age_population  BIGINT NOT NULL,
		registered_voters      BIGINT NOT NULL,
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id         UUID PRIMARY KEY,
		event_type TEXT NOT NULL,
		detail     JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Ensure runs the DDL against q
func Ensure(ctx context.Context, q repokit.Queryer) error {
	for _, stmt := range statements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgresf(err, "schema ensure")
		}
	}
	return nil
}
