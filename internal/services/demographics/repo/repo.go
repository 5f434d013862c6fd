// Package repo provides the Postgres repository for demographics
package repo

import (
	"context"
	"fmt"
	"strings"

	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/demographics/domain"
)

// binder implements repokit.Binder[domain.StorageRepo]
type binder struct{}

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

func (s *pg) List(ctx context.Context) ([]domain.StateDemographics, error) {
	const q = `
		SELECT state, total_population, voting_age_population, registered_voters, updated_at
		FROM state_demographics
		ORDER BY state`
	rows, err := s.q.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StateDemographics
	for rows.Next() {
		var d domain.StateDemographics
		if err := rows.Scan(&d.State, &d.TotalPopulation, &d.VotingAgePopulation, &d.RegisteredVoters, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *pg) RegisteredVoters(ctx context.Context, state string) (int64, error) {
	const q = `
		SELECT COALESCE(SUM(registered_voters), 0)
		FROM state_demographics
		WHERE lower(state) = lower($1)`
	var n int64
	if err := s.q.QueryRow(ctx, q, state).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *pg) NationalRegisteredVoters(ctx context.Context) (int64, error) {
	const q = `SELECT COALESCE(SUM(registered_voters), 0) FROM state_demographics`
	var n int64
	if err := s.q.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *pg) DeleteAll(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `DELETE FROM state_demographics`)
	return err
}

func (s *pg) InsertBatch(ctx context.Context, xs []domain.StateDemographics) error {
	if len(xs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO state_demographics
		(state, total_population, voting_age_population, registered_voters, updated_at)
		VALUES `)
	args := make([]any, 0, len(xs)*4)
	for i, d := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*4 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,now())", base, base+1, base+2, base+3)
		args = append(args, d.State, d.TotalPopulation, d.VotingAgePopulation, d.RegisteredVoters)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}
