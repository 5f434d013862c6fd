// Package service implements the demographics service
package service

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	perr "pulsetrack/internal/platform/errors"
	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/modkit/repokit"
	"pulsetrack/internal/services/demographics/domain"
)

// Service implements domain.ReaderPort and domain.LoaderPort
type Service struct {
	tx   repokit.TxRunner
	repo repokit.Binder[domain.StorageRepo]
	log  logger.Logger
}

// New constructs a demographics service
func New(tx repokit.TxRunner, repo repokit.Binder[domain.StorageRepo], log logger.Logger) *Service {
	return &Service{tx: tx, repo: repo, log: log}
}

// List implements domain.ReaderPort
func (s *Service) List(ctx context.Context) ([]domain.StateDemographics, error) {
	out, err := s.repo.Bind(s.tx).List(ctx)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list demographics")
	}
	return out, nil
}

// RegisteredVoters implements domain.ReaderPort.
// The state name is canonicalized first so FCT variants match
func (s *Service) RegisteredVoters(ctx context.Context, state string) (int64, error) {
	n, err := s.repo.Bind(s.tx).RegisteredVoters(ctx, CanonicalState(state))
	if err != nil {
		return 0, perr.FromPostgresf(err, "state registered voters")
	}
	return n, nil
}

// NationalRegisteredVoters implements domain.ReaderPort
func (s *Service) NationalRegisteredVoters(ctx context.Context) (int64, error) {
	n, err := s.repo.Bind(s.tx).NationalRegisteredVoters(ctx)
	if err != nil {
		return 0, perr.FromPostgresf(err, "national registered voters")
	}
	return n, nil
}

// LoadCSV implements domain.LoaderPort. The whole table is replaced in one
// transaction so readers never see a half-loaded dataset
func (s *Service) LoadCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, perr.InvalidArgf("open demographics csv %s: %v", path, err)
	}
	defer f.Close()

	rows, err := parseCSV(f, s.log)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, perr.InvalidArgf("demographics csv %s has no usable rows", path)
	}

	err = repokit.WithTx(ctx, s.tx, s.repo, func(r domain.StorageRepo) error {
		if err := r.DeleteAll(ctx); err != nil {
			return err
		}
		return r.InsertBatch(ctx, rows)
	})
	if err != nil {
		return 0, perr.FromPostgresf(err, "replace demographics")
	}

	s.log.Info().Int("rows", len(rows)).Str("path", path).Msg("demographics loaded")
	return len(rows), nil
}

// expected header names after squashing to lowercase alphanumerics
const (
	colState      = "state"
	colTotalPop   = "totalpopulation"
	colVotingAge  = "votingagepopulation"
	colRegistered = "registeredvoters"
)

func parseCSV(r io.Reader, log logger.Logger) ([]domain.StateDemographics, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, perr.InvalidArgf("demographics csv: read header: %v", err)
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[squash(h)] = i
	}
	for _, want := range []string{colState, colTotalPop, colVotingAge, colRegistered} {
		if _, ok := idx[want]; !ok {
			return nil, perr.InvalidArgf("demographics csv: missing column %q", want)
		}
	}

	var out []domain.StateDemographics
	seen := map[string]int{} // canonical state -> index in out, later rows win
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("demographics csv row dropped")
			continue
		}

		state := CanonicalState(field(rec, idx[colState]))
		if state == "" {
			log.Warn().Int("line", line).Msg("demographics csv row has empty state, dropped")
			continue
		}

		total, err1 := parseCount(field(rec, idx[colTotalPop]))
		voting, err2 := parseCount(field(rec, idx[colVotingAge]))
		registered, err3 := parseCount(field(rec, idx[colRegistered]))
		if err1 != nil || err2 != nil || err3 != nil {
			log.Warn().Int("line", line).Str("state", state).Msg("demographics csv row has bad counts, dropped")
			continue
		}

		row := domain.StateDemographics{
			State:               state,
			TotalPopulation:     total,
			VotingAgePopulation: voting,
			RegisteredVoters:    registered,
		}
		if at, dup := seen[state]; dup {
			out[at] = row
			continue
		}
		seen[state] = len(out)
		out = append(out, row)
	}
	return out, nil
}

// squash lowercases and strips everything but letters and digits so header
// spellings like "Registered Voters" and "registered_voters" both match
func squash(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseCount accepts plain integers with optional thousands separators
func parseCount(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	return strconv.ParseInt(s, 10, 64)
}

var fctPattern = regexp.MustCompile(`(?i)^(abuja\s*federal\s*capital\s*territory|federal\s*capital\s*territory|fct\.?(\s*abuja)?|abuja)$`)

// CanonicalState collapses FCT naming variants to "Abuja" and title-cases
// the rest, mirroring how upstream datasets label the capital territory
func CanonicalState(s string) string {
	s = strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
	if s == "" {
		return ""
	}
	if fctPattern.MatchString(s) {
		return "Abuja"
	}
	parts := strings.Fields(strings.ToLower(s))
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
