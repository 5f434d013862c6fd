package service

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	perr "pulsetrack/internal/platform/errors"
	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/services/ingest/domain"
)

// batch file date layout, e.g. 2025-08-10
const dateLayout = "2006-01-02"

// expected header names after squashing to lowercase alphanumerics
const (
	colDate       = "date"
	colCategory   = "sentimentcategory"
	colPercentage = "percentage"
	colTrending   = "trendingphrases"
	colExample    = "exampleposts"
)

// errEmptyFile marks a zero-row file so the caller can transition to Skipped
var errEmptyFile = perr.InvalidArgf("batch file has no data rows")

// parseRows reads a batch CSV. Malformed rows are dropped with a warning,
// a missing required column or an empty file fails the parse
func parseRows(r io.Reader, log logger.Logger) ([]domain.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errEmptyFile
	}
	if err != nil {
		return nil, perr.InvalidArgf("batch csv: read header: %v", err)
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[squash(h)] = i
	}
	if _, ok := idx[colCategory]; !ok {
		return nil, perr.InvalidArgf("batch csv: missing column %q", "Sentiment Category")
	}
	if _, ok := idx[colPercentage]; !ok {
		return nil, perr.InvalidArgf("batch csv: missing column %q", "Percentage")
	}
	dateAt, hasDate := idx[colDate]

	var out []domain.Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("batch csv row dropped")
			continue
		}

		row := domain.Row{
			Category:   field(rec, idx[colCategory]),
			Percentage: field(rec, idx[colPercentage]),
			Trending:   field(rec, at(idx, colTrending)),
			Example:    field(rec, at(idx, colExample)),
		}
		if hasDate {
			row.Date = field(rec, dateAt)
		}
		if row.Category == "" {
			log.Warn().Int("line", line).Msg("batch csv row has no category, dropped")
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, errEmptyFile
	}
	return out, nil
}

// groupByDate buckets rows by their Date value. Rows without a date land in
// one fallback group stamped with now. Group order follows the date keys
func groupByDate(rows []domain.Row, now time.Time, log logger.Logger) []domain.Group {
	buckets := map[string][]domain.Row{}
	var keys []string
	for _, r := range rows {
		k := r.Date
		if _, seen := buckets[k]; !seen {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], r)
	}
	sort.Strings(keys)

	out := make([]domain.Group, 0, len(keys))
	for _, k := range keys {
		g := domain.Group{DateKey: k, Rows: buckets[k]}
		if k == "" {
			g.TS = now
		} else if ts, err := time.ParseInLocation(dateLayout, k, time.UTC); err == nil {
			g.TS = ts
		} else {
			log.Warn().Str("date", k).Msg("invalid batch date, using current time")
			g.TS = now
		}
		out = append(out, g)
	}
	return out
}

// groupSplit extracts the direct-ingest sentiment split plus trending phrases,
// headlines, and example posts from one group's rows
type groupSplit struct {
	Positive float64
	Negative float64
	Neutral  float64

	// SentimentRows counts the non-headline rows, the batch's mention count
	SentimentRows int

	TrendingPhrases []string
	Headlines       []string
	Examples        []string
}

func splitGroup(g domain.Group) groupSplit {
	var out groupSplit
	seenPhrase := map[string]struct{}{}

	for _, r := range g.Rows {
		switch r.Category {
		case domain.CategoryHeadlines:
			// headlines rows carry their text in the percentage column
			if h := strings.TrimSpace(r.Percentage); h != "" {
				out.Headlines = append(out.Headlines, h)
			}
		case domain.CategoryPositive:
			out.Positive = parsePercent(r.Percentage)
		case domain.CategoryNegative:
			out.Negative = parsePercent(r.Percentage)
		case domain.CategoryNeutral:
			out.Neutral = parsePercent(r.Percentage)
		}

		if r.Category != domain.CategoryHeadlines {
			out.SentimentRows++
			if e := strings.TrimSpace(r.Example); e != "" {
				out.Examples = append(out.Examples, e)
			}
		}
		if p := strings.TrimSpace(r.Trending); p != "" {
			if _, dup := seenPhrase[p]; !dup {
				seenPhrase[p] = struct{}{}
				out.TrendingPhrases = append(out.TrendingPhrases, p)
			}
		}
	}
	return out
}

// detectionText is the free text scanned for candidate name tokens
func (s groupSplit) detectionText() string {
	parts := make([]string, 0, len(s.Headlines)+len(s.TrendingPhrases))
	parts = append(parts, s.Headlines...)
	parts = append(parts, s.TrendingPhrases...)
	return strings.Join(parts, " ")
}

// parsePercent tolerates a trailing percent sign, bad values become 0
func parsePercent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// squash lowercases and strips everything but letters and digits so header
// spellings like "Sentiment Category" and "sentiment_category" both match
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

func at(idx map[string]int, name string) int {
	if i, ok := idx[name]; ok {
		return i
	}
	return -1
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
