package service

import (
	"strings"
	"testing"
	"time"

	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/services/ingest/domain"
)

func TestParseRows(t *testing.T) {
	log := *logger.Named("ingest-test")

	in := strings.Join([]string{
		"Date,Sentiment Category,Percentage,Trending Phrases,Example Posts",
		"2025-08-10,Positive,62,renewed hope,tinubu is delivering",
		"2025-08-10,Negative,18,fuel subsidy,prices are killing us",
		"2025-08-10,Neutral,20,,waiting to see",
		`2025-08-10,Headlines,"Tinubu rallies in Lagos",,`,
	}, "\n")

	rows, err := parseRows(strings.NewReader(in), log)
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[3].Category != domain.CategoryHeadlines || rows[3].Percentage != "Tinubu rallies in Lagos" {
		t.Fatalf("headlines row = %+v, want text carried in percentage column", rows[3])
	}
}

func TestParseRows_EmptyAndMalformed(t *testing.T) {
	log := *logger.Named("ingest-test")

	if _, err := parseRows(strings.NewReader(""), log); err == nil {
		t.Fatal("expected error for empty file")
	}
	if _, err := parseRows(strings.NewReader("Date,Sentiment Category,Percentage\n"), log); err == nil {
		t.Fatal("expected error for header-only file")
	}
	if _, err := parseRows(strings.NewReader("Date,Percentage\n2025-01-01,5"), log); err == nil {
		t.Fatal("expected error for missing category column")
	}

	// rows with no category are dropped, not fatal
	in := "Date,Sentiment Category,Percentage\n2025-01-01,,5\n2025-01-01,Positive,5"
	rows, err := parseRows(strings.NewReader(in), log)
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (blank category dropped)", len(rows))
	}
}

func TestGroupByDate(t *testing.T) {
	log := *logger.Named("ingest-test")
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	rows := []domain.Row{
		{Date: "2025-08-11", Category: domain.CategoryPositive, Percentage: "50"},
		{Date: "2025-08-10", Category: domain.CategoryPositive, Percentage: "60"},
		{Date: "2025-08-10", Category: domain.CategoryNeutral, Percentage: "40"},
	}
	groups := groupByDate(rows, now, log)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].DateKey != "2025-08-10" || len(groups[0].Rows) != 2 {
		t.Fatalf("first group = %+v, want two 2025-08-10 rows", groups[0])
	}
	want := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	if !groups[0].TS.Equal(want) {
		t.Fatalf("group ts = %v, want %v", groups[0].TS, want)
	}
}

func TestGroupByDate_Fallbacks(t *testing.T) {
	log := *logger.Named("ingest-test")
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	// dateless rows form one group stamped with now
	groups := groupByDate([]domain.Row{
		{Category: domain.CategoryPositive, Percentage: "10"},
		{Category: domain.CategoryNeutral, Percentage: "90"},
	}, now, log)
	if len(groups) != 1 || !groups[0].TS.Equal(now) {
		t.Fatalf("dateless groups = %+v, want one group at now", groups)
	}

	// invalid date also falls back to now
	groups = groupByDate([]domain.Row{
		{Date: "not-a-date", Category: domain.CategoryPositive, Percentage: "10"},
	}, now, log)
	if len(groups) != 1 || !groups[0].TS.Equal(now) {
		t.Fatalf("invalid-date groups = %+v, want one group at now", groups)
	}
}

func TestSplitGroup(t *testing.T) {
	g := domain.Group{Rows: []domain.Row{
		{Category: domain.CategoryPositive, Percentage: "62%", Trending: "renewed hope", Example: "tinubu is delivering"},
		{Category: domain.CategoryNegative, Percentage: "18", Trending: "fuel subsidy", Example: "prices are killing us"},
		{Category: domain.CategoryNeutral, Percentage: "20", Trending: "renewed hope", Example: ""},
		{Category: domain.CategoryHeadlines, Percentage: "Tinubu rallies in Lagos"},
	}}

	s := splitGroup(g)
	if s.Positive != 62 || s.Negative != 18 || s.Neutral != 20 {
		t.Fatalf("split = %+v, want 62/18/20", s)
	}
	if len(s.TrendingPhrases) != 2 {
		t.Fatalf("trending = %v, want deduped to 2", s.TrendingPhrases)
	}
	if len(s.Headlines) != 1 || s.Headlines[0] != "Tinubu rallies in Lagos" {
		t.Fatalf("headlines = %v", s.Headlines)
	}
	if len(s.Examples) != 2 {
		t.Fatalf("examples = %v, want 2 non-empty", s.Examples)
	}
	// every non-headline row counts as a mention, with or without an example
	if s.SentimentRows != 3 {
		t.Fatalf("sentiment rows = %d, want 3", s.SentimentRows)
	}
	if got := s.detectionText(); !strings.Contains(got, "Tinubu rallies") {
		t.Fatalf("detectionText = %q, want headlines included", got)
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"62", 62},
		{" 62% ", 62},
		{"62.5", 62.5},
		{"abc", 0},
		{"-3", 0},
		{"150", 100},
		{"", 0},
	}
	for _, tc := range tests {
		if got := parsePercent(tc.in); got != tc.want {
			t.Fatalf("parsePercent(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
