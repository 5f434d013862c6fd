package service

import (
	"strings"
	"testing"

	"pulsetrack/internal/platform/logger"
)

func TestCanonicalState(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lagos", "Lagos"},
		{"lagos", "Lagos"},
		{"  akwa   ibom ", "Akwa Ibom"},
		{"FCT", "Abuja"},
		{"fct.", "Abuja"},
		{"FCT Abuja", "Abuja"},
		{"Federal Capital Territory", "Abuja"},
		{"Abuja Federal Capital Territory", "Abuja"},
		{"abuja", "Abuja"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := CanonicalState(tc.in); got != tc.want {
			t.Fatalf("CanonicalState(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseCSV(t *testing.T) {
	log := *logger.Named("demographics-test")

	in := strings.Join([]string{
		"state,total_population,voting_age_population,registered_voters",
		"Lagos,15000000,9000000,7000000",
		"FCT,3500000,2100000,\"1,500,000\"",
		"Kano,bad,1,1",
		",1,1,1",
		"lagos,16000000,9500000,7200000",
	}, "\n")

	rows, err := parseCSV(strings.NewReader(in), log)
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (bad rows dropped, duplicate collapsed)", len(rows))
	}

	// duplicate Lagos row should have overwritten the first
	if rows[0].State != "Lagos" || rows[0].RegisteredVoters != 7_200_000 {
		t.Fatalf("lagos row = %+v, want later duplicate to win", rows[0])
	}
	if rows[1].State != "Abuja" || rows[1].RegisteredVoters != 1_500_000 {
		t.Fatalf("fct row = %+v, want canonical Abuja with separators parsed", rows[1])
	}
}

func TestParseCSV_MissingColumn(t *testing.T) {
	log := *logger.Named("demographics-test")
	_, err := parseCSV(strings.NewReader("state,total_population\nLagos,1"), log)
	if err == nil {
		t.Fatal("expected missing column error")
	}
}
