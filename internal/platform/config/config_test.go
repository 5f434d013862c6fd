package config

import (
	"testing"
	"time"
)

func TestPrefixAndMayGetters(t *testing.T) {
	t.Setenv("CORE_TEST_NAME", "pulsetrack")
	t.Setenv("CORE_TEST_PORT", "8080")
	t.Setenv("CORE_TEST_RATIO", "0.25")
	t.Setenv("CORE_TEST_WATCH", "true")
	t.Setenv("CORE_TEST_EVERY", "15m")
	t.Setenv("CORE_TEST_ROSTER", "Tinubu, Atiku ,Obi")

	c := New().Prefix("CORE_TEST_")

	if got := c.MayString("NAME", "x"); got != "pulsetrack" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("PORT", 0); got != 8080 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayFloat64("RATIO", 0); got != 0.25 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayBool("WATCH", false); !got {
		t.Fatal("MayBool = false, want true")
	}
	if got := c.MayDuration("EVERY", 0); got != 15*time.Minute {
		t.Fatalf("MayDuration = %v", got)
	}
	roster := c.MayCSV("ROSTER", nil)
	if len(roster) != 3 || roster[1] != "Atiku" {
		t.Fatalf("MayCSV = %v, want trimmed 3 entries", roster)
	}
}

func TestMayGettersDefaults(t *testing.T) {
	c := New().Prefix("CORE_UNSET_")
	if got := c.MayString("NAME", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("PORT", 42); got != 42 {
		t.Fatalf("MayInt default = %d", got)
	}
	if got := c.MayDuration("EVERY", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration default = %v", got)
	}
	if got := c.MayCSV("ROSTER", []string{"a"}); len(got) != 1 {
		t.Fatalf("MayCSV default = %v", got)
	}
}
