package verify

import "testing"

func TestClassify_Table(t *testing.T) {
	c := New(0.1)

	tests := []struct {
		name     string
		mentions int64
		voters   int64
		want     Status
	}{
		{"well under threshold", 99_999, 1_000_000, StatusVerified},
		{"over threshold", 100_001, 1_000_000, StatusSuspicious},
		{"exactly at threshold", 100_000, 1_000_000, StatusSuspicious},
		{"zero mentions", 0, 1_000_000, StatusVerified},
		{"zero population", 50_000, 0, StatusVerified},
		{"negative mentions", -5, 1_000_000, StatusVerified},
		{"tiny state scope", 600, 5_000, StatusSuspicious},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(tc.mentions, tc.voters); got != tc.want {
				t.Fatalf("Classify(%d, %d) = %q, want %q", tc.mentions, tc.voters, got, tc.want)
			}
		})
	}
}

func TestNew_ThresholdFallback(t *testing.T) {
	if got := New(0).Threshold(); got != DefaultThresholdFraction {
		t.Fatalf("New(0).Threshold() = %v, want %v", got, DefaultThresholdFraction)
	}
	if got := New(-1).Threshold(); got != DefaultThresholdFraction {
		t.Fatalf("New(-1).Threshold() = %v, want %v", got, DefaultThresholdFraction)
	}
	if got := New(0.25).Threshold(); got != 0.25 {
		t.Fatalf("New(0.25).Threshold() = %v, want 0.25", got)
	}
}
