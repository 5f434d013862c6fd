package sentiment

import (
	"math"
	"testing"

	"pulsetrack/internal/platform/logger"
)

func mustScorer(t *testing.T) *Scorer {
	t.Helper()
	lex, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return New(lex, *logger.Named("sentiment-test"))
}

func TestLoad(t *testing.T) {
	lex, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lex.Weights) == 0 {
		t.Fatal("expected weighted terms")
	}
	if _, ok := lex.Negators["not"]; !ok {
		t.Fatal("expected 'not' in negators")
	}
	if lex.Weights["great"] <= 0 {
		t.Fatalf("expected positive weight for 'great', got %v", lex.Weights["great"])
	}
	if lex.Weights["corrupt"] >= 0 {
		t.Fatalf("expected negative weight for 'corrupt', got %v", lex.Weights["corrupt"])
	}
}

func TestParse_Rejects(t *testing.T) {
	if _, err := parse([]byte(`{"version":2}`)); err == nil {
		t.Fatal("expected version error")
	}
	if _, err := parse([]byte(`not json`)); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := parse([]byte(`{"version":1}`)); err == nil {
		t.Fatal("expected empty lexicon error")
	}
}

func TestPolarity_Direction(t *testing.T) {
	s := mustScorer(t)

	tests := []struct {
		name string
		in   string
		sign int // -1, 0, +1
	}{
		{"positive text", "tinubu is doing a great job with excellent progress", +1},
		{"negative text", "atiku failed the country corruption everywhere terrible", -1},
		{"no sentiment terms", "the election is on saturday in lagos", 0},
		{"empty", "", 0},
		{"negated positive flips", "obi is not good for the economy", -1},
		{"negated negative flips", "tinubu is not corrupt", +1},
		{"intensifier amplifies", "very terrible government", -1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := s.Polarity(tc.in)
			if p < -1 || p > 1 {
				t.Fatalf("Polarity(%q) = %v out of [-1,1]", tc.in, p)
			}
			switch tc.sign {
			case 0:
				if p != 0 {
					t.Fatalf("Polarity(%q) = %v, want 0", tc.in, p)
				}
			case +1:
				if p <= 0 {
					t.Fatalf("Polarity(%q) = %v, want > 0", tc.in, p)
				}
			case -1:
				if p >= 0 {
					t.Fatalf("Polarity(%q) = %v, want < 0", tc.in, p)
				}
			}
		})
	}
}

func TestPolarity_IntensifierScales(t *testing.T) {
	s := mustScorer(t)
	plain := s.Polarity("good government")
	boosted := s.Polarity("very good government")
	if boosted <= plain {
		t.Fatalf("expected intensifier to raise polarity: plain=%v boosted=%v", plain, boosted)
	}
}

func TestSplit_ConversionRule(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		want     Result
	}{
		{"strong positive", 0.8, Result{Positive: 80, Negative: 0, Neutral: 20}},
		{"strong negative", -0.6, Result{Positive: 0, Negative: 60, Neutral: 40}},
		{"just above threshold", 0.11, Result{Positive: 11, Negative: 0, Neutral: 89}},
		{"just below threshold", 0.1, Result{Positive: 0, Negative: 0, Neutral: 100}},
		{"at negative threshold", -0.1, Result{Positive: 0, Negative: 0, Neutral: 100}},
		{"zero", 0, Result{Positive: 0, Negative: 0, Neutral: 100}},
		{"max positive", 1, Result{Positive: 100, Negative: 0, Neutral: 0}},
		{"max negative", -1, Result{Positive: 0, Negative: 100, Neutral: 0}},
	}

	const eps = 1e-9
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.polarity)
			if math.Abs(got.Positive-tc.want.Positive) > eps ||
				math.Abs(got.Negative-tc.want.Negative) > eps ||
				math.Abs(got.Neutral-tc.want.Neutral) > eps {
				t.Fatalf("Split(%v) = %+v, want %+v", tc.polarity, got, tc.want)
			}
			if sum := got.Positive + got.Negative + got.Neutral; math.Abs(sum-100) > eps {
				t.Fatalf("Split(%v) shares sum to %v, want 100", tc.polarity, sum)
			}
		})
	}
}

func TestScore_FailSoft(t *testing.T) {
	s := New(nil, *logger.Named("sentiment-test"))
	got := s.Score("great excellent amazing")
	if got != Neutral() {
		t.Fatalf("nil-lexicon Score = %+v, want neutral", got)
	}
}
