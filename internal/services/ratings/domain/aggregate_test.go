package domain

import (
	"math"
	"testing"

	"pulsetrack/internal/core/sentiment"
)

func TestAggregateSentiments(t *testing.T) {
	tests := []struct {
		name string
		in   []sentiment.Result
		want sentiment.Result
	}{
		{
			name: "empty batch is neutral",
			in:   nil,
			want: sentiment.Result{Positive: 0, Negative: 0, Neutral: 100},
		},
		{
			name: "single record passes through",
			in:   []sentiment.Result{{Positive: 80, Negative: 0, Neutral: 20}},
			want: sentiment.Result{Positive: 80, Negative: 0, Neutral: 20},
		},
		{
			name: "arithmetic mean",
			in: []sentiment.Result{
				{Positive: 60, Negative: 20, Neutral: 20},
				{Positive: 20, Negative: 40, Neutral: 40},
			},
			want: sentiment.Result{Positive: 40, Negative: 30, Neutral: 30},
		},
	}

	const eps = 1e-9
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := AggregateSentiments(tc.in)
			if math.Abs(got.Positive-tc.want.Positive) > eps ||
				math.Abs(got.Negative-tc.want.Negative) > eps ||
				math.Abs(got.Neutral-tc.want.Neutral) > eps {
				t.Fatalf("AggregateSentiments = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestScoreAndDelta(t *testing.T) {
	tests := []struct {
		name      string
		agg       sentiment.Result
		previous  float64
		wantScore float64
		wantDelta float64
	}{
		{
			name:      "first data point",
			agg:       sentiment.Result{Positive: 80, Neutral: 20},
			previous:  0,
			wantScore: 90.00,
			wantDelta: 90.00,
		},
		{
			name:      "fully neutral",
			agg:       sentiment.Result{Neutral: 100},
			previous:  50,
			wantScore: 50.00,
			wantDelta: 0.00,
		},
		{
			name:      "fully negative scores zero",
			agg:       sentiment.Result{Negative: 100},
			previous:  30,
			wantScore: 0.00,
			wantDelta: -30.00,
		},
		{
			name:      "clamped at 100",
			agg:       sentiment.Result{Positive: 90, Neutral: 40},
			previous:  100,
			wantScore: 100.00,
			wantDelta: 0.00,
		},
		{
			name:      "two decimal rounding",
			agg:       sentiment.Result{Positive: 33.333, Neutral: 33.333},
			previous:  10,
			wantScore: 50.00,
			wantDelta: 40.00,
		},
		{
			name:      "decline",
			agg:       sentiment.Result{Positive: 20, Neutral: 30},
			previous:  62.5,
			wantScore: 35.00,
			wantDelta: -27.50,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			score := Score(tc.agg)
			if score != tc.wantScore {
				t.Fatalf("Score(%+v) = %v, want %v", tc.agg, score, tc.wantScore)
			}
			if delta := Delta(score, tc.previous); delta != tc.wantDelta {
				t.Fatalf("Delta(%v, %v) = %v, want %v", score, tc.previous, delta, tc.wantDelta)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(33.3333); got != 33.33 {
		t.Fatalf("Round2(33.3333) = %v, want 33.33", got)
	}
	if got := Round2(-27.504); got != -27.5 {
		t.Fatalf("Round2(-27.504) = %v, want -27.5", got)
	}
}
