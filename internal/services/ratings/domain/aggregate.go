package domain

import (
	"math"

	"pulsetrack/internal/core/sentiment"
)

// AggregateSentiments averages a batch of per-record splits.
// An empty batch degrades to the fully neutral split
func AggregateSentiments(xs []sentiment.Result) sentiment.Result {
	if len(xs) == 0 {
		return sentiment.Neutral()
	}
	var agg sentiment.Result
	for _, x := range xs {
		agg.Positive += x.Positive
		agg.Negative += x.Negative
		agg.Neutral += x.Neutral
	}
	n := float64(len(xs))
	agg.Positive /= n
	agg.Negative /= n
	agg.Neutral /= n
	return agg
}

// Score computes the 0-100 approval score from an aggregated split.
// Neutral opinions count as half-supportive
func Score(agg sentiment.Result) float64 {
	return Round2(clamp(agg.Positive+0.5*agg.Neutral, 0, 100))
}

// Delta is the signed change against the previously stored score
func Delta(score, previous float64) float64 {
	return Round2(score - previous)
}

// Round2 rounds to 2 decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
