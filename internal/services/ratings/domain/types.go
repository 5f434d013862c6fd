// Package domain defines approval rating types, ports, and the aggregation rules
package domain

import (
	"time"

	"github.com/google/uuid"

	"pulsetrack/internal/core/verify"
)

// StateNational is the default scope when no state is requested
const StateNational = "National"

// ApprovalRating is one logical row per (candidate, timestamp).
// Re-ingesting a date replaces the row rather than duplicating it
type ApprovalRating struct {
	ID           uuid.UUID     `json:"id"`
	Candidate    string        `json:"candidate"`
	TS           time.Time     `json:"ts"`
	RatingScore  float64       `json:"rating_score"`
	ChangeDelta  float64       `json:"change_delta"`
	State        string        `json:"state"`
	Verification verify.Status `json:"verification"`
	CreatedAt    time.Time     `json:"created_at"`
}

// SentimentBreakdown is one row per ingestion batch per candidate/date.
// Rows are append-only so reruns keep a sentiment audit trail
type SentimentBreakdown struct {
	ID              uuid.UUID `json:"id"`
	Candidate       string    `json:"candidate"`
	TS              time.Time `json:"ts"`
	Positive        float64   `json:"positive"`
	Negative        float64   `json:"negative"`
	Neutral         float64   `json:"neutral"`
	TrendingPhrases []string  `json:"trending_phrases"`
	Headlines       []string  `json:"headlines"`
	CreatedAt       time.Time `json:"created_at"`
}
