// Package domain defines raw input types and ports
package domain

import (
	"time"

	"github.com/google/uuid"

	"pulsetrack/internal/core/verify"
)

// RawInput is one stored opinion record, immutable once written
type RawInput struct {
	ID           uuid.UUID     `json:"id"`
	Source       string        `json:"source"`
	Content      string        `json:"content"`
	UserID       string        `json:"user_id"`
	Candidate    string        `json:"candidate"`
	Location     *string       `json:"location,omitempty"`
	Verification verify.Status `json:"verification"`
	TS           time.Time     `json:"ts"`
	CreatedAt    time.Time     `json:"created_at"`
}

// RawInputWrite is the insert shape, the repo derives id and content hash
type RawInputWrite struct {
	Source       string
	Content      string
	UserID       string
	Candidate    string
	Location     *string
	Verification verify.Status
	TS           time.Time
}
