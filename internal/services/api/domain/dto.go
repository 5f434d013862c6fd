// Package domain defines dashboard API request and response shapes
package domain

import "time"

// SeriesInput selects an approval rating time series
type SeriesInput struct {
	Candidate string     `json:"candidate" validate:"required"`
	Since     *time.Time `json:"since,omitempty"`
	Until     *time.Time `json:"until,omitempty"`
}

// BreakdownInput selects recent sentiment breakdown rows
type BreakdownInput struct {
	Candidate string `json:"candidate" validate:"required"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

// AuditRecentInput selects recent audit events
type AuditRecentInput struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=1000"`
}

// UploadReceipt acknowledges a stored batch file
type UploadReceipt struct {
	Accepted bool   `json:"accepted"`
	Filename string `json:"filename"`
}
