// Package domain defines ingestion types, the pass state machine, and ports
package domain

import "time"

// Row is one parsed CSV record from a batch file.
// Percentage stays a raw string because Headlines rows carry free text in it
type Row struct {
	Date       string
	Category   string
	Percentage string
	Trending   string
	Example    string
}

// Sentiment category labels recognized in batch files
const (
	CategoryPositive  = "Positive"
	CategoryNegative  = "Negative"
	CategoryNeutral   = "Neutral"
	CategoryHeadlines = "Headlines"
)

// Group is one date-bucketed slice of a batch file
type Group struct {
	// DateKey is the raw Date value, empty for the dateless fallback group
	DateKey string

	// TS is the resolved timestamp for the group
	TS time.Time

	Rows []Row
}

// State is a node in the ingestion state machine
type State string

// Ingestion states. Skipped is terminal for empty or malformed files,
// Failed is terminal per group and never aborts sibling groups
const (
	StateScanning     State = "scanning"
	StateParsing      State = "parsing"
	StateGrouping     State = "grouping_by_date"
	StateTransforming State = "per_group_transform"
	StateUpserting    State = "upserting"
	StateArchiving    State = "archiving"
	StateDone         State = "done"
	StateSkipped      State = "skipped"
	StateFailed       State = "failed"
)

// GroupReport is the outcome for one date group
type GroupReport struct {
	DateKey   string    `json:"date_key,omitempty"`
	TS        time.Time `json:"ts"`
	Candidate string    `json:"candidate,omitempty"`
	State     State     `json:"state"`
	Score     float64   `json:"score"`
	Err       string    `json:"error,omitempty"`
}

// FileReport is the outcome for one batch file
type FileReport struct {
	File   string        `json:"file"`
	State  State         `json:"state"`
	Groups []GroupReport `json:"groups,omitempty"`
	Err    string        `json:"error,omitempty"`
}

// PassReport is the outcome for one whole ingestion pass
type PassReport struct {
	StartedAt time.Time    `json:"started_at"`
	Elapsed   string       `json:"elapsed"`
	Files     []FileReport `json:"files,omitempty"`
}

// Succeeded reports whether at least one group in the file was fully upserted
func (f FileReport) Succeeded() bool {
	for _, g := range f.Groups {
		if g.State == StateDone {
			return true
		}
	}
	return false
}
