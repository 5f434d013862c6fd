// Package domain defines demographics types and ports
package domain

import "time"

// StateDemographics is one state's reference population row
type StateDemographics struct {
	State               string    `json:"state"`
	TotalPopulation     int64     `json:"total_population"`
	VotingAgePopulation int64     `json:"voting_age_population"`
	RegisteredVoters    int64     `json:"registered_voters"`
	UpdatedAt           time.Time `json:"updated_at"`
}
