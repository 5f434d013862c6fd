// Package verify flags implausibly large mention batches against a reference
// voter population. It is a coarse anti-astroturfing signal, never a hard filter
package verify

// Status is the coarse batch label
type Status string

const (
	// StatusVerified means batch volume looks organically plausible
	StatusVerified Status = "verified"

	// StatusSuspicious means batch volume meets or exceeds the threshold share
	// of the reference population
	StatusSuspicious Status = "suspicious"
)

// DefaultThresholdFraction is the share of registered voters a batch must
// reach to be flagged
const DefaultThresholdFraction = 0.1

// Classifier labels mention batches
type Classifier struct {
	threshold float64
}

// New constructs a Classifier. A non-positive threshold falls back to the default
func New(thresholdFraction float64) *Classifier {
	if thresholdFraction <= 0 {
		thresholdFraction = DefaultThresholdFraction
	}
	return &Classifier{threshold: thresholdFraction}
}

// Threshold reports the configured fraction
func (c *Classifier) Threshold() float64 { return c.threshold }

// Classify labels a batch of mentions against referenceVoters.
// A batch is suspicious when mentions >= threshold * referenceVoters.
// A non-positive reference population cannot flag anything and yields verified
func (c *Classifier) Classify(mentions int64, referenceVoters int64) Status {
	if referenceVoters <= 0 || mentions < 0 {
		return StatusVerified
	}
	if float64(mentions) >= c.threshold*float64(referenceVoters) {
		return StatusSuspicious
	}
	return StatusVerified
}
