// Package sentiment scores normalized opinion text against the embedded lexicon.json
// and converts the resulting polarity into a positive/negative/neutral split
package sentiment

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"pulsetrack/internal/platform/logger"
)

//go:embed lexicon.json
var embedded []byte

// negationWindow is how many tokens back a negator still flips a sentiment term
const negationWindow = 3

type rawLexiconV1 struct {
	Version      int                `json:"version"`
	Meta         map[string]any     `json:"meta"`
	Positive     map[string]float64 `json:"positive"`
	Negative     map[string]float64 `json:"negative"`
	Negators     []string           `json:"negators"`
	Intensifiers map[string]float64 `json:"intensifiers"`
}

// Lexicon is the compiled term table the scorer walks
type Lexicon struct {
	Version int
	Meta    map[string]any

	// Weights maps lowercased term -> signed weight in [-1,1]
	Weights map[string]float64

	// Negators flip the sign of the next sentiment term within the window
	Negators map[string]struct{}

	// Intensifiers scale the next sentiment term's weight
	Intensifiers map[string]float64
}

// Load returns the compiled lexicon from the embedded lexicon.json
func Load() (*Lexicon, error) { return parse(embedded) }

func parse(raw []byte) (*Lexicon, error) {
	var rl rawLexiconV1
	if err := json.Unmarshal(raw, &rl); err != nil {
		return nil, fmt.Errorf("sentiment: parse lexicon.json: %w", err)
	}
	if rl.Version != 1 {
		return nil, fmt.Errorf("sentiment: unsupported lexicon.json version %d (want 1)", rl.Version)
	}

	lx := &Lexicon{
		Version:      rl.Version,
		Meta:         rl.Meta,
		Weights:      make(map[string]float64, len(rl.Positive)+len(rl.Negative)),
		Negators:     make(map[string]struct{}, len(rl.Negators)),
		Intensifiers: make(map[string]float64, len(rl.Intensifiers)),
	}

	add := func(term string, w float64) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		lx.Weights[term] = clamp(w, -1, 1)
	}
	for term, w := range rl.Positive {
		add(term, w)
	}
	for term, w := range rl.Negative {
		add(term, w)
	}
	for _, n := range rl.Negators {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			lx.Negators[n] = struct{}{}
		}
	}
	for term, m := range rl.Intensifiers {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && m > 0 {
			lx.Intensifiers[term] = m
		}
	}

	if len(lx.Weights) == 0 {
		return nil, fmt.Errorf("sentiment: lexicon.json has no weighted terms")
	}
	return lx, nil
}

// Result is a percentage split, each value in [0,100], summing to 100
type Result struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Neutral is the fail-soft result
func Neutral() Result { return Result{Positive: 0, Negative: 0, Neutral: 100} }

// Scorer computes polarity over pre-normalized text
type Scorer struct {
	lex *Lexicon
	log logger.Logger
}

// New constructs a Scorer over lex. A nil lex yields a scorer that always
// returns the neutral split
func New(lex *Lexicon, log logger.Logger) *Scorer {
	return &Scorer{lex: lex, log: log}
}

// Polarity returns a signed scalar in [-1,1] for normalized text.
// Matched term weights are averaged; negators within the window flip the
// sign and intensifiers scale the magnitude of the next sentiment term
func (s *Scorer) Polarity(text string) float64 {
	if s.lex == nil || text == "" {
		return 0
	}

	tokens := strings.Fields(text)
	var sum float64
	var matched int

	for i, tok := range tokens {
		w, ok := s.lex.Weights[tok]
		if !ok {
			continue
		}

		// look back for negators and intensifiers
		flip := false
		scale := 1.0
		lo := i - negationWindow
		if lo < 0 {
			lo = 0
		}
		for j := lo; j < i; j++ {
			if _, neg := s.lex.Negators[tokens[j]]; neg {
				flip = !flip
			}
			if m, ok := s.lex.Intensifiers[tokens[j]]; ok {
				scale *= m
			}
		}

		if flip {
			w = -w
		}
		sum += clamp(w*scale, -1, 1)
		matched++
	}

	if matched == 0 {
		return 0
	}
	return clamp(sum/float64(matched), -1, 1)
}

// Score maps text through Polarity and Split, never returning an error.
// Anything unscorable degrades to the neutral split
func (s *Scorer) Score(text string) Result {
	if s.lex == nil {
		s.log.Warn().Msg("sentiment scorer has no lexicon, returning neutral")
		return Neutral()
	}
	return Split(s.Polarity(text))
}

// Split converts a polarity in [-1,1] into the percentage split.
// polarity > 0.1 yields a positive share, polarity < -0.1 a negative share,
// everything between is fully neutral
func Split(polarity float64) Result {
	switch {
	case polarity > 0.1:
		pos := polarity * 100
		return Result{Positive: pos, Negative: 0, Neutral: 100 - pos}
	case polarity < -0.1:
		neg := -polarity * 100
		return Result{Positive: 0, Negative: neg, Neutral: 100 - neg}
	default:
		return Neutral()
	}
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
