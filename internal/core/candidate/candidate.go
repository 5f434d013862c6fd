// Package candidate resolves free text to a known candidate.
// The Resolver interface keeps detection pluggable so the token matcher can be
// swapped for a smarter model without touching the pipeline
package candidate

import "strings"

// Unknown is returned when no roster candidate is mentioned
const Unknown = ""

// Resolver maps free text to a candidate name or Unknown
type Resolver interface {
	Resolve(text string) string
}

// DefaultRoster is the candidate set tracked out of the box
var DefaultRoster = []string{"Tinubu", "Atiku", "Obi"}

// TokenMatcher resolves candidates by scanning normalized text for name tokens.
// First roster candidate whose token appears wins, roster order is precedence
type TokenMatcher struct {
	roster []string
	tokens []string // lowercased, parallel to roster
}

// NewTokenMatcher builds a matcher over roster. An empty roster falls back to
// the default one
func NewTokenMatcher(roster []string) *TokenMatcher {
	if len(roster) == 0 {
		roster = DefaultRoster
	}
	m := &TokenMatcher{
		roster: make([]string, 0, len(roster)),
		tokens: make([]string, 0, len(roster)),
	}
	for _, name := range roster {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		m.roster = append(m.roster, name)
		m.tokens = append(m.tokens, strings.ToLower(name))
	}
	return m
}

// Roster returns the candidate names this matcher knows
func (m *TokenMatcher) Roster() []string {
	out := make([]string, len(m.roster))
	copy(out, m.roster)
	return out
}

// Resolve scans text for a roster name token and returns the canonical
// candidate name, or Unknown when nothing matches
func (m *TokenMatcher) Resolve(text string) string {
	if text == "" {
		return Unknown
	}
	lower := strings.ToLower(text)
	for i, tok := range m.tokens {
		if containsToken(lower, tok) {
			return m.roster[i]
		}
	}
	return Unknown
}

// containsToken reports whether tok appears in s bounded by non-letters,
// so "obi" does not match inside "mobility"
func containsToken(s, tok string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], tok)
		if i < 0 {
			return false
		}
		i += from
		j := i + len(tok)
		leftOK := i == 0 || !isLetter(s[i-1])
		rightOK := j == len(s) || !isLetter(s[j])
		if leftOK && rightOK {
			return true
		}
		from = i + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
