package candidate

import "testing"

func TestTokenMatcher_Resolve(t *testing.T) {
	m := NewTokenMatcher(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tinubu mention", "tinubu is doing well on the economy", "Tinubu"},
		{"obi mention", "i will vote obi this time", "Obi"},
		{"atiku mention", "atiku has the experience we need", "Atiku"},
		{"mixed case input", "OBI for president", "Obi"},
		{"no candidate", "fuel prices keep rising in lagos", Unknown},
		{"empty", "", Unknown},
		{"token inside word does not match", "urban mobility is a problem", Unknown},
		{"roster order wins on ties", "tinubu versus obi debate tonight", "Tinubu"},
		{"token at string edge", "obi", "Obi"},
		{"token next to digits", "obi2027 campaign", "Obi"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Resolve(tc.in); got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewTokenMatcher_CustomRoster(t *testing.T) {
	m := NewTokenMatcher([]string{"Kwankwaso", " ", ""})
	if got := m.Resolve("kwankwaso rally in kano"); got != "Kwankwaso" {
		t.Fatalf("Resolve = %q, want Kwankwaso", got)
	}
	if got := len(m.Roster()); got != 1 {
		t.Fatalf("Roster len = %d, want 1 (blank entries dropped)", got)
	}
}
