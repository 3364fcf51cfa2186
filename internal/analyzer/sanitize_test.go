package analyzer

import "testing"

func TestSanitizeStripsInterpolationCharacters(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"a`b", "ab"},
		{"${injection}", "injection"},
		{"{}{}{}", ""},
		{"cost is $5,000", "cost is 5,000"},
		{"kitchen remodel, 20m2", "kitchen remodel, 20m2"},
		{"", ""},
		{"`${`}`$", ""},
		{"unicode ünaffected ✓", "unicode ünaffected ✓"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{"a`b${c}d", "no specials", "$$$$", "{{nested}}"}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
