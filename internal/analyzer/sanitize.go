package analyzer

import "strings"

// Sanitize strips the characters that could terminate or escape a template
// interpolation boundary (backtick, dollar sign, curly braces) from
// user-supplied text before it is embedded into the instruction prompt.
// All other characters pass through unchanged.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '`', '$', '{', '}':
			return -1
		}
		return r
	}, s)
}
