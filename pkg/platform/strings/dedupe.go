// Package strings normalizes the ISO codes (countries, currencies) that
// travel through forms and collaborator payloads.
package strings

import (
	"strings"
)

// NormalizeCode trims and upper-cases a code ("ke " -> "KE").
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// DedupeCodes normalizes each code and drops blanks and repeats, keeping the
// first-seen order.
//
//	DedupeCodes([]string{" ke", "UG", "Ke"}) // []string{"KE", "UG"}
func DedupeCodes(codes []string) []string {
	if len(codes) == 0 {
		return codes
	}
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = NormalizeCode(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
