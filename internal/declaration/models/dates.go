package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dmyPattern accepts D/M/YYYY and DD/MM/YYYY.
var dmyPattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

const (
	dmyLayout  = "2/1/2006"
	wireLayout = "2006-01-02T15:04:05.000Z"
)

// ParseDMY parses a user-entered day/month/year date.
func ParseDMY(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dmyPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q is not in D/M/YYYY form", s)
	}
	t, err := time.ParseInLocation(dmyLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	return t, nil
}

// IsDMY reports whether s matches the accepted date grammar and is a real date.
func IsDMY(s string) bool {
	_, err := ParseDMY(s)
	return err == nil
}

// WireDate converts a D/M/YYYY date to an ISO 8601 UTC midnight timestamp.
// Invalid input yields "".
func WireDate(s string) string {
	t, err := ParseDMY(s)
	if err != nil {
		return ""
	}
	return t.UTC().Format(wireLayout)
}

// DisplayDate converts a wire timestamp back to DD/MM/YYYY. Values already in
// D/M/YYYY form pass through; anything else yields "".
func DisplayDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if IsDMY(s) {
		return s
	}
	for _, layout := range []string{wireLayout, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("02/01/2006")
		}
	}
	return ""
}
