// Package dates provides canonical date parsing and validation helpers.
//
// This package exists to avoid duplicating date logic across:
// - link identity (journal/day notes)
// - context building (date-specificity scoring)
// - task snoozing (CLI date args)
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	dayRegex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayLegacyRegex = regexp.MustCompile(`^\d{4}_\d{2}_\d{2}$`)
	monthRegex     = regexp.MustCompile(`^\d{4}-\d{2}$`)
	quarterRegex   = regexp.MustCompile(`^\d{4}-Q[1-4]$`)
	yearRegex      = regexp.MustCompile(`^\d{4}$`)
	timestampRegex = regexp.MustCompile(`^\s*\d{1,2}:\d{2}(:\d{2})?\s*$`)
	offsetRegex    = regexp.MustCompile(`^(\d+)([dw])$`)
)

// IsDayName reports whether a note name denotes a journal day note.
// Accepts YYYY-MM-DD and, for old corpora, YYYY_MM_DD.
func IsDayName(s string) bool {
	_, err := ParseDayName(s)
	return err == nil
}

// ParseDayName parses a journal day-note name in either accepted form.
func ParseDayName(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if dayLegacyRegex.MatchString(s) {
		s = strings.ReplaceAll(s, "_", "-")
	}
	if !dayRegex.MatchString(s) {
		return time.Time{}, fmt.Errorf("not a day-note name: %q", s)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a day-note name: %q", s)
	}
	return t, nil
}

// Specificity scores how date-like a name is: 4 for an exact day, 3 for a
// year-month, 2 for a year-quarter, 1 for a bare year, 0 otherwise.
// First match wins.
func Specificity(name string) int {
	switch {
	case dayRegex.MatchString(name) || dayLegacyRegex.MatchString(name):
		return 4
	case monthRegex.MatchString(name):
		return 3
	case quarterRegex.MatchString(name):
		return 2
	case yearRegex.MatchString(name):
		return 1
	default:
		return 0
	}
}

// IsBareTimestamp reports whether a string is nothing but a clock time,
// e.g. "14:05" or "9:30:00". Used to filter noise headings.
func IsBareTimestamp(s string) bool {
	return timestampRegex.MatchString(s)
}

// ParseDateArg parses a CLI date argument which can be:
// - "today", "yesterday", "tomorrow" (relative dates)
// - "YYYY-MM-DD" (absolute date)
// - a bare offset like "3d" or "2w" (days/weeks from now)
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	dateArg := strings.ToLower(strings.TrimSpace(arg))
	switch dateArg {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}

	if m := offsetRegex.FindStringSubmatch(dateArg); m != nil {
		var n int
		if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
			return time.Time{}, fmt.Errorf("invalid date offset %q", arg)
		}
		if m[2] == "w" {
			n *= 7
		}
		return now.AddDate(0, 0, n), nil
	}

	parsed, err := ParseDayName(dateArg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD, today/yesterday/tomorrow, or an offset like 3d", arg)
	}
	return parsed, nil
}
