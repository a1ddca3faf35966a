// Package period turns payload dates or labels into the header date line.
package period

import (
	"strings"
	"time"

	"top10animes.net/rank-web/internal/format"
)

// Placeholder is shown when no period can be derived.
const Placeholder = "Period undefined"

// Fallback selects what Format does when explicit dates are missing.
type Fallback string

const (
	FallbackLastWeek Fallback = "last_week"
	FallbackNone     Fallback = "none"
)

// ParseFallback validates a configured fallback name. Blank means last week.
func ParseFallback(s string) (Fallback, bool) {
	switch Fallback(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackLastWeek:
		return FallbackLastWeek, true
	case FallbackNone:
		return FallbackNone, true
	default:
		return "", false
	}
}

// Formatter derives the reporting period. The zero value computes last week
// from the wall clock in the local zone.
type Formatter struct {
	Now      func() time.Time
	Location *time.Location
	Fallback Fallback
}

// Format prefers the explicit range when both ends are present and otherwise
// applies the configured fallback.
func (f Formatter) Format(start, end *time.Time) string {
	if start != nil && end != nil {
		return join(start.UTC(), end.UTC())
	}
	if f.Fallback == FallbackNone {
		return format.Upper(Placeholder)
	}
	s, e := LastWeek(f.now(), f.location())
	return join(s, e)
}

// Label passes a pre-formatted label (a season name) through, upper-cased.
func (f Formatter) Label(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return format.Upper(Placeholder)
	}
	return format.Upper(label)
}

func (f Formatter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f Formatter) location() *time.Location {
	if f.Location != nil {
		return f.Location
	}
	return time.Local
}

// LastWeek returns the Sunday-to-Saturday week before the one containing now,
// evaluated in loc.
func LastWeek(now time.Time, loc *time.Location) (time.Time, time.Time) {
	n := now.In(loc)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	sunday := today.AddDate(0, 0, -int(today.Weekday()))
	start := sunday.AddDate(0, 0, -7)
	return start, start.AddDate(0, 0, 6)
}

func join(start, end time.Time) string {
	return format.Upper(format.DayMonthYear(start) + " - " + format.DayMonthYear(end))
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseDate reads an ISO date or timestamp. Blank or malformed input is
// reported as absent, never as an error.
func ParseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}
