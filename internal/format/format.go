package format

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Score formats an episode score with two decimals.
// Example: Score(4.871) => "4.87"
func Score(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// DayMonthYear formats the calendar fields of t as DD/MM/YYYY.
// The caller picks the zone by converting t beforehand.
func DayMonthYear(t time.Time) string {
	return t.Format("02/01/2006")
}

// Upper upper-cases s for display. Casers are stateful, so one is built per call.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
