// Package timeutil holds the timezone and duration arithmetic shared by the
// session builder and aggregator. Day bucketing is the one policy decision
// here: an instant belongs to the calendar day it falls on in the configured
// zone, not the UTC day.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// ISODate is the fixed-width calendar date layout used for session and day
// bucketing keys. Lexicographic order on these strings equals chronological
// order.
const ISODate = "2006-01-02"

// LoadLocation resolves an IANA timezone name, wrapping failures in a
// descriptive invalid-argument error. An empty name resolves to UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// DayOf returns the calendar day an instant falls on when observed in loc,
// formatted as YYYY-MM-DD.
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(ISODate)
}

// MinutesBetween returns the absolute gap between two instants in minutes.
func MinutesBetween(a, b time.Time) float64 {
	return math.Abs(b.Sub(a).Minutes())
}

// Round2 rounds half away from zero at two decimal places. It is applied as
// the final step of every published metric; intermediate sums stay unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ConsecutiveDays reports whether two YYYY-MM-DD dates are exactly one
// calendar day apart.
func ConsecutiveDays(earlier, later string) bool {
	a, err := time.Parse(ISODate, earlier)
	if err != nil {
		return false
	}
	b, err := time.Parse(ISODate, later)
	if err != nil {
		return false
	}
	return a.AddDate(0, 0, 1).Equal(b)
}
