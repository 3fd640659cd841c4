// Package timeutil holds the date parsing and day arithmetic shared by the
// domain services and transports.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidDate wraps every date parsing failure.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the calendar-date layout used on the wire.
const DateLayout = "2006-01-02"

var layouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate accepts a calendar date or a timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, lastErr)
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DaysSince returns the whole days elapsed from start to now, rounded down.
// It is negative when start lies in the future.
func DaysSince(start, now time.Time) float64 {
	return math.Floor(now.Sub(start).Hours() / 24)
}

// DaysUntil returns the days left from now to end, rounded up so that a
// partially remaining day still counts.
func DaysUntil(end, now time.Time) float64 {
	return math.Ceil(end.Sub(now).Hours() / 24)
}

// Today truncates t to midnight UTC.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
