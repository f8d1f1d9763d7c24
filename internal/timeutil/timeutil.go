// File: internal/timeutil/timeutil.go

// Package timeutil handles parsing of flexible date/time input, conversion
// to and from UTC ISO-8601 strings, and localization to the configured
// display timezone.
package timeutil

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is the display timezone used when none is configured.
const DefaultTimezone = "Europe/Kyiv"

// Location resolves a timezone name, falling back to UTC on failure.
func Location(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[TIME|TZ] Unknown timezone %q; falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// ToUTCISO renders a timestamp as a UTC ISO-8601 string with a 'Z' suffix.
func ToUTCISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z07:00")
}

// FromUTCISO parses a timezone-aware ISO-8601 string into a UTC timestamp.
// Naive (unzoned) input is rejected, not silently assumed to be UTC.
func FromUTCISO(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q as ISO-8601 datetime: %w", s, err)
	}
	return t.UTC(), nil
}

// naive layouts accepted by the flexible parser, tried in order.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04",
	"02.01.2006",
	"02/01/2006",
}

// ParseDateTime parses flexible user-supplied datetime input into a UTC
// timestamp. Zoned input is converted directly; naive input is localized to
// loc first. Returns an error only when no known layout matches.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime input")
	}
	if loc == nil {
		loc = Location(DefaultTimezone)
	}

	if t, err := FromUTCISO(s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime input %q", s)
}

// ParseDate parses a strict 'YYYY-MM-DD' date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q as date: %w", s, err)
	}
	return t, nil
}

// DayStart returns 00:00:00 UTC of the calendar day containing t.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns 23:59:59 UTC of the calendar day containing t, so that an
// inclusive range comparison covers the whole day.
func DayEnd(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

// FormatDateTime renders a UTC timestamp in the display timezone.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = Location(DefaultTimezone)
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

// FormatDate renders a date-only value for display.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
