// Package timeparse validates and normalizes the date, time, and duration
// strings users type while filling in a meeting. All functions are pure and
// never panic on malformed input.
package timeparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Accepted date layouts, in priority order. Dates are re-emitted as DateLayout.
const DateLayout = "02.01.2006"

var dateLayouts = []string{DateLayout, "02-01-2006", "02/01/2006"}

var (
	timeWithMinutes = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	bareHour        = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3])$`)
)

// Duration bounds in hours: 15 minutes up to a full working day.
const (
	MinDurationHours = 0.25
	MaxDurationHours = 8.0
)

// ValidDate reports whether s is a real calendar date in one of the accepted
// layouts (DD.MM.YYYY, DD-MM-YYYY, DD/MM/YYYY).
func ValidDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// NormalizeDate re-emits a date in any accepted layout as DD.MM.YYYY.
// Unparseable input is returned unchanged; callers must validate first.
func NormalizeDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}

// ValidTime reports whether s is a clock time as H, HH, H:MM, or HH:MM.
// A bare hour is valid and implies ":00".
func ValidTime(s string) bool {
	if strings.Contains(s, ":") {
		return timeWithMinutes.MatchString(s)
	}
	return bareHour.MatchString(s)
}

// NormalizeTime pads a valid time to HH:MM. A bare hour gains ":00".
// Unparseable input is returned unchanged; callers must validate first.
func NormalizeTime(s string) string {
	if !ValidTime(s) {
		return s
	}
	if !strings.Contains(s, ":") {
		s += ":00"
	}
	if len(s) == 4 { // H:MM
		s = "0" + s
	}
	return s
}

// ValidDuration reports whether s parses as a float within the duration bounds.
func ValidDuration(s string) bool {
	_, err := ParseDuration(s)
	return err == nil
}

// ParseDuration parses a duration in fractional hours and checks bounds.
func ParseDuration(s string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if hours < MinDurationHours || hours > MaxDurationHours {
		return 0, fmt.Errorf("duration %v out of range [%v, %v]", hours, MinDurationHours, MaxDurationHours)
	}
	return hours, nil
}

// CombineDateTime resolves a normalized date (DD.MM.YYYY) and time (HH:MM or
// bare hour) into an instant in the given location.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	clock = NormalizeTime(clock)
	t, err := time.ParseInLocation(DateLayout+" 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// DurationFromHours converts fractional hours to a time.Duration with
// minute precision (0.25h is exactly 15 minutes). The minute count is
// rounded because not every fraction has an exact float product
// (4.1*60 is 245.999...).
func DurationFromHours(hours float64) time.Duration {
	return time.Duration(math.Round(hours*60)) * time.Minute
}
