// Package timegrid holds the pure time and geometry math for the week grid:
// clock/date conversions, the time-to-row mapping, and block layout.
// Nothing here performs I/O or returns errors; malformed input degrades to
// sentinel values that callers must guard.
package timegrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay is the number of minutes in a calendar day.
	MinutesPerDay = 24 * 60

	// NoClockTime is returned by ClockTimeToMinutes for absent or
	// malformed input.
	NoClockTime = -1
)

// ToISODate formats the calendar date as YYYY-MM-DD using local wall-clock
// date fields. No UTC conversion happens here: shifting through UTC can
// move the date across midnight for non-UTC locales.
func ToISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfWeek returns local midnight of the first day of the week containing
// t. weekStartsOn is expected to be time.Sunday or time.Monday.
func StartOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	back := (int(day.Weekday()) - int(weekStartsOn) + 7) % 7
	return day.AddDate(0, 0, -back)
}

// ClockTimeToMinutes parses "HH:MM" (a trailing ":SS" is tolerated and
// ignored) into minutes since midnight. Returns NoClockTime on empty or
// malformed input rather than an error.
func ClockTimeToMinutes(s string) int {
	if s == "" {
		return NoClockTime
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return NoClockTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return NoClockTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return NoClockTime
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return NoClockTime
	}
	return h*60 + m
}

// MinutesToClockTime formats minutes since midnight as zero-padded "HH:MM".
func MinutesToClockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesToHours converts minutes to fractional hours rounded to two
// decimal places.
func MinutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// SnapFloor rounds minutes down to the nearest multiple of snap.
func SnapFloor(minutes, snap int) int {
	if snap <= 1 {
		return minutes
	}
	return (minutes / snap) * snap
}

// SnapCeil rounds minutes up to the nearest multiple of snap.
func SnapCeil(minutes, snap int) int {
	if snap <= 1 {
		return minutes
	}
	return ((minutes + snap - 1) / snap) * snap
}

// SnapNearest rounds minutes to the closest multiple of snap, halves up.
func SnapNearest(minutes, snap int) int {
	if snap <= 1 {
		return minutes
	}
	return ((minutes + snap/2) / snap) * snap
}
