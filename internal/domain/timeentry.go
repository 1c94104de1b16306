package domain

import (
	"math"
	"time"
)

// TimeEntry is a single logged block of work: an employee working for a
// company on a project (optionally against a service) on one calendar date.
// StartMin/EndMin are minutes since midnight; both nil means a duration-only
// entry that carries HoursWorked but no position on the day grid.
type TimeEntry struct {
	ID         string
	EmployeeID string
	CompanyID  string
	ProjectID  string
	ServiceID  *string

	Date        time.Time // calendar date, time-of-day fields zero
	StartMin    *int
	EndMin      *int
	HoursWorked float64

	Comment   string
	CreatedAt time.Time
}

// HasTimes reports whether both start and end clock times are present.
func (e *TimeEntry) HasTimes() bool {
	return e.StartMin != nil && e.EndMin != nil
}

// EffectiveEndMin returns the end time in minutes, deriving it from
// HoursWorked when no explicit end is stored. Returns -1 when the entry
// has no start time at all.
func (e *TimeEntry) EffectiveEndMin() int {
	if e.StartMin == nil {
		return -1
	}
	if e.EndMin != nil {
		return *e.EndMin
	}
	return *e.StartMin + int(math.Round(e.HoursWorked*60))
}

// RecomputeHours derives HoursWorked from the start/end pair, rounded to
// two decimal places. No-op for entries without both times.
func (e *TimeEntry) RecomputeHours() {
	if !e.HasTimes() {
		return
	}
	e.HoursWorked = math.Round(float64(*e.EndMin-*e.StartMin)/60*100) / 100
}

// SameDay reports whether the entry is dated on the given calendar date,
// comparing local wall-clock date fields only.
func (e *TimeEntry) SameDay(d time.Time) bool {
	y1, m1, d1 := e.Date.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
