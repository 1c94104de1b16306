package service

import "errors"

var (
	// ErrNotLinked means the entry's project has no budget link to its
	// company, so no hours may be logged against the pair.
	ErrNotLinked = errors.New("project is not linked to company")

	// ErrOverlap means the employee already has a timed entry intersecting
	// the candidate interval on the same day.
	ErrOverlap = errors.New("time entry overlaps an existing entry")

	// ErrHoursOutOfRange means the entry's duration is not in [0, 24].
	ErrHoursOutOfRange = errors.New("hours must be between 0 and 24")

	// ErrHoursMismatch means the caller supplied an hours figure that
	// disagrees with the duration of the entry's start/end times.
	ErrHoursMismatch = errors.New("hours do not match the start/end duration")

	// ErrInvalidTimes means the entry carries clock times that do not form
	// a positive interval.
	ErrInvalidTimes = errors.New("end time must be after start time")
)
