// Package services implements the scheduling core's operations: shift
// creation, drop resolution, open-shift claims, batch publishing, and
// schedule reads.
//
// Each operation is a short-lived unit of work scoped to one organization.
// Services never cache write-authoritative state; the shift store is the
// sole source of truth, and every mutating result carries the date range
// the caller must refetch.
package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoLocationsAvailable is returned when shift creation cannot
	// resolve any location for the organization. Nothing is persisted.
	ErrNoLocationsAvailable = errors.New("no locations available for this organization")

	// ErrZeroDurationShift is returned when a shift's start and end clock
	// times are identical. Zero-duration windows are rejected rather than
	// wrapped to the next day.
	ErrZeroDurationShift = errors.New("shift start and end times are identical")

	// ErrOpenShiftsDisabled is returned when an open-shift action reaches
	// the coordinator for an organization that has open shifts turned off.
	// The UI should never offer the target, but the refusal is enforced
	// here as well.
	ErrOpenShiftsDisabled = errors.New("open shifts are not enabled for this organization")

	// ErrShiftNotClaimable is returned when a claim targets a shift that
	// was not created open-for-claim
	ErrShiftNotClaimable = errors.New("shift is not open for claims")
)

// DateRange is a half-open [From, To) window. Mutating operations return the
// range whose cached shift data the caller must refresh.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// NormalizeWindow builds the shift interval for a target day from local
// clock strings. If the end clock is earlier than the start clock the shift
// is treated as spanning midnight and the end lands on the following day,
// so "22:00" to "02:00" yields [day 22:00, day+1 02:00).
func NormalizeWindow(day time.Time, startClock, endClock string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := clockOnDay(day, startClock, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q: %w", startClock, err)
	}

	end, err := clockOnDay(day, endClock, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q: %w", endClock, err)
	}

	if end.Equal(start) {
		return time.Time{}, time.Time{}, ErrZeroDurationShift
	}

	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	return start, end, nil
}

// clockOnDay places an "HH:MM" clock string on the given day in loc
func clockOnDay(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// dayRange returns the [midnight, next midnight) window containing t, in
// t's own location
func dayRange(t time.Time) DateRange {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return DateRange{From: from, To: from.AddDate(0, 0, 1)}
}

// spanRange returns the day-aligned window covering [first, last]
func spanRange(first, last time.Time) DateRange {
	return DateRange{From: dayRange(first).From, To: dayRange(last).To}
}
