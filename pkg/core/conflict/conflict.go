// Package conflict computes overlapping-shift annotations for display.
//
// Detection is a pure function over a read snapshot: it never mutates store
// state, and callers must recompute it whenever the relevant shift set
// changes.
package conflict

import (
	"sort"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

// AnnotatedShift decorates a shift with its derived conflict flag
type AnnotatedShift struct {
	model.Shift
	HasConflict bool
}

// Detect returns the set of shift IDs that overlap another shift held by the
// same staff member. Intervals are half-open: a shift ending exactly when the
// next one starts is not a conflict.
//
// Assignments referencing shifts outside the given snapshot are ignored.
func Detect(shifts []model.Shift, assignments []model.Assignment) map[string]bool {
	shiftsByID := make(map[string]*model.Shift, len(shifts))
	for i := range shifts {
		shiftsByID[shifts[i].ID] = &shifts[i]
	}

	// Group each staff member's shifts via their assignments
	staffShifts := make(map[string][]*model.Shift)
	for _, a := range assignments {
		shift, ok := shiftsByID[a.ShiftID]
		if !ok {
			continue
		}
		staffShifts[a.StaffID] = append(staffShifts[a.StaffID], shift)
	}

	conflicted := make(map[string]bool)

	for _, memberShifts := range staffShifts {
		if len(memberShifts) < 2 {
			continue
		}

		sort.Slice(memberShifts, func(i, j int) bool {
			return memberShifts[i].StartTime.Before(memberShifts[j].StartTime)
		})

		// Sweep in start order, carrying the shift with the latest end seen
		// so far. A long shift that spans several later ones still flags
		// each of them.
		prev := memberShifts[0]
		for _, cur := range memberShifts[1:] {
			if cur.StartTime.Before(prev.EndTime) {
				conflicted[prev.ID] = true
				conflicted[cur.ID] = true
			}
			if cur.EndTime.After(prev.EndTime) {
				prev = cur
			}
		}
	}

	return conflicted
}

// Annotate returns the shifts decorated with their conflict flags, in the
// same order as the input
func Annotate(shifts []model.Shift, assignments []model.Assignment) []AnnotatedShift {
	conflicted := Detect(shifts, assignments)

	annotated := make([]AnnotatedShift, len(shifts))
	for i, s := range shifts {
		annotated[i] = AnnotatedShift{
			Shift:       s,
			HasConflict: conflicted[s.ID],
		}
	}
	return annotated
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect
func Overlaps(a, b model.Shift) bool {
	return a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
}
