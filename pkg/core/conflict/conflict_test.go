package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

func shiftAt(id string, startHour, startMin, endHour, endMin int) model.Shift {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return model.Shift{
		ID:        id,
		StartTime: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		EndTime:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func assignmentsFor(staffID string, shiftIDs ...string) []model.Assignment {
	var assignments []model.Assignment
	for _, id := range shiftIDs {
		assignments = append(assignments, model.Assignment{
			ID:      "asgn-" + staffID + "-" + id,
			ShiftID: id,
			StaffID: staffID,
			Status:  model.AssignmentConfirmed,
		})
	}
	return assignments
}

func TestDetect_OverlappingShiftsBothFlagged(t *testing.T) {
	shifts := []model.Shift{
		shiftAt("a", 9, 0, 11, 0),
		shiftAt("b", 10, 30, 12, 0),
	}

	conflicted := Detect(shifts, assignmentsFor("staff-1", "a", "b"))

	assert.True(t, conflicted["a"])
	assert.True(t, conflicted["b"])
}

func TestDetect_TouchingShiftsNotFlagged(t *testing.T) {
	shifts := []model.Shift{
		shiftAt("a", 9, 0, 11, 0),
		shiftAt("c", 11, 0, 12, 0), // starts exactly when a ends
	}

	conflicted := Detect(shifts, assignmentsFor("staff-1", "a", "c"))

	assert.Empty(t, conflicted)
}

func TestDetect_OverlapAcrossDifferentStaffIgnored(t *testing.T) {
	shifts := []model.Shift{
		shiftAt("a", 9, 0, 11, 0),
		shiftAt("b", 10, 0, 12, 0),
	}

	assignments := append(
		assignmentsFor("staff-1", "a"),
		assignmentsFor("staff-2", "b")...,
	)

	conflicted := Detect(shifts, assignments)

	assert.Empty(t, conflicted)
}

func TestDetect_LongShiftSpanningSeveralLaterOnes(t *testing.T) {
	shifts := []model.Shift{
		shiftAt("long", 9, 0, 17, 0),
		shiftAt("mid", 10, 0, 11, 0),
		shiftAt("late", 15, 0, 16, 0),
	}

	conflicted := Detect(shifts, assignmentsFor("staff-1", "long", "mid", "late"))

	assert.True(t, conflicted["long"])
	assert.True(t, conflicted["mid"])
	assert.True(t, conflicted["late"], "shift after a non-overlapping neighbour must still conflict with the spanning shift")
}

func TestDetect_AssignmentForUnknownShiftIgnored(t *testing.T) {
	shifts := []model.Shift{shiftAt("a", 9, 0, 11, 0)}

	conflicted := Detect(shifts, assignmentsFor("staff-1", "a", "missing"))

	assert.Empty(t, conflicted)
}

func TestAnnotate_PreservesOrderAndFlags(t *testing.T) {
	shifts := []model.Shift{
		shiftAt("a", 9, 0, 11, 0),
		shiftAt("b", 10, 30, 12, 0),
		shiftAt("c", 13, 0, 14, 0),
	}

	annotated := Annotate(shifts, assignmentsFor("staff-1", "a", "b", "c"))

	require.Len(t, annotated, 3)
	assert.Equal(t, "a", annotated[0].ID)
	assert.True(t, annotated[0].HasConflict)
	assert.True(t, annotated[1].HasConflict)
	assert.False(t, annotated[2].HasConflict)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     model.Shift
		expected bool
	}{
		{"partial overlap", shiftAt("a", 9, 0, 11, 0), shiftAt("b", 10, 30, 12, 0), true},
		{"contained", shiftAt("a", 9, 0, 17, 0), shiftAt("b", 10, 0, 11, 0), true},
		{"touching", shiftAt("a", 9, 0, 11, 0), shiftAt("b", 11, 0, 12, 0), false},
		{"disjoint", shiftAt("a", 9, 0, 10, 0), shiftAt("b", 12, 0, 13, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.expected, Overlaps(tt.b, tt.a))
		})
	}
}
