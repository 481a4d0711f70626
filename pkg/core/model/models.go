package model

import "time"

// AssignmentStatus tracks whether a staff member has confirmed a shift
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentConfirmed AssignmentStatus = "confirmed"
)

func (s AssignmentStatus) IsValid() bool {
	return s == AssignmentPending || s == AssignmentConfirmed
}

// Staff represents a member of the academy's staff directory.
// Staff records are owned by the directory provider and treated as read-only.
type Staff struct {
	ID             string
	DisplayName    string
	JobType        string // free-form role, e.g. "Coach"
	BranchAffinity string // preferred branch ID, empty if none
}

// Location represents a branch/venue where shifts take place
type Location struct {
	ID   string
	Name string
}

// Organization represents the academy/tenant a scheduling operation is scoped to
type Organization struct {
	ID               string
	Name             string
	EnableOpenShifts bool
}

// Shift represents a time-bounded work session at a location.
// Shifts start life as drafts and are promoted to published in batches;
// they are never reverted or hard-deleted by the scheduling core.
type Shift struct {
	ID             string
	OrganizationID string
	LocationID     string
	StartTime      time.Time
	EndTime        time.Time
	Title          string
	JobType        string // role needed to fill the shift, "Any" for unrestricted open shifts
	Capacity       int    // number of staff that may be assigned, >= 1
	IsPublished    bool
	IsOpenForClaim bool
	BranchLabel    string // location name snapshot taken at creation time
}

// Assignment links one staff member to one shift.
// At most one assignment may exist per (shift, staff) pair.
type Assignment struct {
	ID      string
	ShiftID string
	StaffID string
	Status  AssignmentStatus
	Role    string // role being filled, may differ from the shift's JobType
}

// FillState describes how much of an open shift's capacity has been claimed
type FillState string

const (
	FillOpen            FillState = "open"
	FillPartiallyFilled FillState = "partially_filled"
	FillFull            FillState = "full"
)

// FillStateFor derives the fill state from a shift's capacity and its
// current confirmed assignment count
func FillStateFor(capacity, filled int) FillState {
	switch {
	case filled >= capacity:
		return FillFull
	case filled > 0:
		return FillPartiallyFilled
	default:
		return FillOpen
	}
}
