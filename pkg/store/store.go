package store

import (
	"context"
	"errors"
	"time"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

var (
	// ErrDuplicateAssignment is returned when an assignment already exists
	// for the same (shift, staff) pair. Callers surface this as an
	// informational "already assigned/claimed" outcome, not a failure.
	ErrDuplicateAssignment = errors.New("assignment already exists for this shift and staff member")

	// ErrShiftFull is returned when inserting an assignment would exceed
	// the shift's capacity. This is the store-enforced end of the capacity
	// invariant and is an expected, recoverable outcome under races.
	ErrShiftFull = errors.New("shift has no remaining capacity")

	// ErrShiftNotFound is returned when the referenced shift does not exist
	ErrShiftNotFound = errors.New("shift not found")
)

// ShiftStore defines the persistence contract for shifts and assignments.
//
// Implementations must serialize competing assignment inserts against the
// same shift: the capacity check and the insert happen as one atomic unit,
// so two simultaneous claims on the last open slot can never both succeed.
type ShiftStore interface {
	// CreateShift persists a single shift record
	CreateShift(ctx context.Context, shift *model.Shift) error

	// CreateShifts persists a batch of shifts atomically; either all are
	// created or none are
	CreateShifts(ctx context.Context, shifts []*model.Shift) error

	// CreateShiftWithAssignment persists a shift and its initial assignment
	// as one atomic unit. The shift must never be visible without the
	// assignment, or vice versa.
	CreateShiftWithAssignment(ctx context.Context, shift *model.Shift, assignment *model.Assignment) error

	// CreateAssignment conditionally inserts an assignment. It returns
	// ErrDuplicateAssignment if the (shift, staff) pair already exists,
	// ErrShiftFull if the shift's capacity is exhausted, and
	// ErrShiftNotFound if the shift does not exist.
	CreateAssignment(ctx context.Context, assignment *model.Assignment) error

	// GetShift retrieves a shift by ID, returning ErrShiftNotFound if absent
	GetShift(ctx context.Context, id string) (*model.Shift, error)

	// GetShiftsInRange retrieves all shifts for an organization whose start
	// time falls in [from, to)
	GetShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]model.Shift, error)

	// GetAssignmentsForShifts retrieves all assignments referencing any of
	// the given shift IDs
	GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]model.Assignment, error)

	// CountAssignments returns the number of assignments on a shift
	CountAssignments(ctx context.Context, shiftID string) (int, error)

	// PublishShiftsInRange promotes every unpublished shift whose start time
	// falls in [from, to) for the organization, in one transaction, and
	// returns the IDs of the shifts it promoted. An empty result is valid.
	PublishShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]string, error)
}
