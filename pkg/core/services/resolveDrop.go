package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/internal/config"
	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/store"
)

// DropTargetKind identifies where a dragged staff member was dropped
type DropTargetKind string

const (
	TargetExistingShift DropTargetKind = "existing_shift"
	TargetDayColumn     DropTargetKind = "day_column"
	TargetOpenHeaderRow DropTargetKind = "open_header_row"
)

// DropTarget is the resolved drop destination. ShiftID is meaningful for
// existing-shift targets, Day for day-column and open-header targets.
type DropTarget struct {
	Kind    DropTargetKind
	ShiftID string
	Day     time.Time
}

// DropOutcome reports what a drop resolved to
type DropOutcome string

const (
	DropAssignedExisting DropOutcome = "assign_existing"
	DropCreatedAssigned  DropOutcome = "create_assigned"
	DropCreatedOpen      DropOutcome = "create_open"

	// DropAlreadyAssigned is informational: the staff member was already on
	// the target shift and nothing changed
	DropAlreadyAssigned DropOutcome = "already_assigned"
)

// ResolveDropStore defines the database operations needed to resolve a drop
type ResolveDropStore interface {
	CreateShiftStore
	CreateAssignment(ctx context.Context, assignment *model.Assignment) error
	GetShift(ctx context.Context, id string) (*model.Shift, error)
}

// DropResult reports the outcome of a drop and the date range whose cached
// shift data the caller must refresh
type DropResult struct {
	Outcome    DropOutcome
	Shift      *model.Shift
	Assignment *model.Assignment
	Refresh    DateRange
}

// ResolveDrop dispatches a staff drop against its target, in priority order:
// an existing shift gains an assignment, the open-header row creates an open
// shift (when the organization allows open shifts), and a plain day column
// creates a shift pre-assigned to the dropped staff member.
//
// Open-header drops against an organization with open shifts disabled are
// refused by the shift factory, even though the UI should never offer the
// target in that case.
func ResolveDrop(
	ctx context.Context,
	database ResolveDropStore,
	locations LocationDirectory,
	org *model.Organization,
	cfg *config.Config,
	logger *zap.Logger,
	target DropTarget,
	staff model.Staff,
) (*DropResult, error) {
	logger.Debug("Resolving drop",
		zap.String("target_kind", string(target.Kind)),
		zap.String("staff_id", staff.ID),
		zap.String("organization_id", org.ID))

	switch target.Kind {
	case TargetExistingShift:
		return assignExisting(ctx, database, logger, target.ShiftID, staff)

	case TargetOpenHeaderRow:
		result, err := CreateShift(ctx, database, locations, org, cfg, logger, ShiftIntent{
			Kind:           IntentOpenHeaderDrop,
			OrganizationID: org.ID,
			Day:            target.Day,
			Staff:          &staff,
		})
		if err != nil {
			return nil, err
		}

		return &DropResult{
			Outcome: DropCreatedOpen,
			Shift:   result.Shifts[0],
			Refresh: result.Refresh,
		}, nil

	case TargetDayColumn:
		result, err := CreateShift(ctx, database, locations, org, cfg, logger, ShiftIntent{
			Kind:           IntentDayDrop,
			OrganizationID: org.ID,
			Day:            target.Day,
			Staff:          &staff,
		})
		if err != nil {
			return nil, err
		}

		return &DropResult{
			Outcome:    DropCreatedAssigned,
			Shift:      result.Shifts[0],
			Assignment: result.Assignment,
			Refresh:    result.Refresh,
		}, nil

	default:
		return nil, fmt.Errorf("unknown drop target kind %q", target.Kind)
	}
}

// assignExisting inserts the dropped staff member onto an existing shift.
// A duplicate is reported as the informational DropAlreadyAssigned outcome,
// not an error.
func assignExisting(
	ctx context.Context,
	database ResolveDropStore,
	logger *zap.Logger,
	shiftID string,
	staff model.Staff,
) (*DropResult, error) {
	shift, err := database.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drop target shift: %w", err)
	}

	assignment := &model.Assignment{
		ID:      uuid.New().String(),
		ShiftID: shift.ID,
		StaffID: staff.ID,
		Status:  model.AssignmentConfirmed,
		Role:    staff.JobType,
	}

	err = database.CreateAssignment(ctx, assignment)
	switch {
	case errors.Is(err, store.ErrDuplicateAssignment):
		logger.Info("Staff member already assigned to shift",
			zap.String("shift_id", shift.ID),
			zap.String("staff_id", staff.ID))
		return &DropResult{
			Outcome: DropAlreadyAssigned,
			Shift:   shift,
			Refresh: dayRange(shift.StartTime),
		}, nil

	case err != nil:
		return nil, fmt.Errorf("failed to assign staff to shift: %w", err)
	}

	logger.Info("Assigned staff to existing shift",
		zap.String("shift_id", shift.ID),
		zap.String("staff_id", staff.ID),
		zap.String("role", staff.JobType))

	return &DropResult{
		Outcome:    DropAssignedExisting,
		Shift:      shift,
		Assignment: assignment,
		Refresh:    dayRange(shift.StartTime),
	}, nil
}
