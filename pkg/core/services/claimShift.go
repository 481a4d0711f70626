package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/store"
)

// ClaimOutcome reports what a claim attempt resolved to
type ClaimOutcome string

const (
	// ClaimAccepted means the staff member took one unit of the shift's
	// remaining capacity
	ClaimAccepted ClaimOutcome = "claimed"

	// ClaimAlreadyClaimed is informational: the staff member had already
	// claimed this shift and nothing changed
	ClaimAlreadyClaimed ClaimOutcome = "already_claimed"

	// ClaimShiftFull means the claim lost the capacity race; the caller
	// should refresh and may try a different open shift
	ClaimShiftFull ClaimOutcome = "shift_full"
)

// ClaimStore defines the database operations needed to claim an open shift
type ClaimStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	CreateAssignment(ctx context.Context, assignment *model.Assignment) error
	CountAssignments(ctx context.Context, shiftID string) (int, error)
}

// ClaimResult reports a claim outcome together with the shift's current
// fill state, so the caller's view can be brought up to date
type ClaimResult struct {
	Outcome ClaimOutcome
	Shift   *model.Shift
	Filled  int
	State   model.FillState
	Refresh DateRange
}

// ClaimShift attempts to claim one unit of an open shift's capacity for a
// staff member. The capacity check and the insert are serialized by the
// store, so two simultaneous claims against the last slot cannot both
// succeed; losing that race is reported as ClaimShiftFull, not an error.
//
// Claiming is refused outright when the organization has open shifts
// disabled, regardless of the shift's own claimable flag.
func ClaimShift(
	ctx context.Context,
	database ClaimStore,
	org *model.Organization,
	logger *zap.Logger,
	shiftID, staffID string,
) (*ClaimResult, error) {
	logger.Debug("Claiming shift", zap.String("shift_id", shiftID), zap.String("staff_id", staffID))

	if !org.EnableOpenShifts {
		logger.Warn("Rejected claim: open shifts disabled",
			zap.String("organization_id", org.ID),
			zap.String("shift_id", shiftID),
			zap.String("staff_id", staffID))
		return nil, ErrOpenShiftsDisabled
	}

	shift, err := database.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}

	if !shift.IsOpenForClaim {
		return nil, fmt.Errorf("%w: %s", ErrShiftNotClaimable, shiftID)
	}

	assignment := &model.Assignment{
		ID:      uuid.New().String(),
		ShiftID: shift.ID,
		StaffID: staffID,
		Status:  model.AssignmentConfirmed,
		Role:    shift.JobType,
	}

	outcome := ClaimAccepted
	err = database.CreateAssignment(ctx, assignment)
	switch {
	case errors.Is(err, store.ErrDuplicateAssignment):
		outcome = ClaimAlreadyClaimed
		logger.Info("Shift already claimed by staff member",
			zap.String("shift_id", shift.ID),
			zap.String("staff_id", staffID))

	case errors.Is(err, store.ErrShiftFull):
		outcome = ClaimShiftFull
		logger.Info("Claim lost the capacity race",
			zap.String("shift_id", shift.ID),
			zap.String("staff_id", staffID),
			zap.Int("capacity", shift.Capacity))

	case err != nil:
		return nil, fmt.Errorf("failed to claim shift: %w", err)

	default:
		logger.Info("Shift claimed",
			zap.String("shift_id", shift.ID),
			zap.String("staff_id", staffID))
	}

	filled, err := database.CountAssignments(ctx, shift.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}

	return &ClaimResult{
		Outcome: outcome,
		Shift:   shift,
		Filled:  filled,
		State:   model.FillStateFor(shift.Capacity, filled),
		Refresh: dayRange(shift.StartTime),
	}, nil
}
