package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/pkg/core/conflict"
	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

// ScheduleStore defines the database operations needed to read a schedule
type ScheduleStore interface {
	GetShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]model.Shift, error)
	GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]model.Assignment, error)
}

// Schedule is a read-only snapshot for display: shifts annotated with their
// conflict flags, their assignments, and per-shift fill counts. It is stale
// the moment any mutating operation succeeds and must then be refetched.
type Schedule struct {
	Shifts      []conflict.AnnotatedShift
	Assignments []model.Assignment
	Filled      map[string]int // shift ID -> assignment count
}

// ViewSchedule fetches an organization's shifts in [from, to) and annotates
// them with conflicts recomputed from the current assignment set
func ViewSchedule(
	ctx context.Context,
	database ScheduleStore,
	logger *zap.Logger,
	orgID string,
	from, to time.Time,
) (*Schedule, error) {
	logger.Debug("Fetching schedule",
		zap.String("organization_id", orgID),
		zap.Time("from", from),
		zap.Time("to", to))

	shifts, err := database.GetShiftsInRange(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	shiftIDs := make([]string, len(shifts))
	for i, s := range shifts {
		shiftIDs[i] = s.ID
	}

	assignments, err := database.GetAssignmentsForShifts(ctx, shiftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	filled := make(map[string]int, len(shifts))
	for _, a := range assignments {
		filled[a.ShiftID]++
	}

	logger.Debug("Schedule fetched",
		zap.Int("shifts", len(shifts)),
		zap.Int("assignments", len(assignments)))

	return &Schedule{
		Shifts:      conflict.Annotate(shifts, assignments),
		Assignments: assignments,
		Filled:      filled,
	}, nil
}
