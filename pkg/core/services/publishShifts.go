package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

// PublishStore defines the database operations needed to publish drafts
type PublishStore interface {
	PublishShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]string, error)
	GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]model.Assignment, error)
}

// Notifier is the caller-supplied notification boundary. The core only
// reports which staff should be told their shifts changed; delivery is the
// surrounding application's responsibility.
type Notifier interface {
	NotifyShiftsPublished(ctx context.Context, orgID string, staffIDs []string) error
}

// PublishResult reports a publish batch: how many drafts were promoted and
// which staff the caller is obliged to notify
type PublishResult struct {
	Count    int
	ShiftIDs []string
	StaffIDs []string
}

// PublishShifts promotes every draft shift whose start time falls in
// [from, to) to published, in one transaction, and returns the affected
// count. Zero promotions is a valid result, and re-running the same range
// changes nothing, so the operation is idempotent.
//
// When a notifier is supplied it is told which staff were affected; a
// notifier failure is logged but does not undo the publish.
func PublishShifts(
	ctx context.Context,
	database PublishStore,
	notifier Notifier,
	logger *zap.Logger,
	orgID string,
	from, to time.Time,
) (*PublishResult, error) {
	logger.Debug("Publishing draft shifts",
		zap.String("organization_id", orgID),
		zap.Time("from", from),
		zap.Time("to", to))

	shiftIDs, err := database.PublishShiftsInRange(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to publish shifts: %w", err)
	}

	result := &PublishResult{
		Count:    len(shiftIDs),
		ShiftIDs: shiftIDs,
	}

	if len(shiftIDs) == 0 {
		logger.Info("No draft shifts to publish", zap.String("organization_id", orgID))
		return result, nil
	}

	assignments, err := database.GetAssignmentsForShifts(ctx, shiftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for published shifts: %w", err)
	}

	seen := make(map[string]bool)
	for _, a := range assignments {
		if !seen[a.StaffID] {
			seen[a.StaffID] = true
			result.StaffIDs = append(result.StaffIDs, a.StaffID)
		}
	}
	sort.Strings(result.StaffIDs)

	logger.Info("Published draft shifts",
		zap.String("organization_id", orgID),
		zap.Int("count", result.Count),
		zap.Int("staff_to_notify", len(result.StaffIDs)))

	if notifier != nil && len(result.StaffIDs) > 0 {
		if err := notifier.NotifyShiftsPublished(ctx, orgID, result.StaffIDs); err != nil {
			logger.Warn("Notification boundary reported an error",
				zap.String("organization_id", orgID),
				zap.Error(err))
		}
	}

	return result, nil
}
