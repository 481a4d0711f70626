package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/internal/config"
	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

// IntentKind identifies how a shift creation was initiated
type IntentKind string

const (
	// IntentDayDrop is a staff member dropped onto a plain day column:
	// the shift is created pre-assigned to them
	IntentDayDrop IntentKind = "day_drop"

	// IntentOpenHeaderDrop is a staff member dropped onto the open-shift
	// header row: an open shift is created and the staff member only seeds
	// the role hint, without being assigned
	IntentOpenHeaderDrop IntentKind = "open_header_drop"

	// IntentQuickCreate is the quick-create form: one or more open shifts
	// with an explicit window and capacity
	IntentQuickCreate IntentKind = "quick_create"
)

// ShiftIntent describes a shift creation request
type ShiftIntent struct {
	Kind           IntentKind
	OrganizationID string
	Day            time.Time
	Staff          *model.Staff // dragged staff member; nil for quick-create
	StartClock     string       // "HH:MM"; empty uses the configured default
	EndClock       string       // "HH:MM"; empty uses the configured default
	LocationID     string       // explicit venue; empty falls back
	BranchFilter   string       // currently selected branch filter, used as a fallback venue
	Quantity       int          // quick-create capacity
	Repeat         string       // optional RRULE for recurring quick-creates
	RepeatUntil    time.Time    // last day the repeat rule may produce, required with Repeat
}

// CreateShiftStore defines the database operations needed to create shifts
type CreateShiftStore interface {
	CreateShift(ctx context.Context, shift *model.Shift) error
	CreateShifts(ctx context.Context, shifts []*model.Shift) error
	CreateShiftWithAssignment(ctx context.Context, shift *model.Shift, assignment *model.Assignment) error
}

// LocationDirectory supplies the locations available to an organization
type LocationDirectory interface {
	ListLocations(orgID string) ([]model.Location, error)
}

// CreateShiftResult reports the records a creation intent produced
type CreateShiftResult struct {
	Shifts     []*model.Shift
	Assignment *model.Assignment // set for day drops only
	Refresh    DateRange
}

// quickCreateFields is the validated subset of a quick-create intent
type quickCreateFields struct {
	StartClock string `validate:"required"`
	EndClock   string `validate:"required"`
	Quantity   int    `validate:"required,min=1"`
}

var validateIntent = validator.New()

// CreateShift turns a creation intent into persisted shift records with
// resolved defaults. Shifts always start as drafts; a day drop also creates
// the dropping staff member's assignment in the same atomic unit.
//
// Open-header drops and quick-creates produce claimable shifts, so both are
// refused with ErrOpenShiftsDisabled when the organization has open shifts
// turned off.
func CreateShift(
	ctx context.Context,
	database CreateShiftStore,
	locations LocationDirectory,
	org *model.Organization,
	cfg *config.Config,
	logger *zap.Logger,
	intent ShiftIntent,
) (*CreateShiftResult, error) {
	logger.Debug("Creating shift",
		zap.String("kind", string(intent.Kind)),
		zap.String("organization_id", intent.OrganizationID),
		zap.Time("day", intent.Day))

	switch intent.Kind {
	case IntentOpenHeaderDrop, IntentQuickCreate:
		if !org.EnableOpenShifts {
			logger.Warn("Rejected open shift creation: open shifts disabled",
				zap.String("organization_id", org.ID),
				zap.String("kind", string(intent.Kind)))
			return nil, ErrOpenShiftsDisabled
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	venue, err := resolveLocation(intent, locations)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved venue", zap.String("location_id", venue.ID), zap.String("name", venue.Name))

	startClock := intent.StartClock
	if startClock == "" {
		startClock = cfg.DefaultShiftStart
	}
	endClock := intent.EndClock
	if endClock == "" {
		endClock = cfg.DefaultShiftEnd
	}

	start, end, err := NormalizeWindow(intent.Day, startClock, endClock, loc)
	if err != nil {
		return nil, err
	}

	switch intent.Kind {
	case IntentDayDrop:
		return createDayDrop(ctx, database, logger, intent, venue, start, end)
	case IntentOpenHeaderDrop:
		return createOpenHeaderDrop(ctx, database, logger, intent, venue, start, end)
	case IntentQuickCreate:
		return createQuickCreate(ctx, database, cfg, logger, intent, venue, start, end)
	default:
		return nil, fmt.Errorf("unknown shift intent kind %q", intent.Kind)
	}
}

func createDayDrop(
	ctx context.Context,
	database CreateShiftStore,
	logger *zap.Logger,
	intent ShiftIntent,
	venue *model.Location,
	start, end time.Time,
) (*CreateShiftResult, error) {
	if intent.Staff == nil {
		return nil, fmt.Errorf("day drop requires a staff member")
	}

	jobType := intent.Staff.JobType
	if jobType == "" {
		jobType = "Staff"
	}

	shift := &model.Shift{
		ID:             uuid.New().String(),
		OrganizationID: intent.OrganizationID,
		LocationID:     venue.ID,
		StartTime:      start,
		EndTime:        end,
		Title:          fmt.Sprintf("%s's Shift", intent.Staff.DisplayName),
		JobType:        jobType,
		Capacity:       1,
		IsOpenForClaim: false,
		BranchLabel:    venue.Name,
	}

	assignment := &model.Assignment{
		ID:      uuid.New().String(),
		ShiftID: shift.ID,
		StaffID: intent.Staff.ID,
		Status:  model.AssignmentConfirmed,
		Role:    jobType,
	}

	// The shift and its auto-assignment are one atomic unit; neither may
	// exist without the other.
	if err := database.CreateShiftWithAssignment(ctx, shift, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assigned shift: %w", err)
	}

	logger.Info("Created assigned shift",
		zap.String("shift_id", shift.ID),
		zap.String("staff_id", intent.Staff.ID),
		zap.Time("start", start))

	return &CreateShiftResult{
		Shifts:     []*model.Shift{shift},
		Assignment: assignment,
		Refresh:    spanRange(start, end),
	}, nil
}

func createOpenHeaderDrop(
	ctx context.Context,
	database CreateShiftStore,
	logger *zap.Logger,
	intent ShiftIntent,
	venue *model.Location,
	start, end time.Time,
) (*CreateShiftResult, error) {
	// The dropped staff member only seeds the role hint; they are not
	// assigned to the open shift.
	jobType := "Any"
	if intent.Staff != nil && intent.Staff.JobType != "" {
		jobType = intent.Staff.JobType
	}

	shift := &model.Shift{
		ID:             uuid.New().String(),
		OrganizationID: intent.OrganizationID,
		LocationID:     venue.ID,
		StartTime:      start,
		EndTime:        end,
		Title:          "Open Shift",
		JobType:        jobType,
		Capacity:       1,
		IsOpenForClaim: true,
		BranchLabel:    venue.Name,
	}

	if err := database.CreateShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create open shift: %w", err)
	}

	logger.Info("Created open shift from header drop",
		zap.String("shift_id", shift.ID),
		zap.String("job_type", jobType),
		zap.Time("start", start))

	return &CreateShiftResult{
		Shifts:  []*model.Shift{shift},
		Refresh: spanRange(start, end),
	}, nil
}

func createQuickCreate(
	ctx context.Context,
	database CreateShiftStore,
	cfg *config.Config,
	logger *zap.Logger,
	intent ShiftIntent,
	venue *model.Location,
	start, end time.Time,
) (*CreateShiftResult, error) {
	fields := quickCreateFields{
		StartClock: intent.StartClock,
		EndClock:   intent.EndClock,
		Quantity:   intent.Quantity,
	}
	if err := validateIntent.Struct(&fields); err != nil {
		return nil, fmt.Errorf("quick-create validation failed: %w", err)
	}

	starts := []time.Time{start}
	if intent.Repeat != "" {
		expanded, err := expandRepeat(intent, start)
		if err != nil {
			return nil, err
		}
		starts = expanded
	}

	duration := end.Sub(start)
	shifts := make([]*model.Shift, 0, len(starts))
	for _, occStart := range starts {
		shifts = append(shifts, &model.Shift{
			ID:             uuid.New().String(),
			OrganizationID: intent.OrganizationID,
			LocationID:     venue.ID,
			StartTime:      occStart,
			EndTime:        occStart.Add(duration),
			Title:          "Open Shift",
			JobType:        cfg.DefaultJobType,
			Capacity:       intent.Quantity,
			IsOpenForClaim: true,
			BranchLabel:    venue.Name,
		})
	}

	if err := database.CreateShifts(ctx, shifts); err != nil {
		return nil, fmt.Errorf("failed to create open shifts: %w", err)
	}

	last := shifts[len(shifts)-1]
	logger.Info("Quick-created open shifts",
		zap.Int("count", len(shifts)),
		zap.Int("capacity", intent.Quantity),
		zap.Time("first_start", shifts[0].StartTime),
		zap.Time("last_start", last.StartTime))

	return &CreateShiftResult{
		Shifts:  shifts,
		Refresh: spanRange(shifts[0].StartTime, last.EndTime),
	}, nil
}

// expandRepeat evaluates the intent's RRULE starting from the first
// occurrence and returns every occurrence start up to RepeatUntil
func expandRepeat(intent ShiftIntent, first time.Time) ([]time.Time, error) {
	if intent.RepeatUntil.IsZero() {
		return nil, fmt.Errorf("repeatUntil is required when a repeat rule is set")
	}

	rule, err := rrule.StrToRRule(intent.Repeat)
	if err != nil {
		return nil, fmt.Errorf("invalid repeat rule %q: %w", intent.Repeat, err)
	}

	rule.DTStart(first)
	rule.Until(intent.RepeatUntil)

	occurrences := rule.All()
	if len(occurrences) == 0 {
		return nil, fmt.Errorf("repeat rule %q produced no occurrences before %s",
			intent.Repeat, intent.RepeatUntil.Format("2006-01-02"))
	}

	return occurrences, nil
}

// resolveLocation picks the shift's venue: the intent's explicit location,
// else the selected branch filter, else the first location in the directory.
// Creation fails when the organization has no locations at all.
func resolveLocation(intent ShiftIntent, locations LocationDirectory) (*model.Location, error) {
	available, err := locations.ListLocations(intent.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	if len(available) == 0 {
		return nil, ErrNoLocationsAvailable
	}

	if intent.LocationID != "" {
		for i := range available {
			if available[i].ID == intent.LocationID {
				return &available[i], nil
			}
		}
		return nil, fmt.Errorf("location %s not found in directory", intent.LocationID)
	}

	if intent.BranchFilter != "" {
		for i := range available {
			if available[i].ID == intent.BranchFilter {
				return &available[i], nil
			}
		}
	}

	return &available[0], nil
}
