package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/internal/config"
	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/store"
)

// mockDropStore backs ResolveDrop tests
type mockDropStore struct {
	mockCreateStore
	existing      map[string]*model.Shift
	created       []*model.Assignment
	assignmentErr error
}

func (m *mockDropStore) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	shift, ok := m.existing[id]
	if !ok {
		return nil, store.ErrShiftNotFound
	}
	return shift, nil
}

func (m *mockDropStore) CreateAssignment(ctx context.Context, assignment *model.Assignment) error {
	if m.assignmentErr != nil {
		return m.assignmentErr
	}
	m.created = append(m.created, assignment)
	return nil
}

func openOrg() *model.Organization {
	return &model.Organization{ID: "org-1", Name: "Riverside Academy", EnableOpenShifts: true}
}

func closedOrg() *model.Organization {
	return &model.Organization{ID: "org-1", Name: "Riverside Academy", EnableOpenShifts: false}
}

func existingShift() *model.Shift {
	return &model.Shift{
		ID:             "shift-1",
		OrganizationID: "org-1",
		LocationID:     "loc-1",
		StartTime:      testDay.Add(9 * time.Hour),
		EndTime:        testDay.Add(13 * time.Hour),
		Title:          "Open Shift",
		JobType:        "Coach",
		Capacity:       2,
		IsOpenForClaim: true,
		BranchLabel:    "Main Gym",
	}
}

func TestResolveDrop_ExistingShift(t *testing.T) {
	mock := &mockDropStore{existing: map[string]*model.Shift{"shift-1": existingShift()}}
	locations := staticLocations{locations: []model.Location{mainGym}}

	result, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetExistingShift, ShiftID: "shift-1"},
		*testCoach(),
	)
	require.NoError(t, err)

	assert.Equal(t, DropAssignedExisting, result.Outcome)
	require.NotNil(t, result.Assignment)
	assert.Equal(t, "shift-1", result.Assignment.ShiftID)
	assert.Equal(t, "staff-1", result.Assignment.StaffID)
	assert.Equal(t, model.AssignmentConfirmed, result.Assignment.Status)
	assert.Equal(t, "Coach", result.Assignment.Role)
	assert.True(t, result.Refresh.Contains(result.Shift.StartTime))
}

func TestResolveDrop_DuplicateIsInformational(t *testing.T) {
	mock := &mockDropStore{
		existing:      map[string]*model.Shift{"shift-1": existingShift()},
		assignmentErr: store.ErrDuplicateAssignment,
	}
	locations := staticLocations{locations: []model.Location{mainGym}}

	result, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetExistingShift, ShiftID: "shift-1"},
		*testCoach(),
	)
	require.NoError(t, err, "a duplicate assignment is not a failure")

	assert.Equal(t, DropAlreadyAssigned, result.Outcome)
	assert.Nil(t, result.Assignment)
}

func TestResolveDrop_ExistingShiftFullSurfacesShiftFull(t *testing.T) {
	mock := &mockDropStore{
		existing:      map[string]*model.Shift{"shift-1": existingShift()},
		assignmentErr: store.ErrShiftFull,
	}
	locations := staticLocations{locations: []model.Location{mainGym}}

	_, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetExistingShift, ShiftID: "shift-1"},
		*testCoach(),
	)
	assert.ErrorIs(t, err, store.ErrShiftFull)
}

func TestResolveDrop_UnknownShift(t *testing.T) {
	mock := &mockDropStore{existing: map[string]*model.Shift{}}
	locations := staticLocations{locations: []model.Location{mainGym}}

	_, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetExistingShift, ShiftID: "missing"},
		*testCoach(),
	)
	assert.ErrorIs(t, err, store.ErrShiftNotFound)
}

func TestResolveDrop_DayColumnCreatesAssignedShift(t *testing.T) {
	mock := &mockDropStore{}
	locations := staticLocations{locations: []model.Location{mainGym}}

	result, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetDayColumn, Day: testDay},
		*testCoach(),
	)
	require.NoError(t, err)

	assert.Equal(t, DropCreatedAssigned, result.Outcome)
	require.NotNil(t, result.Shift)
	assert.False(t, result.Shift.IsOpenForClaim)
	assert.Equal(t, "Maya Patel's Shift", result.Shift.Title)
	require.NotNil(t, result.Assignment)
	assert.Equal(t, 1, mock.pairCalls)
}

func TestResolveDrop_OpenHeaderCreatesOpenShift(t *testing.T) {
	mock := &mockDropStore{}
	locations := staticLocations{locations: []model.Location{mainGym}}

	result, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetOpenHeaderRow, Day: testDay},
		*testCoach(),
	)
	require.NoError(t, err)

	assert.Equal(t, DropCreatedOpen, result.Outcome)
	assert.True(t, result.Shift.IsOpenForClaim)
	assert.Equal(t, "Open Shift", result.Shift.Title)
	assert.Nil(t, result.Assignment, "open-header drops never auto-assign")
}

func TestResolveDrop_OpenHeaderRefusedWhenDisabled(t *testing.T) {
	mock := &mockDropStore{}
	locations := staticLocations{locations: []model.Location{mainGym}}

	// Even if the UI incorrectly offered the target, the drop is refused
	_, err := ResolveDrop(context.Background(), mock, locations, closedOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetOpenHeaderRow, Day: testDay},
		*testCoach(),
	)
	assert.ErrorIs(t, err, ErrOpenShiftsDisabled)
	assert.Empty(t, mock.shifts)
}

func TestResolveDrop_NoLocationsDistinguishable(t *testing.T) {
	mock := &mockDropStore{}
	locations := staticLocations{}

	_, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: TargetDayColumn, Day: testDay},
		*testCoach(),
	)
	assert.ErrorIs(t, err, ErrNoLocationsAvailable)
}

func TestResolveDrop_UnknownTargetKind(t *testing.T) {
	mock := &mockDropStore{}
	locations := staticLocations{locations: []model.Location{mainGym}}

	_, err := ResolveDrop(context.Background(), mock, locations, openOrg(), config.Default(), zap.NewNop(),
		DropTarget{Kind: "session|123"},
		*testCoach(),
	)
	assert.Error(t, err)
}
