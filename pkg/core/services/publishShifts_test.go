package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

// mockPublishStore backs PublishShifts tests
type mockPublishStore struct {
	promoted    [][]string // consumed one batch per call
	assignments []model.Assignment
	publishErr  error
	calls       int
}

func (m *mockPublishStore) PublishShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]string, error) {
	if m.publishErr != nil {
		return nil, m.publishErr
	}
	if m.calls >= len(m.promoted) {
		return nil, nil
	}
	batch := m.promoted[m.calls]
	m.calls++
	return batch, nil
}

func (m *mockPublishStore) GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]model.Assignment, error) {
	return m.assignments, nil
}

// recordingNotifier captures notification obligations handed to the caller
type recordingNotifier struct {
	orgID    string
	staffIDs []string
	calls    int
	err      error
}

func (n *recordingNotifier) NotifyShiftsPublished(ctx context.Context, orgID string, staffIDs []string) error {
	n.calls++
	n.orgID = orgID
	n.staffIDs = staffIDs
	return n.err
}

func publishWindow() (time.Time, time.Time) {
	return testDay, testDay.AddDate(0, 0, 7)
}

func TestPublishShifts_ReportsCountAndStaff(t *testing.T) {
	mock := &mockPublishStore{
		promoted: [][]string{{"shift-1", "shift-2"}},
		assignments: []model.Assignment{
			{ID: "a1", ShiftID: "shift-1", StaffID: "staff-2"},
			{ID: "a2", ShiftID: "shift-2", StaffID: "staff-1"},
			{ID: "a3", ShiftID: "shift-2", StaffID: "staff-2"}, // duplicate staff member
		},
	}
	notifier := &recordingNotifier{}

	from, to := publishWindow()
	result, err := PublishShifts(context.Background(), mock, notifier, zap.NewNop(), "org-1", from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"shift-1", "shift-2"}, result.ShiftIDs)
	assert.Equal(t, []string{"staff-1", "staff-2"}, result.StaffIDs, "staff are deduplicated and sorted")

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "org-1", notifier.orgID)
	assert.Equal(t, []string{"staff-1", "staff-2"}, notifier.staffIDs)
}

func TestPublishShifts_SecondRunIsZero(t *testing.T) {
	mock := &mockPublishStore{promoted: [][]string{{"shift-1"}}}
	notifier := &recordingNotifier{}

	from, to := publishWindow()

	first, err := PublishShifts(context.Background(), mock, notifier, zap.NewNop(), "org-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	second, err := PublishShifts(context.Background(), mock, notifier, zap.NewNop(), "org-1", from, to)
	require.NoError(t, err, "zero promotions is a valid result, not an error")
	assert.Equal(t, 0, second.Count)
	assert.Empty(t, second.StaffIDs)
	assert.Equal(t, 1, notifier.calls, "nothing to notify on the second run")
}

func TestPublishShifts_NotifierErrorDoesNotFail(t *testing.T) {
	mock := &mockPublishStore{
		promoted:    [][]string{{"shift-1"}},
		assignments: []model.Assignment{{ID: "a1", ShiftID: "shift-1", StaffID: "staff-1"}},
	}
	notifier := &recordingNotifier{err: errors.New("smtp is down")}

	from, to := publishWindow()
	result, err := PublishShifts(context.Background(), mock, notifier, zap.NewNop(), "org-1", from, to)
	require.NoError(t, err, "the publish stands even if notification fails")
	assert.Equal(t, 1, result.Count)
}

func TestPublishShifts_NilNotifier(t *testing.T) {
	mock := &mockPublishStore{
		promoted:    [][]string{{"shift-1"}},
		assignments: []model.Assignment{{ID: "a1", ShiftID: "shift-1", StaffID: "staff-1"}},
	}

	from, to := publishWindow()
	result, err := PublishShifts(context.Background(), mock, nil, zap.NewNop(), "org-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, []string{"staff-1"}, result.StaffIDs)
}

func TestPublishShifts_StoreFailurePromotesNothing(t *testing.T) {
	mock := &mockPublishStore{publishErr: errors.New("connection reset")}
	notifier := &recordingNotifier{}

	from, to := publishWindow()
	result, err := PublishShifts(context.Background(), mock, notifier, zap.NewNop(), "org-1", from, to)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, notifier.calls)
}
