// Package memstore provides an in-memory ShiftStore implementation.
//
// It enforces the same conditional-write invariants as the Postgres store
// (unique (shift, staff) pair, capacity ceiling) under a single mutex, which
// makes it suitable for tests and for the CLI's local mode.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/store"
)

// Store is an in-memory implementation of store.ShiftStore
type Store struct {
	mu          sync.Mutex
	shifts      map[string]model.Shift
	assignments map[string]model.Assignment
	pairs       map[string]map[string]bool // shiftID -> staffID -> exists
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		shifts:      make(map[string]model.Shift),
		assignments: make(map[string]model.Assignment),
		pairs:       make(map[string]map[string]bool),
	}
}

// CreateShift persists a single shift record
func (s *Store) CreateShift(ctx context.Context, shift *model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shifts[shift.ID] = *shift
	return nil
}

// CreateShifts persists a batch of shifts atomically
func (s *Store) CreateShifts(ctx context.Context, shifts []*model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shift := range shifts {
		s.shifts[shift.ID] = *shift
	}
	return nil
}

// CreateShiftWithAssignment persists a shift and its initial assignment as
// one atomic unit
func (s *Store) CreateShiftWithAssignment(ctx context.Context, shift *model.Shift, assignment *model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shifts[shift.ID] = *shift
	s.assignments[assignment.ID] = *assignment
	s.recordPair(assignment.ShiftID, assignment.StaffID)
	return nil
}

// CreateAssignment conditionally inserts an assignment. The duplicate and
// capacity checks happen under the same lock as the insert, so competing
// claims against the last open slot are serialized.
func (s *Store) CreateAssignment(ctx context.Context, assignment *model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, ok := s.shifts[assignment.ShiftID]
	if !ok {
		return store.ErrShiftNotFound
	}

	if s.pairs[assignment.ShiftID][assignment.StaffID] {
		return store.ErrDuplicateAssignment
	}

	if s.countLocked(assignment.ShiftID) >= shift.Capacity {
		return store.ErrShiftFull
	}

	s.assignments[assignment.ID] = *assignment
	s.recordPair(assignment.ShiftID, assignment.StaffID)
	return nil
}

// GetShift retrieves a shift by ID
func (s *Store) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, ok := s.shifts[id]
	if !ok {
		return nil, store.ErrShiftNotFound
	}
	return &shift, nil
}

// GetShiftsInRange retrieves shifts for an organization whose start time
// falls in [from, to), ordered by start time
func (s *Store) GetShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shifts []model.Shift
	for _, shift := range s.shifts {
		if shift.OrganizationID != orgID {
			continue
		}
		if shift.StartTime.Before(from) || !shift.StartTime.Before(to) {
			continue
		}
		shifts = append(shifts, shift)
	}

	sort.Slice(shifts, func(i, j int) bool {
		return shifts[i].StartTime.Before(shifts[j].StartTime)
	})

	return shifts, nil
}

// GetAssignmentsForShifts retrieves all assignments referencing the given shifts
func (s *Store) GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(shiftIDs))
	for _, id := range shiftIDs {
		wanted[id] = true
	}

	var assignments []model.Assignment
	for _, a := range s.assignments {
		if wanted[a.ShiftID] {
			assignments = append(assignments, a)
		}
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].ID < assignments[j].ID
	})

	return assignments, nil
}

// CountAssignments returns the number of assignments on a shift
func (s *Store) CountAssignments(ctx context.Context, shiftID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.countLocked(shiftID), nil
}

// PublishShiftsInRange promotes every unpublished shift whose start time
// falls in [from, to) and returns the promoted shift IDs
func (s *Store) PublishShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var promoted []string
	for id, shift := range s.shifts {
		if shift.OrganizationID != orgID || shift.IsPublished {
			continue
		}
		if shift.StartTime.Before(from) || !shift.StartTime.Before(to) {
			continue
		}
		shift.IsPublished = true
		s.shifts[id] = shift
		promoted = append(promoted, id)
	}

	sort.Strings(promoted)
	return promoted, nil
}

func (s *Store) countLocked(shiftID string) int {
	return len(s.pairs[shiftID])
}

func (s *Store) recordPair(shiftID, staffID string) {
	if s.pairs[shiftID] == nil {
		s.pairs[shiftID] = make(map[string]bool)
	}
	s.pairs[shiftID][staffID] = true
}
