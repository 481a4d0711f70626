package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/store"
)

const uniqueViolationCode = "23505"

// CreateAssignment conditionally inserts an assignment. The parent shift row
// is locked for the duration of the transaction, so the capacity check and
// the insert form one atomic unit; competing claims against the last open
// slot are serialized here rather than in application memory.
func (d *DB) CreateAssignment(ctx context.Context, assignment *model.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM shift WHERE id = $1 FOR UPDATE`,
		assignment.ShiftID,
	).Scan(&capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrShiftNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock shift row: %w", err)
	}

	var filled int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignment WHERE shift_id = $1`,
		assignment.ShiftID,
	).Scan(&filled)
	if err != nil {
		return fmt.Errorf("failed to count assignments: %w", err)
	}

	if filled >= capacity {
		return store.ErrShiftFull
	}

	if err := d.insertAssignment(ctx, tx, assignment); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAssignmentsForShifts retrieves all assignments referencing the given shifts
func (d *DB) GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]model.Assignment, error) {
	if len(shiftIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_id, staff_id, status, role
		FROM assignment
		WHERE shift_id = ANY($1)
		ORDER BY id
	`, shiftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.ShiftID, &a.StaffID, &a.Status, &a.Role); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// CountAssignments returns the number of assignments on a shift
func (d *DB) CountAssignments(ctx context.Context, shiftID string) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignment WHERE shift_id = $1`,
		shiftID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}

// insertAssignment inserts one assignment row, mapping the (shift, staff)
// uniqueness violation to the store's typed error
func (d *DB) insertAssignment(ctx context.Context, e pgxExecer, assignment *model.Assignment) error {
	_, err := e.Exec(ctx, `
		INSERT INTO assignment (id, shift_id, staff_id, status, role)
		VALUES ($1, $2, $3, $4, $5)
	`, assignment.ID, assignment.ShiftID, assignment.StaffID, string(assignment.Status), assignment.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return store.ErrDuplicateAssignment
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}
