package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/store"
)

const shiftColumns = `id, organization_id, location_id, start_time, end_time,
		title, job_type, capacity, is_published, is_open_for_claim, branch_label`

// CreateShift persists a single shift record
func (d *DB) CreateShift(ctx context.Context, shift *model.Shift) error {
	if err := d.insertShift(ctx, d.pool, shift); err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// CreateShifts persists a batch of shifts in one transaction
func (d *DB) CreateShifts(ctx context.Context, shifts []*model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, shift := range shifts {
		if err := d.insertShift(ctx, tx, shift); err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CreateShiftWithAssignment persists a shift and its initial assignment in
// one transaction, so neither is ever visible without the other
func (d *DB) CreateShiftWithAssignment(ctx context.Context, shift *model.Shift, assignment *model.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := d.insertShift(ctx, tx, shift); err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}

	if err := d.insertAssignment(ctx, tx, assignment); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetShift retrieves a shift by ID
func (d *DB) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shift WHERE id = $1`, id)

	shift, err := scanShift(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan shift: %w", err)
	}

	return shift, nil
}

// GetShiftsInRange retrieves shifts for an organization whose start time
// falls in [from, to), ordered by start time
func (d *DB) GetShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE organization_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// PublishShiftsInRange promotes every unpublished shift whose start time
// falls in [from, to) and returns the promoted shift IDs, in one transaction
func (d *DB) PublishShiftsInRange(ctx context.Context, orgID string, from, to time.Time) ([]string, error) {
	rows, err := d.pool.Query(ctx, `
		UPDATE shift
		SET is_published = TRUE
		WHERE organization_id = $1
		  AND start_time >= $2 AND start_time < $3
		  AND is_published = FALSE
		RETURNING id
	`, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to publish shifts: %w", err)
	}
	defer rows.Close()

	var promoted []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan published shift id: %w", err)
		}
		promoted = append(promoted, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating published shifts: %w", err)
	}

	return promoted, nil
}

// pgxExecer covers both the pool and a transaction
type pgxExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (d *DB) insertShift(ctx context.Context, e pgxExecer, shift *model.Shift) error {
	_, err := e.Exec(ctx, `
		INSERT INTO shift (id, organization_id, location_id, start_time, end_time,
			title, job_type, capacity, is_published, is_open_for_claim, branch_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, shift.ID, shift.OrganizationID, shift.LocationID, shift.StartTime, shift.EndTime,
		shift.Title, shift.JobType, shift.Capacity, shift.IsPublished, shift.IsOpenForClaim, shift.BranchLabel)
	return err
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var s model.Shift
	err := row.Scan(&s.ID, &s.OrganizationID, &s.LocationID, &s.StartTime, &s.EndTime,
		&s.Title, &s.JobType, &s.Capacity, &s.IsPublished, &s.IsOpenForClaim, &s.BranchLabel)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
