package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type breakRepositoryImpl struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) breaks.BreakRepository {
	return &breakRepositoryImpl{db: db}
}

const breakColumns = `
	id, employee_id, work_period_id, absence_type_id, start_time, end_time,
	start_latitude, start_longitude, end_latitude, end_longitude,
	duration_minutes, created_at, updated_at`

func scanBreak(row pgx.Row) (breaks.Break, error) {
	var b breaks.Break
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.WorkPeriodID, &b.AbsenceTypeID, &b.StartTime, &b.EndTime,
		&b.StartLatitude, &b.StartLongitude, &b.EndLatitude, &b.EndLongitude,
		&b.DurationMinutes, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Create implements breaks.BreakRepository.
func (r *breakRepositoryImpl) Create(ctx context.Context, b breaks.Break) (breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO breaks (
			employee_id, work_period_id, absence_type_id, start_time, start_latitude, start_longitude
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.EmployeeID,
		b.WorkPeriodID,
		b.AbsenceTypeID,
		b.StartTime,
		b.StartLatitude,
		b.StartLongitude,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if constraintViolation(err, uniqueViolation, "ux_breaks_open") {
			return breaks.Break{}, breaks.ErrBreakAlreadyActive
		}
		return breaks.Break{}, fmt.Errorf("failed to create break: %w", err)
	}

	return b, nil
}

// Close implements breaks.BreakRepository.
func (r *breakRepositoryImpl) Close(ctx context.Context, b breaks.Break) (breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE breaks
		SET end_time = $2, end_latitude = $3, end_longitude = $4, duration_minutes = $5, updated_at = NOW()
		WHERE id = $1 AND end_time IS NULL
		RETURNING ` + breakColumns

	closed, err := scanBreak(q.QueryRow(ctx, query, b.ID, b.EndTime, b.EndLatitude, b.EndLongitude, b.DurationMinutes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return breaks.Break{}, breaks.ErrNoActiveBreak
		}
		return breaks.Break{}, fmt.Errorf("failed to close break: %w", err)
	}

	return closed, nil
}

// FindOpenFor implements breaks.BreakRepository.
func (r *breakRepositoryImpl) FindOpenFor(ctx context.Context, employeeID string) (*breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + breakColumns + ` FROM breaks WHERE employee_id = $1 AND end_time IS NULL`

	b, err := scanBreak(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open break: %w", err)
	}

	return &b, nil
}

// ListStartedBetween implements breaks.BreakRepository.
func (r *breakRepositoryImpl) ListStartedBetween(ctx context.Context, employeeID string, from, to time.Time) ([]breaks.Break, error) {
	query := `
		SELECT ` + breakColumns + `
		FROM breaks
		WHERE employee_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`
	return r.list(ctx, query, employeeID, from, to)
}

// ListByWorkPeriod implements breaks.BreakRepository.
func (r *breakRepositoryImpl) ListByWorkPeriod(ctx context.Context, workPeriodID string) ([]breaks.Break, error) {
	query := `SELECT ` + breakColumns + ` FROM breaks WHERE work_period_id = $1 ORDER BY start_time`
	return r.list(ctx, query, workPeriodID)
}

func (r *breakRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var list []breaks.Break
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating breaks: %w", err)
	}

	return list, nil
}
