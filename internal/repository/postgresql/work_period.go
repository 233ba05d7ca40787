package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workPeriodRepositoryImpl struct {
	db *database.DB
}

func NewWorkPeriodRepository(db *database.DB) attendance.WorkPeriodRepository {
	return &workPeriodRepositoryImpl{db: db}
}

const workPeriodColumns = `
	id, employee_id, clock_in, clock_out,
	clock_in_latitude, clock_in_longitude, clock_out_latitude, clock_out_longitude,
	work_hours_in_minutes, auto_clocked_out, created_at, updated_at`

func scanWorkPeriod(row pgx.Row) (attendance.WorkPeriod, error) {
	var w attendance.WorkPeriod
	err := row.Scan(
		&w.ID, &w.EmployeeID, &w.ClockIn, &w.ClockOut,
		&w.ClockInLatitude, &w.ClockInLongitude, &w.ClockOutLatitude, &w.ClockOutLongitude,
		&w.WorkHoursInMinutes, &w.AutoClockedOut, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

// Create implements attendance.WorkPeriodRepository.
func (r *workPeriodRepositoryImpl) Create(ctx context.Context, period attendance.WorkPeriod) (attendance.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_periods (employee_id, clock_in, clock_in_latitude, clock_in_longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		period.EmployeeID,
		period.ClockIn,
		period.ClockInLatitude,
		period.ClockInLongitude,
	).Scan(&period.ID, &period.CreatedAt, &period.UpdatedAt)
	if err != nil {
		if constraintViolation(err, uniqueViolation, "ux_work_periods_open") {
			return attendance.WorkPeriod{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.WorkPeriod{}, fmt.Errorf("failed to create work period: %w", err)
	}

	return period, nil
}

// Close implements attendance.WorkPeriodRepository.
func (r *workPeriodRepositoryImpl) Close(ctx context.Context, period attendance.WorkPeriod) (attendance.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_periods
		SET clock_out = $2, clock_out_latitude = $3, clock_out_longitude = $4,
			work_hours_in_minutes = $5, auto_clocked_out = $6, updated_at = NOW()
		WHERE id = $1 AND clock_out IS NULL
		RETURNING ` + workPeriodColumns

	closed, err := scanWorkPeriod(q.QueryRow(ctx, query,
		period.ID,
		period.ClockOut,
		period.ClockOutLatitude,
		period.ClockOutLongitude,
		period.WorkHoursInMinutes,
		period.AutoClockedOut,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.WorkPeriod{}, attendance.ErrNotClockedIn
		}
		return attendance.WorkPeriod{}, fmt.Errorf("failed to close work period: %w", err)
	}

	return closed, nil
}

// GetByID implements attendance.WorkPeriodRepository.
func (r *workPeriodRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workPeriodColumns + ` FROM work_periods WHERE id = $1`

	w, err := scanWorkPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return attendance.WorkPeriod{}, attendance.ErrWorkPeriodNotFound
		}
		return attendance.WorkPeriod{}, fmt.Errorf("failed to get work period: %w", err)
	}

	return w, nil
}

// FindOpenFor implements attendance.WorkPeriodRepository.
func (r *workPeriodRepositoryImpl) FindOpenFor(ctx context.Context, employeeID string) (*attendance.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workPeriodColumns + ` FROM work_periods WHERE employee_id = $1 AND clock_out IS NULL`

	w, err := scanWorkPeriod(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open work period: %w", err)
	}

	return &w, nil
}
