package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepositoryImpl{db: db}
}

const absenceColumns = `
	id, employee_id, absence_type_id, start_time, end_time, status::text,
	reason, reviewed_by, reviewed_at, created_at, updated_at`

func scanAbsence(row pgx.Row) (absence.Absence, error) {
	var a absence.Absence
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.AbsenceTypeID, &a.StartTime, &a.EndTime, &a.Status,
		&a.Reason, &a.ReviewedBy, &a.ReviewedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Create(ctx context.Context, a absence.Absence) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absences (employee_id, absence_type_id, start_time, end_time, status, reason)
		VALUES ($1, $2, $3, $4, $5::absence_status, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID,
		a.AbsenceTypeID,
		a.StartTime,
		a.EndTime,
		string(a.Status),
		a.Reason,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if constraintViolation(err, exclusionViolation, "ex_absences_no_overlap") {
			return absence.Absence{}, absence.ErrOverlapDetected
		}
		return absence.Absence{}, fmt.Errorf("failed to create absence: %w", err)
	}

	return a, nil
}

// GetByID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	return r.get(ctx, `SELECT `+absenceColumns+` FROM absences WHERE id = $1`, id)
}

// GetByIDForUpdate implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (absence.Absence, error) {
	return r.get(ctx, `SELECT `+absenceColumns+` FROM absences WHERE id = $1 FOR UPDATE`, id)
}

func (r *absenceRepositoryImpl) get(ctx context.Context, query, id string) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAbsence(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return absence.Absence{}, absence.ErrAbsenceNotFound
		}
		return absence.Absence{}, fmt.Errorf("failed to get absence: %w", err)
	}

	return a, nil
}

// UpdateStatus implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) UpdateStatus(ctx context.Context, a absence.Absence) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absences
		SET status = $2::absence_status, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + absenceColumns

	updated, err := scanAbsence(q.QueryRow(ctx, query, a.ID, string(a.Status), a.ReviewedBy, a.ReviewedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Absence{}, absence.ErrAbsenceNotFound
		}
		return absence.Absence{}, fmt.Errorf("failed to update absence status: %w", err)
	}

	return updated, nil
}

// ListOverlapping implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) ([]absence.Absence, error) {
	query := `
		SELECT ` + absenceColumns + `
		FROM absences
		WHERE employee_id = $1
		  AND status <> 'rejected'
		  AND start_time < $3
		  AND end_time > $2
		  AND ($4::uuid IS NULL OR id <> $4::uuid)
		ORDER BY start_time
	`
	return r.list(ctx, query, employeeID, start, end, excludeID)
}

// ListByTypeBetween implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ListByTypeBetween(ctx context.Context, employeeID, absenceTypeID string, start, end time.Time) ([]absence.Absence, error) {
	query := `
		SELECT ` + absenceColumns + `
		FROM absences
		WHERE employee_id = $1
		  AND absence_type_id = $2
		  AND status <> 'rejected'
		  AND start_time < $4
		  AND end_time > $3
		ORDER BY start_time
	`
	return r.list(ctx, query, employeeID, absenceTypeID, start, end)
}

// ListByEmployee implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]absence.Absence, error) {
	query := `
		SELECT ` + absenceColumns + `
		FROM absences
		WHERE employee_id = $1
		  AND ($2::timestamptz IS NULL OR end_time > $2)
		  AND ($3::timestamptz IS NULL OR start_time < $3)
		ORDER BY start_time
	`
	return r.list(ctx, query, employeeID, from, to)
}

func (r *absenceRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	var list []absence.Absence
	for rows.Next() {
		a, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absences: %w", err)
	}

	return list, nil
}
