package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceTypeRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceTypeRepository(db *database.DB) absence.AbsenceTypeRepository {
	return &absenceTypeRepositoryImpl{db: db}
}

const absenceTypeColumns = `
	id, company_id, name, is_paid, is_break, requires_validation, max_per_day, created_at, updated_at`

func scanAbsenceType(row pgx.Row) (absence.AbsenceType, error) {
	var t absence.AbsenceType
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.IsPaid, &t.IsBreak, &t.RequiresValidation, &t.MaxPerDay, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// GetByID implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) GetByID(ctx context.Context, id string) (absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanAbsenceType(q.QueryRow(ctx, `SELECT `+absenceTypeColumns+` FROM absence_types WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
		}
		return absence.AbsenceType{}, fmt.Errorf("failed to get absence type: %w", err)
	}

	return t, nil
}

// FindBreakType implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) FindBreakType(ctx context.Context, companyID string) (*absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceTypeColumns + ` FROM absence_types WHERE company_id = $1 AND is_break`

	t, err := scanAbsenceType(q.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find break type: %w", err)
	}

	return &t, nil
}

// ListByCompany implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceTypeColumns + ` FROM absence_types WHERE company_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence types: %w", err)
	}
	defer rows.Close()

	var types []absence.AbsenceType
	for rows.Next() {
		t, err := scanAbsenceType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absence types: %w", err)
	}

	return types, nil
}

// Create implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) Create(ctx context.Context, t absence.AbsenceType) (absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_types (company_id, name, is_paid, is_break, requires_validation, max_per_day)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.CompanyID,
		t.Name,
		t.IsPaid,
		t.IsBreak,
		t.RequiresValidation,
		t.MaxPerDay,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if constraintViolation(err, uniqueViolation, "ux_absence_types_name") ||
			constraintViolation(err, uniqueViolation, "ux_absence_types_break") {
			return absence.AbsenceType{}, absence.ErrAbsenceTypeExists
		}
		return absence.AbsenceType{}, fmt.Errorf("failed to create absence type: %w", err)
	}

	return t, nil
}
