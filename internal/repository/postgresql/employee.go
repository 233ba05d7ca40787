package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, company_id, store_id, position_id, full_name, created_at, updated_at`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// LockForUpdate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) LockForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id)
}

func (e *employeeRepositoryImpl) get(ctx context.Context, query, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.CompanyID, &emp.StoreID, &emp.PositionID, &emp.FullName, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	return emp, nil
}

// GetStore implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetStore(ctx context.Context, storeID string) (employee.Store, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, name, latitude, longitude, timezone
		FROM stores
		WHERE id = $1
	`

	var s employee.Store
	err := q.QueryRow(ctx, query, storeID).Scan(&s.ID, &s.CompanyID, &s.Name, &s.Latitude, &s.Longitude, &s.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return employee.Store{}, employee.ErrStoreNotFound
		}
		return employee.Store{}, fmt.Errorf("failed to get store %s: %w", storeID, err)
	}

	return s, nil
}

// ListAllowedLocations implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListAllowedLocations(ctx context.Context, employeeID string) ([]employee.AllowedLocation, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_id, name, latitude, longitude, valid_from, valid_until, created_at, updated_at
		FROM employee_allowed_locations
		WHERE employee_id = $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowed locations: %w", err)
	}
	defer rows.Close()

	var locations []employee.AllowedLocation
	for rows.Next() {
		var l employee.AllowedLocation
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Name, &l.Latitude, &l.Longitude, &l.ValidFrom, &l.ValidUntil, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan allowed location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allowed locations: %w", err)
	}

	return locations, nil
}
