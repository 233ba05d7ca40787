package absence

import (
	"context"
	"time"
)

type AbsenceRepository interface {
	// Create returns ErrOverlapDetected when the storage exclusion constraint
	// rejects the row.
	Create(ctx context.Context, a Absence) (Absence, error)
	GetByID(ctx context.Context, id string) (Absence, error)

	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Absence, error)
	UpdateStatus(ctx context.Context, a Absence) (Absence, error)

	// ListOverlapping returns non-rejected absences of the employee intersecting
	// [start, end), skipping excludeID when set.
	ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) ([]Absence, error)

	// ListByTypeBetween returns non-rejected absences of the given type that
	// intersect [start, end).
	ListByTypeBetween(ctx context.Context, employeeID, absenceTypeID string, start, end time.Time) ([]Absence, error)

	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Absence, error)
}

type AbsenceTypeRepository interface {
	GetByID(ctx context.Context, id string) (AbsenceType, error)

	// FindBreakType returns the company's is_break type, or nil when none exists.
	FindBreakType(ctx context.Context, companyID string) (*AbsenceType, error)
	ListByCompany(ctx context.Context, companyID string) ([]AbsenceType, error)
	Create(ctx context.Context, t AbsenceType) (AbsenceType, error)
}
