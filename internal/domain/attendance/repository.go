package attendance

import (
	"context"
)

// WorkPeriodRepository persists work periods. The store guarantees at most one
// open period per employee; Create returns ErrAlreadyClockedIn when violated.
type WorkPeriodRepository interface {
	Create(ctx context.Context, period WorkPeriod) (WorkPeriod, error)

	// Close sets the clock-out fields of an open period. Returns ErrNotClockedIn
	// when the period is no longer open.
	Close(ctx context.Context, period WorkPeriod) (WorkPeriod, error)

	GetByID(ctx context.Context, id string) (WorkPeriod, error)

	// FindOpenFor returns the open period of the employee, or nil.
	FindOpenFor(ctx context.Context, employeeID string) (*WorkPeriod, error)
}
