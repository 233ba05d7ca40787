package breaks

import (
	"context"
	"time"
)

// BreakRepository persists breaks. The store guarantees at most one open break
// per employee; Create returns ErrBreakAlreadyActive when violated.
type BreakRepository interface {
	Create(ctx context.Context, b Break) (Break, error)

	// Close sets end fields and duration of an open break. Returns ErrNoActiveBreak
	// when the break is no longer open.
	Close(ctx context.Context, b Break) (Break, error)

	FindOpenFor(ctx context.Context, employeeID string) (*Break, error)

	// ListStartedBetween returns breaks of the employee with start in [from, to).
	ListStartedBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Break, error)

	ListByWorkPeriod(ctx context.Context, workPeriodID string) ([]Break, error)
}
