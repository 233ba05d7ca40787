package attendance

import (
	"context"
)

// AttendanceService is the work-period tracker exposed to end users.
type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (WorkPeriodResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (WorkPeriodResponse, error)
	GetActiveWorkPeriod(ctx context.Context, employeeID string) (*WorkPeriod, error)
}

// AutoClockOuter closes the open period without a location check. Only the
// lunch-break flow may use it; it is never routed to end users.
type AutoClockOuter interface {
	AutoClockOut(ctx context.Context, employeeID string, latitude, longitude float64) (WorkPeriod, error)
}
