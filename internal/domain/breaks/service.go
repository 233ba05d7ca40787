package breaks

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

type BreakService interface {
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)
	EndBreak(ctx context.Context, req EndBreakRequest) (BreakResponse, error)
	GetBreakStatus(ctx context.Context, employeeID string) (Status, error)

	// GetExcessBreakTime is advisory: minutes of break taken beyond allowedMinutes
	// within the work period. allowedMinutes <= 0 uses the configured default.
	GetExcessBreakTime(ctx context.Context, period attendance.WorkPeriod, allowedMinutes int) (int, error)
}
