package absence

import (
	"context"
	"time"
)

type AbsenceService interface {
	ValidateNoOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) error
	ValidateMaxPerDay(ctx context.Context, employeeID string, absenceType AbsenceType, start, end time.Time, loc *time.Location) error

	RequestAbsence(ctx context.Context, req RequestAbsenceRequest) (AbsenceResponse, error)
	TakeLunchBreak(ctx context.Context, req LunchBreakRequest) (LunchBreakResponse, error)

	Approve(ctx context.Context, req ReviewRequest) (AbsenceResponse, error)
	Reject(ctx context.Context, req ReviewRequest) (AbsenceResponse, error)

	GetAbsence(ctx context.Context, id string) (AbsenceResponse, error)
	ListMyAbsences(ctx context.Context, filter ListAbsencesFilter) ([]AbsenceResponse, error)
}
