package absence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

type AbsenceServiceImpl struct {
	tx           database.Transactor
	absences     absence.AbsenceRepository
	absenceTypes absence.AbsenceTypeRepository
	employees    employee.EmployeeRepository
	workPeriods  attendance.WorkPeriodRepository
	locations    employee.LocationValidator
	clockOuter   attendance.AutoClockOuter
	now          func() time.Time
}

// ValidateNoOverlap implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ValidateNoOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) error {
	existing, err := s.absences.ListOverlapping(ctx, employeeID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to list overlapping absences: %w", err)
	}
	for _, a := range existing {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.CountsAgainstQuota() && a.Overlaps(start, end) {
			slog.Info("absence overlap detected", "employee_id", employeeID, "conflicting_absence_id", a.ID)
			return absence.ErrOverlapDetected
		}
	}
	return nil
}

// ValidateMaxPerDay implements absence.AbsenceService. Every calendar day of
// [start, end) in loc is checked on its own.
func (s *AbsenceServiceImpl) ValidateMaxPerDay(ctx context.Context, employeeID string, absenceType absence.AbsenceType, start, end time.Time, loc *time.Location) error {
	if absenceType.MaxPerDay == nil {
		return nil
	}
	limit := *absenceType.MaxPerDay

	firstDay, _ := utils.DayBounds(start, loc)
	_, lastDayEnd := utils.DayBounds(end.Add(-time.Nanosecond), loc)

	existing, err := s.absences.ListByTypeBetween(ctx, employeeID, absenceType.ID, firstDay, lastDayEnd)
	if err != nil {
		return fmt.Errorf("failed to list absences of type: %w", err)
	}

	for dayStart := firstDay; dayStart.Before(end); dayStart = dayStart.AddDate(0, 0, 1) {
		dayEnd := dayStart.AddDate(0, 0, 1)
		if !dayEnd.After(start) {
			continue
		}

		count := 0
		for _, a := range existing {
			if a.CountsAgainstQuota() && a.Touches(dayStart, dayEnd) {
				count++
			}
		}
		if count >= limit {
			date := dayStart.Format(utils.DateLayout)
			slog.Info("absence daily limit reached", "employee_id", employeeID, "absence_type_id", absenceType.ID, "date", date)
			return &absence.DailyLimitError{Date: date, Limit: limit}
		}
	}
	return nil
}

// RequestAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) RequestAbsence(ctx context.Context, req absence.RequestAbsenceRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}
	start, end, loc, err := req.Interval()
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	var created absence.Absence
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		absenceType, err := s.absenceTypes.GetByID(ctx, req.AbsenceTypeID)
		if err != nil {
			return fmt.Errorf("failed to get absence type: %w", err)
		}
		if absenceType.CompanyID != emp.CompanyID {
			return absence.ErrAbsenceTypeNotFound
		}

		if err := s.ValidateMaxPerDay(ctx, emp.ID, absenceType, start, end, loc); err != nil {
			return err
		}
		if err := s.ValidateNoOverlap(ctx, emp.ID, start, end, nil); err != nil {
			return err
		}

		created, err = s.absences.Create(ctx, absence.Absence{
			EmployeeID:    emp.ID,
			AbsenceTypeID: absenceType.ID,
			StartTime:     start,
			EndTime:       end,
			Status:        absenceType.InitialStatus(),
			Reason:        req.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create absence: %w", err)
		}
		return nil
	})
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	slog.Info("absence requested", "employee_id", created.EmployeeID, "absence_id", created.ID, "status", created.Status)
	return absence.NewAbsenceResponse(created), nil
}

// TakeLunchBreak implements absence.AbsenceService. The break absence is
// always approved, whatever the type's requires_validation says.
func (s *AbsenceServiceImpl) TakeLunchBreak(ctx context.Context, req absence.LunchBreakRequest) (absence.LunchBreakResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.LunchBreakResponse{}, err
	}

	var (
		created    absence.Absence
		clockedOut bool
		loc        *time.Location
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		breakType, err := s.absenceTypes.FindBreakType(ctx, emp.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to find break type: %w", err)
		}
		if breakType == nil {
			return absence.ErrNotConfigured
		}

		loc, err = employee.StoreLocation(ctx, s.employees, emp)
		if err != nil {
			return fmt.Errorf("failed to resolve store timezone: %w", err)
		}

		now := s.now().UTC()
		end := now.Add(time.Duration(req.DurationMinutes) * time.Minute)

		// Quota applies to today only, even when the break runs past midnight.
		dayStart, dayEnd := utils.DayBounds(now, loc)
		if err := s.ValidateMaxPerDay(ctx, emp.ID, *breakType, dayStart, dayEnd, loc); err != nil {
			return err
		}

		ok, err := s.locations.ValidateEmployeeLocation(ctx, emp, req.Latitude, req.Longitude, 0)
		if err != nil {
			return fmt.Errorf("failed to validate location: %w", err)
		}
		if !ok {
			slog.Info("location rejected", "employee_id", emp.ID, "latitude", req.Latitude, "longitude", req.Longitude)
			return attendance.ErrLocationRejected
		}

		if err := s.ValidateNoOverlap(ctx, emp.ID, now, end, nil); err != nil {
			return err
		}

		open, err := s.workPeriods.FindOpenFor(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to find open work period: %w", err)
		}
		if open != nil {
			if _, err := s.clockOuter.AutoClockOut(ctx, emp.ID, req.Latitude, req.Longitude); err != nil {
				return fmt.Errorf("failed to clock out for lunch break: %w", err)
			}
			clockedOut = true
		}

		created, err = s.absences.Create(ctx, absence.Absence{
			EmployeeID:    emp.ID,
			AbsenceTypeID: breakType.ID,
			StartTime:     now,
			EndTime:       end,
			Status:        absence.StatusApproved,
		})
		if err != nil {
			return fmt.Errorf("failed to create break absence: %w", err)
		}
		return nil
	})
	if err != nil {
		return absence.LunchBreakResponse{}, err
	}

	until := created.EndTime.In(loc).Format("15:04")
	message := fmt.Sprintf("Enjoy your break until %s.", until)
	if clockedOut {
		message = fmt.Sprintf("You have been clocked out. Enjoy your break until %s.", until)
	}

	slog.Info("lunch break taken", "employee_id", created.EmployeeID, "absence_id", created.ID, "clocked_out", clockedOut)
	return absence.LunchBreakResponse{
		Absence:      absence.NewAbsenceResponse(created),
		Message:      message,
		ClockedOut:   clockedOut,
		BreakEndTime: created.EndTime.UTC().Format(time.RFC3339),
	}, nil
}

// Approve implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Approve(ctx context.Context, req absence.ReviewRequest) (absence.AbsenceResponse, error) {
	return s.review(ctx, req, absence.StatusApproved)
}

// Reject implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Reject(ctx context.Context, req absence.ReviewRequest) (absence.AbsenceResponse, error) {
	return s.review(ctx, req, absence.StatusRejected)
}

func (s *AbsenceServiceImpl) review(ctx context.Context, req absence.ReviewRequest, status absence.Status) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	var updated absence.Absence
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		a, err := s.absences.GetByIDForUpdate(ctx, req.AbsenceID)
		if err != nil {
			return fmt.Errorf("failed to get absence: %w", err)
		}
		if a.Status != absence.StatusPending {
			return absence.ErrNotPending
		}

		now := s.now().UTC()
		a.Status = status
		a.ReviewedBy = &req.ReviewerID
		a.ReviewedAt = &now

		updated, err = s.absences.UpdateStatus(ctx, a)
		if err != nil {
			return fmt.Errorf("failed to update absence status: %w", err)
		}
		return nil
	})
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	slog.Info("absence reviewed", "absence_id", updated.ID, "status", updated.Status, "reviewer_id", req.ReviewerID)
	return absence.NewAbsenceResponse(updated), nil
}

// GetAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) GetAbsence(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	a, err := s.absences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, absence.ErrAbsenceNotFound) {
			return absence.AbsenceResponse{}, err
		}
		return absence.AbsenceResponse{}, fmt.Errorf("failed to get absence: %w", err)
	}
	return absence.NewAbsenceResponse(a), nil
}

// ListMyAbsences implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListMyAbsences(ctx context.Context, filter absence.ListAbsencesFilter) ([]absence.AbsenceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var from, to *time.Time
	if filter.From != nil {
		t, _ := time.Parse(utils.DateLayout, *filter.From)
		from = &t
	}
	if filter.To != nil {
		t, _ := time.Parse(utils.DateLayout, *filter.To)
		t = t.AddDate(0, 0, 1)
		to = &t
	}

	list, err := s.absences.ListByEmployee(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}

	resp := make([]absence.AbsenceResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, absence.NewAbsenceResponse(a))
	}
	return resp, nil
}

func NewAbsenceService(
	tx database.Transactor,
	absenceRepo absence.AbsenceRepository,
	absenceTypeRepo absence.AbsenceTypeRepository,
	employeeRepo employee.EmployeeRepository,
	workPeriodRepo attendance.WorkPeriodRepository,
	locationValidator employee.LocationValidator,
	clockOuter attendance.AutoClockOuter,
) *AbsenceServiceImpl {
	return &AbsenceServiceImpl{
		tx:           tx,
		absences:     absenceRepo,
		absenceTypes: absenceTypeRepo,
		employees:    employeeRepo,
		workPeriods:  workPeriodRepo,
		locations:    locationValidator,
		clockOuter:   clockOuter,
		now:          time.Now,
	}
}

var _ absence.AbsenceService = (*AbsenceServiceImpl)(nil)
