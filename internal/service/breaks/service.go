package breaks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

const DefaultAllowedMinutes = 60

type BreakServiceImpl struct {
	tx             database.Transactor
	breaks         breaks.BreakRepository
	workPeriods    attendance.WorkPeriodRepository
	employees      employee.EmployeeRepository
	absenceTypes   absence.AbsenceTypeRepository
	allowedMinutes int
	now            func() time.Time
}

// StartBreak implements breaks.BreakService.
func (s *BreakServiceImpl) StartBreak(ctx context.Context, req breaks.StartBreakRequest) (breaks.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakResponse{}, err
	}

	var started breaks.Break
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		period, err := s.workPeriods.FindOpenFor(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to find open work period: %w", err)
		}
		if period == nil {
			return attendance.ErrNotClockedIn
		}

		open, err := s.breaks.FindOpenFor(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to find open break: %w", err)
		}
		if open != nil {
			return breaks.ErrBreakAlreadyActive
		}

		breakType, err := s.absenceTypes.FindBreakType(ctx, emp.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to find break type: %w", err)
		}
		if breakType == nil {
			return breaks.ErrNoBreakTypeConfigured
		}

		now := s.now().UTC()
		if breakType.MaxPerDay != nil {
			today, err := s.todayBreaks(ctx, emp, now)
			if err != nil {
				return err
			}
			if len(today.breaks) >= *breakType.MaxPerDay {
				slog.Info("daily break limit reached", "employee_id", emp.ID, "limit", *breakType.MaxPerDay)
				return &absence.DailyLimitError{Date: today.date, Limit: *breakType.MaxPerDay}
			}
		}

		started, err = s.breaks.Create(ctx, breaks.Break{
			EmployeeID:     emp.ID,
			WorkPeriodID:   period.ID,
			AbsenceTypeID:  breakType.ID,
			StartTime:      now,
			StartLatitude:  req.Latitude,
			StartLongitude: req.Longitude,
		})
		if err != nil {
			return fmt.Errorf("failed to create break: %w", err)
		}
		return nil
	})
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	slog.Info("break started", "employee_id", started.EmployeeID, "break_id", started.ID)
	return breaks.NewBreakResponse(started), nil
}

// EndBreak implements breaks.BreakService.
func (s *BreakServiceImpl) EndBreak(ctx context.Context, req breaks.EndBreakRequest) (breaks.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakResponse{}, err
	}

	var ended breaks.Break
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		open, err := s.breaks.FindOpenFor(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to find open break: %w", err)
		}
		if open == nil {
			return breaks.ErrNoActiveBreak
		}

		now := s.now().UTC()
		duration := utils.WholeMinutes(now.Sub(open.StartTime))
		open.EndTime = &now
		open.EndLatitude = req.Latitude
		open.EndLongitude = req.Longitude
		open.DurationMinutes = &duration

		ended, err = s.breaks.Close(ctx, *open)
		if err != nil {
			return fmt.Errorf("failed to close break: %w", err)
		}
		return nil
	})
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	slog.Info("break ended", "employee_id", ended.EmployeeID, "break_id", ended.ID, "duration_minutes", *ended.DurationMinutes)
	return breaks.NewBreakResponse(ended), nil
}

// GetBreakStatus implements breaks.BreakService. Read-only, no transaction.
func (s *BreakServiceImpl) GetBreakStatus(ctx context.Context, employeeID string) (breaks.Status, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return breaks.Status{}, fmt.Errorf("failed to get employee: %w", err)
	}

	period, err := s.workPeriods.FindOpenFor(ctx, emp.ID)
	if err != nil {
		return breaks.Status{}, fmt.Errorf("failed to find open work period: %w", err)
	}
	open, err := s.breaks.FindOpenFor(ctx, emp.ID)
	if err != nil {
		return breaks.Status{}, fmt.Errorf("failed to find open break: %w", err)
	}
	breakType, err := s.absenceTypes.FindBreakType(ctx, emp.CompanyID)
	if err != nil {
		return breaks.Status{}, fmt.Errorf("failed to find break type: %w", err)
	}

	now := s.now().UTC()
	today, err := s.todayBreaks(ctx, emp, now)
	if err != nil {
		return breaks.Status{}, err
	}

	status := breaks.Status{
		IsOnBreak:           open != nil,
		HasActiveWorkPeriod: period != nil,
		CanEndBreak:         open != nil,
		TodayBreakCount:     len(today.breaks),
	}
	for _, b := range today.breaks {
		status.TodayBreakMinutes += b.MinutesAt(now)
	}
	if open != nil {
		current := breaks.FormatMinutes(open.MinutesAt(now))
		status.CurrentBreakDuration = &current
	}

	underQuota := true
	if breakType != nil && breakType.MaxPerDay != nil {
		limit := *breakType.MaxPerDay
		status.DailyLimit = &limit
		underQuota = len(today.breaks) < limit
	}
	status.CanStartBreak = period != nil && open == nil && breakType != nil && underQuota

	return status, nil
}

// GetExcessBreakTime implements breaks.BreakService.
func (s *BreakServiceImpl) GetExcessBreakTime(ctx context.Context, period attendance.WorkPeriod, allowedMinutes int) (int, error) {
	if allowedMinutes <= 0 {
		allowedMinutes = s.allowedMinutes
	}

	list, err := s.breaks.ListByWorkPeriod(ctx, period.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list breaks: %w", err)
	}

	now := s.now().UTC()
	total := 0
	for _, b := range list {
		total += b.MinutesAt(now)
	}
	return max(0, total-allowedMinutes), nil
}

type dayBreaks struct {
	date   string
	breaks []breaks.Break
}

// todayBreaks lists breaks started on the employee's current calendar day.
func (s *BreakServiceImpl) todayBreaks(ctx context.Context, emp employee.Employee, now time.Time) (dayBreaks, error) {
	loc, err := employee.StoreLocation(ctx, s.employees, emp)
	if err != nil {
		return dayBreaks{}, fmt.Errorf("failed to resolve store timezone: %w", err)
	}
	dayStart, dayEnd := utils.DayBounds(now, loc)

	list, err := s.breaks.ListStartedBetween(ctx, emp.ID, dayStart, dayEnd)
	if err != nil {
		return dayBreaks{}, fmt.Errorf("failed to list today's breaks: %w", err)
	}
	return dayBreaks{date: dayStart.Format(utils.DateLayout), breaks: list}, nil
}

func NewBreakService(
	tx database.Transactor,
	breakRepo breaks.BreakRepository,
	workPeriodRepo attendance.WorkPeriodRepository,
	employeeRepo employee.EmployeeRepository,
	absenceTypeRepo absence.AbsenceTypeRepository,
	allowedMinutes int,
) *BreakServiceImpl {
	if allowedMinutes <= 0 {
		allowedMinutes = DefaultAllowedMinutes
	}
	return &BreakServiceImpl{
		tx:             tx,
		breaks:         breakRepo,
		workPeriods:    workPeriodRepo,
		employees:      employeeRepo,
		absenceTypes:   absenceTypeRepo,
		allowedMinutes: allowedMinutes,
		now:            time.Now,
	}
}

var _ breaks.BreakService = (*BreakServiceImpl)(nil)
