package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	tx          database.Transactor
	workPeriods attendance.WorkPeriodRepository
	breaks      breaks.BreakRepository
	employees   employee.EmployeeRepository
	locations   employee.LocationValidator
	now         func() time.Time
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.WorkPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.WorkPeriodResponse{}, err
	}

	var created attendance.WorkPeriod
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		open, err := s.workPeriods.FindOpenFor(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to find open work period: %w", err)
		}
		if open != nil {
			return attendance.ErrAlreadyClockedIn
		}

		if err := s.checkLocation(ctx, emp, req.Latitude, req.Longitude); err != nil {
			return err
		}

		created, err = s.workPeriods.Create(ctx, attendance.WorkPeriod{
			EmployeeID:       emp.ID,
			ClockIn:          s.now().UTC(),
			ClockInLatitude:  req.Latitude,
			ClockInLongitude: req.Longitude,
		})
		if err != nil {
			return fmt.Errorf("failed to create work period: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.WorkPeriodResponse{}, err
	}

	slog.Info("clocked in", "employee_id", created.EmployeeID, "work_period_id", created.ID)
	return attendance.NewWorkPeriodResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.WorkPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.WorkPeriodResponse{}, err
	}

	var closed attendance.WorkPeriod
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		open, err := s.workPeriods.FindOpenFor(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to find open work period: %w", err)
		}
		if open == nil {
			return attendance.ErrNotClockedIn
		}

		if err := s.checkLocation(ctx, emp, req.Latitude, req.Longitude); err != nil {
			return err
		}

		closed, err = s.closePeriod(ctx, *open, req.Latitude, req.Longitude, false)
		return err
	})
	if err != nil {
		return attendance.WorkPeriodResponse{}, err
	}

	slog.Info("clocked out", "employee_id", closed.EmployeeID, "work_period_id", closed.ID)
	return attendance.NewWorkPeriodResponse(closed), nil
}

// AutoClockOut implements attendance.AutoClockOuter. It joins the caller's
// transaction when one is active.
func (s *AttendanceServiceImpl) AutoClockOut(ctx context.Context, employeeID string, latitude, longitude float64) (attendance.WorkPeriod, error) {
	var closed attendance.WorkPeriod
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.LockForUpdate(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		open, err := s.workPeriods.FindOpenFor(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to find open work period: %w", err)
		}
		if open == nil {
			return attendance.ErrNotClockedIn
		}

		closed, err = s.closePeriod(ctx, *open, latitude, longitude, true)
		return err
	})
	if err != nil {
		return attendance.WorkPeriod{}, err
	}

	slog.Info("auto clocked out", "employee_id", closed.EmployeeID, "work_period_id", closed.ID)
	return closed, nil
}

// GetActiveWorkPeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetActiveWorkPeriod(ctx context.Context, employeeID string) (*attendance.WorkPeriod, error) {
	open, err := s.workPeriods.FindOpenFor(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find open work period: %w", err)
	}
	return open, nil
}

func (s *AttendanceServiceImpl) checkLocation(ctx context.Context, emp employee.Employee, latitude, longitude float64) error {
	ok, err := s.locations.ValidateEmployeeLocation(ctx, emp, latitude, longitude, 0)
	if err != nil {
		return fmt.Errorf("failed to validate location: %w", err)
	}
	if !ok {
		slog.Info("location rejected", "employee_id", emp.ID, "latitude", latitude, "longitude", longitude)
		return attendance.ErrLocationRejected
	}
	return nil
}

// closePeriod ends an open break first so no open break outlives its period.
func (s *AttendanceServiceImpl) closePeriod(ctx context.Context, period attendance.WorkPeriod, latitude, longitude float64, auto bool) (attendance.WorkPeriod, error) {
	now := s.now().UTC()

	openBreak, err := s.breaks.FindOpenFor(ctx, period.EmployeeID)
	if err != nil {
		return attendance.WorkPeriod{}, fmt.Errorf("failed to find open break: %w", err)
	}
	if openBreak != nil {
		duration := utils.WholeMinutes(now.Sub(openBreak.StartTime))
		openBreak.EndTime = &now
		openBreak.EndLatitude = &latitude
		openBreak.EndLongitude = &longitude
		openBreak.DurationMinutes = &duration
		if _, err := s.breaks.Close(ctx, *openBreak); err != nil {
			return attendance.WorkPeriod{}, fmt.Errorf("failed to close open break: %w", err)
		}
	}

	minutes := utils.WholeMinutes(now.Sub(period.ClockIn))
	period.ClockOut = &now
	period.ClockOutLatitude = &latitude
	period.ClockOutLongitude = &longitude
	period.WorkHoursInMinutes = &minutes
	period.AutoClockedOut = auto

	closed, err := s.workPeriods.Close(ctx, period)
	if err != nil {
		return attendance.WorkPeriod{}, fmt.Errorf("failed to close work period: %w", err)
	}
	return closed, nil
}

func NewAttendanceService(
	tx database.Transactor,
	workPeriodRepo attendance.WorkPeriodRepository,
	breakRepo breaks.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	locationValidator employee.LocationValidator,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		tx:          tx,
		workPeriods: workPeriodRepo,
		breaks:      breakRepo,
		employees:   employeeRepo,
		locations:   locationValidator,
		now:         time.Now,
	}
}

var (
	_ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)
	_ attendance.AutoClockOuter    = (*AttendanceServiceImpl)(nil)
)
