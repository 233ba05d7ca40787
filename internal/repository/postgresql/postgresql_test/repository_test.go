package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
)

type RepositorySuite struct {
	suite.Suite
	setup   *TestDatabaseSetup
	ctx     context.Context
	fixture Fixture

	tx           database.Transactor
	employees    employee.EmployeeRepository
	workPeriods  attendance.WorkPeriodRepository
	breaks       breaks.BreakRepository
	absences     absence.AbsenceRepository
	absenceTypes absence.AbsenceTypeRepository
	schedules    schedule.ScheduleRepository
}

func TestRepositorySuite(t *testing.T) {
	setup, err := NewTestDatabase()
	require.NoError(t, err)
	if setup == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	defer setup.Close()

	suite.Run(t, &RepositorySuite{setup: setup})
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.setup.TruncateAllTables(s.ctx))

	fixture, err := s.setup.SeedFixture(s.ctx)
	s.Require().NoError(err)
	s.fixture = fixture

	db := s.setup.DB
	s.tx = postgresql.NewTransactor(db)
	s.employees = postgresql.NewEmployeeRepository(db)
	s.workPeriods = postgresql.NewWorkPeriodRepository(db)
	s.breaks = postgresql.NewBreakRepository(db)
	s.absences = postgresql.NewAbsenceRepository(db)
	s.absenceTypes = postgresql.NewAbsenceTypeRepository(db)
	s.schedules = postgresql.NewScheduleRepository(db)
}

func (s *RepositorySuite) TestEmployee_NotFound() {
	_, err := s.employees.GetByID(s.ctx, "0190a1b2-c3d4-7e5f-8a9b-ffffffffffff")
	s.ErrorIs(err, employee.ErrEmployeeNotFound)

	_, err = s.employees.GetByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, employee.ErrEmployeeNotFound)
}

func (s *RepositorySuite) TestEmployee_StoreTimezone() {
	emp, err := s.employees.GetByID(s.ctx, s.fixture.EmployeeID)
	s.Require().NoError(err)
	s.Require().NotNil(emp.StoreID)

	store, err := s.employees.GetStore(s.ctx, *emp.StoreID)
	s.Require().NoError(err)
	s.Equal("Asia/Jakarta", store.Timezone)
}

func (s *RepositorySuite) TestWorkPeriod_OpenUniqueIndex() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	period, err := s.workPeriods.Create(s.ctx, attendance.WorkPeriod{EmployeeID: s.fixture.EmployeeID, ClockIn: now})
	s.Require().NoError(err)

	_, err = s.workPeriods.Create(s.ctx, attendance.WorkPeriod{EmployeeID: s.fixture.EmployeeID, ClockIn: now})
	s.ErrorIs(err, attendance.ErrAlreadyClockedIn)

	out := now.Add(time.Hour)
	minutes := 60
	period.ClockOut = &out
	period.WorkHoursInMinutes = &minutes
	closed, err := s.workPeriods.Close(s.ctx, period)
	s.Require().NoError(err)
	s.False(closed.IsOpen())

	_, err = s.workPeriods.Close(s.ctx, period)
	s.ErrorIs(err, attendance.ErrNotClockedIn)

	open, err := s.workPeriods.FindOpenFor(s.ctx, s.fixture.EmployeeID)
	s.Require().NoError(err)
	s.Nil(open)
}

func (s *RepositorySuite) TestWorkPeriod_ConcurrentCreate() {
	const writers = 5
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
				_, err := s.workPeriods.Create(ctx, attendance.WorkPeriod{EmployeeID: s.fixture.EmployeeID, ClockIn: time.Now().UTC()})
				return err
			})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errors.Is(err, attendance.ErrAlreadyClockedIn), "unexpected error: %v", err)
	}
	s.Equal(1, succeeded)
}

func (s *RepositorySuite) createBreakType() absence.AbsenceType {
	limit := 3
	t, err := s.absenceTypes.Create(s.ctx, absence.AbsenceType{
		CompanyID: s.fixture.CompanyID,
		Name:      "Break",
		IsPaid:    true,
		IsBreak:   true,
		MaxPerDay: &limit,
	})
	s.Require().NoError(err)
	return t
}

func (s *RepositorySuite) TestAbsenceType_SingleBreakType() {
	created := s.createBreakType()

	found, err := s.absenceTypes.FindBreakType(s.ctx, s.fixture.CompanyID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(created.ID, found.ID)

	_, err = s.absenceTypes.Create(s.ctx, absence.AbsenceType{CompanyID: s.fixture.CompanyID, Name: "Coffee", IsBreak: true})
	s.ErrorIs(err, absence.ErrAbsenceTypeExists)
}

func (s *RepositorySuite) TestBreak_OpenUniqueIndex() {
	breakType := s.createBreakType()
	period, err := s.workPeriods.Create(s.ctx, attendance.WorkPeriod{EmployeeID: s.fixture.EmployeeID, ClockIn: time.Now().UTC()})
	s.Require().NoError(err)

	start := time.Now().UTC().Truncate(time.Microsecond)
	b, err := s.breaks.Create(s.ctx, breaks.Break{
		EmployeeID:    s.fixture.EmployeeID,
		WorkPeriodID:  period.ID,
		AbsenceTypeID: breakType.ID,
		StartTime:     start,
	})
	s.Require().NoError(err)

	_, err = s.breaks.Create(s.ctx, breaks.Break{
		EmployeeID:    s.fixture.EmployeeID,
		WorkPeriodID:  period.ID,
		AbsenceTypeID: breakType.ID,
		StartTime:     start,
	})
	s.ErrorIs(err, breaks.ErrBreakAlreadyActive)

	end := start.Add(15 * time.Minute)
	duration := 15
	b.EndTime = &end
	b.DurationMinutes = &duration
	_, err = s.breaks.Close(s.ctx, b)
	s.Require().NoError(err)

	_, err = s.breaks.Close(s.ctx, b)
	s.ErrorIs(err, breaks.ErrNoActiveBreak)

	list, err := s.breaks.ListStartedBetween(s.ctx, s.fixture.EmployeeID, start.Add(-time.Minute), start.Add(time.Minute))
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(15, *list[0].DurationMinutes)
}

func (s *RepositorySuite) TestAbsence_ExclusionConstraint() {
	leave, err := s.absenceTypes.Create(s.ctx, absence.AbsenceType{CompanyID: s.fixture.CompanyID, Name: "Unpaid leave", RequiresValidation: true})
	s.Require().NoError(err)

	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	first, err := s.absences.Create(s.ctx, absence.Absence{
		EmployeeID:    s.fixture.EmployeeID,
		AbsenceTypeID: leave.ID,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Status:        absence.StatusPending,
	})
	s.Require().NoError(err)

	_, err = s.absences.Create(s.ctx, absence.Absence{
		EmployeeID:    s.fixture.EmployeeID,
		AbsenceTypeID: leave.ID,
		StartTime:     start.Add(30 * time.Minute),
		EndTime:       start.Add(2 * time.Hour),
		Status:        absence.StatusPending,
	})
	s.ErrorIs(err, absence.ErrOverlapDetected)

	// Touching intervals are allowed.
	_, err = s.absences.Create(s.ctx, absence.Absence{
		EmployeeID:    s.fixture.EmployeeID,
		AbsenceTypeID: leave.ID,
		StartTime:     start.Add(time.Hour),
		EndTime:       start.Add(2 * time.Hour),
		Status:        absence.StatusApproved,
	})
	s.Require().NoError(err)

	overlapping, err := s.absences.ListOverlapping(s.ctx, s.fixture.EmployeeID, start, start.Add(90*time.Minute), &first.ID)
	s.Require().NoError(err)
	s.Len(overlapping, 1)

	now := time.Now().UTC()
	reviewer := s.fixture.EmployeeID
	first.Status = absence.StatusRejected
	first.ReviewedBy = &reviewer
	first.ReviewedAt = &now
	rejected, err := s.absences.UpdateStatus(s.ctx, first)
	s.Require().NoError(err)
	s.Equal(absence.StatusRejected, rejected.Status)

	// A rejected row no longer takes part in the exclusion constraint.
	_, err = s.absences.Create(s.ctx, absence.Absence{
		EmployeeID:    s.fixture.EmployeeID,
		AbsenceTypeID: leave.ID,
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        absence.StatusPending,
	})
	s.NoError(err)

	all, err := s.absences.ListByEmployee(s.ctx, s.fixture.EmployeeID, nil, nil)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositorySuite) TestSchedule_ReplaceAll() {
	s.Require().NoError(s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.schedules.LockPosition(ctx, s.fixture.PositionID); err != nil {
			return err
		}
		if err := s.schedules.DeleteByPosition(ctx, s.fixture.PositionID); err != nil {
			return err
		}
		_, err := s.schedules.CreateBlocks(ctx, []schedule.PositionScheduleBlock{
			{PositionID: s.fixture.PositionID, Weekday: schedule.Tuesday, Title: "Late shift", StartTime: 13 * 60, EndTime: 21*60 + 30},
			{PositionID: s.fixture.PositionID, Weekday: schedule.Monday, Title: "Morning shift", StartTime: 9 * 60, EndTime: 12 * 60},
		})
		return err
	}))

	blocks, err := s.schedules.ListByPosition(s.ctx, s.fixture.PositionID)
	s.Require().NoError(err)
	s.Require().Len(blocks, 2)
	assert.Equal(s.T(), schedule.Monday, blocks[0].Weekday)
	assert.Equal(s.T(), 9*60, blocks[0].StartTime)
	assert.Equal(s.T(), 21*60+30, blocks[1].EndTime)

	err = s.schedules.LockPosition(s.ctx, "0190a1b2-c3d4-7e5f-8a9b-ffffffffffff")
	s.ErrorIs(err, schedule.ErrPositionNotFound)
}
