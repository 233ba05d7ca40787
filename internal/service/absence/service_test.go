package absence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	attendancesvc "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/geofence"
)

const (
	storeLat = -6.175392
	storeLon = 106.827153

	managerID      = "0190a8b2-0000-7000-8000-00000000000a"
	otherManagerID = "0190a8b2-0000-7000-8000-00000000000b"
)

type AbsenceServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	service *AbsenceServiceImpl
	emp     employee.Employee
	clock   time.Time
}

func (s *AbsenceServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	st := s.store.AddStore(employee.Store{Name: "Thamrin", Latitude: storeLat, Longitude: storeLon, Timezone: "Asia/Jakarta"})
	s.emp = s.store.AddEmployee(employee.Employee{CompanyID: "c1", StoreID: &st.ID, FullName: "Sari"})

	// 12:00 in Jakarta.
	s.clock = time.Date(2024, 6, 3, 5, 0, 0, 0, time.UTC)

	locations := geofence.NewValidator(s.store.Employees(), 0)
	clockOuter := attendancesvc.NewAttendanceService(s.store, s.store.WorkPeriods(), s.store.Breaks(), s.store.Employees(), locations)
	s.service = NewAbsenceService(
		s.store,
		s.store.Absences(),
		s.store.AbsenceTypes(),
		s.store.Employees(),
		s.store.WorkPeriods(),
		locations,
		clockOuter,
	)
	s.service.now = func() time.Time { return s.clock }
}

func (s *AbsenceServiceSuite) addType(t absence.AbsenceType) absence.AbsenceType {
	if t.CompanyID == "" {
		t.CompanyID = s.emp.CompanyID
	}
	created, err := s.store.AbsenceTypes().Create(s.ctx, t)
	s.Require().NoError(err)
	return created
}

func (s *AbsenceServiceSuite) request(typeID, start, end, tz string) (absence.AbsenceResponse, error) {
	return s.service.RequestAbsence(s.ctx, absence.RequestAbsenceRequest{
		EmployeeID:    s.emp.ID,
		AbsenceTypeID: typeID,
		Start:         start,
		End:           end,
		Timezone:      tz,
	})
}

func intPtr(v int) *int { return &v }

func (s *AbsenceServiceSuite) TestRequestAbsence_TimezoneRoundTrip() {
	sick := s.addType(absence.AbsenceType{Name: "Sick leave", RequiresValidation: true})

	resp, err := s.request(sick.ID, "2024-06-01 09:00", "2024-06-01 10:00", "America/New_York")
	s.Require().NoError(err)
	s.Equal("2024-06-01T13:00:00Z", resp.StartTime)
	s.Equal("2024-06-01T14:00:00Z", resp.EndTime)
	s.Equal(absence.StatusPending, resp.Status)
}

func (s *AbsenceServiceSuite) TestRequestAbsence_AutoApprovedWithoutValidation() {
	errand := s.addType(absence.AbsenceType{Name: "Remote errand", IsPaid: true})

	resp, err := s.request(errand.ID, "2024-06-03 13:00", "2024-06-03 15:00", "Asia/Jakarta")
	s.Require().NoError(err)
	s.Equal(absence.StatusApproved, resp.Status)
}

func (s *AbsenceServiceSuite) TestRequestAbsence_Overlap() {
	leave := s.addType(absence.AbsenceType{Name: "Unpaid leave", RequiresValidation: true})

	first, err := s.request(leave.ID, "2024-06-03 09:00", "2024-06-03 10:00", "UTC")
	s.Require().NoError(err)

	_, err = s.request(leave.ID, "2024-06-03 09:30", "2024-06-03 11:00", "UTC")
	s.ErrorIs(err, absence.ErrOverlapDetected)

	// Half-open intervals: touching ends do not overlap.
	_, err = s.request(leave.ID, "2024-06-03 10:00", "2024-06-03 11:00", "UTC")
	s.Require().NoError(err)

	_, err = s.service.Reject(s.ctx, absence.ReviewRequest{AbsenceID: first.ID, ReviewerID: managerID})
	s.Require().NoError(err)

	// Rejected absences free their slot.
	_, err = s.request(leave.ID, "2024-06-03 09:00", "2024-06-03 09:45", "UTC")
	s.NoError(err)
}

func (s *AbsenceServiceSuite) TestRequestAbsence_MaxPerDayUpToCap() {
	errand := s.addType(absence.AbsenceType{Name: "Remote errand", MaxPerDay: intPtr(2)})

	_, err := s.request(errand.ID, "2024-06-03 09:00", "2024-06-03 10:00", "UTC")
	s.Require().NoError(err)
	_, err = s.request(errand.ID, "2024-06-03 11:00", "2024-06-03 12:00", "UTC")
	s.Require().NoError(err)

	_, err = s.request(errand.ID, "2024-06-03 14:00", "2024-06-03 15:00", "UTC")
	s.Require().ErrorIs(err, absence.ErrDailyLimitReached)
	var limitErr *absence.DailyLimitError
	s.Require().True(errors.As(err, &limitErr))
	s.Equal("2024-06-03", limitErr.Date)
	s.Equal(2, limitErr.Limit)

	_, err = s.request(errand.ID, "2024-06-04 09:00", "2024-06-04 10:00", "UTC")
	s.NoError(err)
}

func (s *AbsenceServiceSuite) TestRequestAbsence_MaxPerDayChecksEveryDayOfSpan() {
	annual := s.addType(absence.AbsenceType{Name: "Annual leave", MaxPerDay: intPtr(1)})

	_, err := s.request(annual.ID, "2024-06-04 10:00", "2024-06-04 11:00", "UTC")
	s.Require().NoError(err)

	_, err = s.request(annual.ID, "2024-06-03 09:00", "2024-06-05 17:00", "UTC")
	var limitErr *absence.DailyLimitError
	s.Require().True(errors.As(err, &limitErr))
	s.Equal("2024-06-04", limitErr.Date)
	s.Equal(1, s.store.AbsenceCount(s.emp.ID))
}

func (s *AbsenceServiceSuite) TestRequestAbsence_MaxPerDayUsesRequestTimezone() {
	annual := s.addType(absence.AbsenceType{Name: "Annual leave", MaxPerDay: intPtr(1)})

	// 2024-06-03 23:00-23:30 in Jakarta is 16:00-16:30 UTC on 06-03.
	_, err := s.request(annual.ID, "2024-06-03 23:00", "2024-06-03 23:30", "Asia/Jakarta")
	s.Require().NoError(err)

	// 2024-06-04 00:30 Jakarta is still 06-03 in UTC, but a different local day.
	_, err = s.request(annual.ID, "2024-06-04 00:30", "2024-06-04 01:00", "Asia/Jakarta")
	s.NoError(err)
}

func (s *AbsenceServiceSuite) TestRequestAbsence_ForeignType() {
	foreign := s.addType(absence.AbsenceType{CompanyID: "other-company", Name: "Sick leave"})

	_, err := s.request(foreign.ID, "2024-06-03 09:00", "2024-06-03 10:00", "UTC")
	s.ErrorIs(err, absence.ErrAbsenceTypeNotFound)
}

func (s *AbsenceServiceSuite) TestApproveReject() {
	sick := s.addType(absence.AbsenceType{Name: "Sick leave", RequiresValidation: true})
	resp, err := s.request(sick.ID, "2024-06-03 09:00", "2024-06-03 17:00", "UTC")
	s.Require().NoError(err)

	approved, err := s.service.Approve(s.ctx, absence.ReviewRequest{AbsenceID: resp.ID, ReviewerID: managerID})
	s.Require().NoError(err)
	s.Equal(absence.StatusApproved, approved.Status)
	s.Require().NotNil(approved.ReviewedBy)
	s.Equal(managerID, *approved.ReviewedBy)
	s.Require().NotNil(approved.ReviewedAt)
	s.Equal("2024-06-03T05:00:00Z", *approved.ReviewedAt)

	_, err = s.service.Approve(s.ctx, absence.ReviewRequest{AbsenceID: resp.ID, ReviewerID: managerID})
	s.ErrorIs(err, absence.ErrNotPending)
	_, err = s.service.Reject(s.ctx, absence.ReviewRequest{AbsenceID: resp.ID, ReviewerID: otherManagerID})
	s.ErrorIs(err, absence.ErrNotPending)

	got, err := s.service.GetAbsence(s.ctx, resp.ID)
	s.Require().NoError(err)
	s.Equal(absence.StatusApproved, got.Status)
}

func (s *AbsenceServiceSuite) TestTakeLunchBreak_ClocksOut() {
	s.addType(absence.AbsenceType{Name: "Break", IsBreak: true, RequiresValidation: true, MaxPerDay: intPtr(3)})
	_, err := s.store.WorkPeriods().Create(s.ctx, attendance.WorkPeriod{EmployeeID: s.emp.ID, ClockIn: s.clock.Add(-4 * time.Hour)})
	s.Require().NoError(err)

	lat := offsetNorth(storeLat, 100)
	resp, err := s.service.TakeLunchBreak(s.ctx, absence.LunchBreakRequest{EmployeeID: s.emp.ID, DurationMinutes: 30, Latitude: lat, Longitude: storeLon})
	s.Require().NoError(err)
	s.True(resp.ClockedOut)
	s.Equal(absence.StatusApproved, resp.Absence.Status)
	s.Equal("2024-06-03T05:00:00Z", resp.Absence.StartTime)
	s.Equal("2024-06-03T05:30:00Z", resp.Absence.EndTime)
	s.Equal("2024-06-03T05:30:00Z", resp.BreakEndTime)
	s.Contains(resp.Message, "12:30")

	open, err := s.store.WorkPeriods().FindOpenFor(s.ctx, s.emp.ID)
	s.Require().NoError(err)
	s.Nil(open)

	total, _ := s.store.WorkPeriodCount(s.emp.ID)
	s.Equal(1, total)
}

func (s *AbsenceServiceSuite) TestTakeLunchBreak_NotClockedIn() {
	s.addType(absence.AbsenceType{Name: "Break", IsBreak: true})

	resp, err := s.service.TakeLunchBreak(s.ctx, absence.LunchBreakRequest{EmployeeID: s.emp.ID, DurationMinutes: 45, Latitude: storeLat, Longitude: storeLon})
	s.Require().NoError(err)
	s.False(resp.ClockedOut)
	s.Equal("2024-06-03T05:45:00Z", resp.BreakEndTime)
}

func (s *AbsenceServiceSuite) TestTakeLunchBreak_NotConfigured() {
	_, err := s.service.TakeLunchBreak(s.ctx, absence.LunchBreakRequest{EmployeeID: s.emp.ID, DurationMinutes: 30, Latitude: storeLat, Longitude: storeLon})
	s.ErrorIs(err, absence.ErrNotConfigured)
}

func (s *AbsenceServiceSuite) TestTakeLunchBreak_LocationRejectedLeavesPeriodOpen() {
	s.addType(absence.AbsenceType{Name: "Break", IsBreak: true})
	_, err := s.store.WorkPeriods().Create(s.ctx, attendance.WorkPeriod{EmployeeID: s.emp.ID, ClockIn: s.clock.Add(-time.Hour)})
	s.Require().NoError(err)

	_, err = s.service.TakeLunchBreak(s.ctx, absence.LunchBreakRequest{
		EmployeeID:      s.emp.ID,
		DurationMinutes: 30,
		Latitude:        offsetNorth(storeLat, 600),
		Longitude:       storeLon,
	})
	s.ErrorIs(err, attendance.ErrLocationRejected)

	open, err := s.store.WorkPeriods().FindOpenFor(s.ctx, s.emp.ID)
	s.Require().NoError(err)
	s.NotNil(open)
	s.Equal(0, s.store.AbsenceCount(s.emp.ID))
}

func (s *AbsenceServiceSuite) TestTakeLunchBreak_DailyLimit() {
	s.addType(absence.AbsenceType{Name: "Break", IsBreak: true, MaxPerDay: intPtr(1)})

	_, err := s.service.TakeLunchBreak(s.ctx, absence.LunchBreakRequest{EmployeeID: s.emp.ID, DurationMinutes: 30, Latitude: storeLat, Longitude: storeLon})
	s.Require().NoError(err)

	s.clock = s.clock.Add(2 * time.Hour)
	_, err = s.service.TakeLunchBreak(s.ctx, absence.LunchBreakRequest{EmployeeID: s.emp.ID, DurationMinutes: 30, Latitude: storeLat, Longitude: storeLon})
	s.ErrorIs(err, absence.ErrDailyLimitReached)
}

func (s *AbsenceServiceSuite) TestTakeLunchBreak_OverlapKeepsPeriodOpen() {
	leave := s.addType(absence.AbsenceType{Name: "Unpaid leave"})
	s.addType(absence.AbsenceType{Name: "Break", IsBreak: true})
	_, err := s.request(leave.ID, "2024-06-03 12:15", "2024-06-03 13:00", "Asia/Jakarta")
	s.Require().NoError(err)
	_, err = s.store.WorkPeriods().Create(s.ctx, attendance.WorkPeriod{EmployeeID: s.emp.ID, ClockIn: s.clock.Add(-time.Hour)})
	s.Require().NoError(err)

	_, err = s.service.TakeLunchBreak(s.ctx, absence.LunchBreakRequest{EmployeeID: s.emp.ID, DurationMinutes: 30, Latitude: storeLat, Longitude: storeLon})
	s.ErrorIs(err, absence.ErrOverlapDetected)

	open, err := s.store.WorkPeriods().FindOpenFor(s.ctx, s.emp.ID)
	s.Require().NoError(err)
	s.NotNil(open)
}

func (s *AbsenceServiceSuite) TestListMyAbsences() {
	leave := s.addType(absence.AbsenceType{Name: "Unpaid leave"})
	_, err := s.request(leave.ID, "2024-06-03 09:00", "2024-06-03 10:00", "UTC")
	s.Require().NoError(err)
	_, err = s.request(leave.ID, "2024-06-10 09:00", "2024-06-10 10:00", "UTC")
	s.Require().NoError(err)

	from, to := "2024-06-01", "2024-06-03"
	list, err := s.service.ListMyAbsences(s.ctx, absence.ListAbsencesFilter{EmployeeID: s.emp.ID, From: &from, To: &to})
	s.Require().NoError(err)
	s.Len(list, 1)

	all, err := s.service.ListMyAbsences(s.ctx, absence.ListAbsencesFilter{EmployeeID: s.emp.ID})
	s.Require().NoError(err)
	s.Len(all, 2)
}

func TestAbsenceServiceSuite(t *testing.T) {
	suite.Run(t, new(AbsenceServiceSuite))
}
