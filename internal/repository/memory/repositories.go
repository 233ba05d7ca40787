package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
)

func (s *Store) Employees() employee.EmployeeRepository { return employeeRepo{s} }
func (s *Store) WorkPeriods() attendance.WorkPeriodRepository { return workPeriodRepo{s} }
func (s *Store) Breaks() breaks.BreakRepository { return breakRepo{s} }
func (s *Store) Absences() absence.AbsenceRepository { return absenceRepo{s} }
func (s *Store) AbsenceTypes() absence.AbsenceTypeRepository { return absenceTypeRepo{s} }
func (s *Store) Schedules() schedule.ScheduleRepository { return scheduleRepo{s} }

type employeeRepo struct{ s *Store }

func (r employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// LockForUpdate is a lookup: transactions are already serialized by the store.
func (r employeeRepo) LockForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r employeeRepo) GetStore(ctx context.Context, storeID string) (employee.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.data.stores[storeID]
	if !ok {
		return employee.Store{}, employee.ErrStoreNotFound
	}
	return st, nil
}

func (r employeeRepo) ListAllowedLocations(ctx context.Context, employeeID string) ([]employee.AllowedLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []employee.AllowedLocation
	for _, l := range r.s.data.locations {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b employee.AllowedLocation) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

type workPeriodRepo struct{ s *Store }

func (r workPeriodRepo) Create(ctx context.Context, period attendance.WorkPeriod) (attendance.WorkPeriod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.data.workPeriods {
		if w.EmployeeID == period.EmployeeID && w.IsOpen() {
			return attendance.WorkPeriod{}, attendance.ErrAlreadyClockedIn
		}
	}
	period.ID = newID()
	now := time.Now().UTC()
	period.CreatedAt, period.UpdatedAt = now, now
	r.s.data.workPeriods[period.ID] = period
	return period, nil
}

func (r workPeriodRepo) Close(ctx context.Context, period attendance.WorkPeriod) (attendance.WorkPeriod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.workPeriods[period.ID]
	if !ok {
		return attendance.WorkPeriod{}, attendance.ErrWorkPeriodNotFound
	}
	if !current.IsOpen() {
		return attendance.WorkPeriod{}, attendance.ErrNotClockedIn
	}
	current.ClockOut = period.ClockOut
	current.ClockOutLatitude = period.ClockOutLatitude
	current.ClockOutLongitude = period.ClockOutLongitude
	current.WorkHoursInMinutes = period.WorkHoursInMinutes
	current.AutoClockedOut = period.AutoClockedOut
	current.UpdatedAt = time.Now().UTC()
	r.s.data.workPeriods[current.ID] = current
	return current, nil
}

func (r workPeriodRepo) GetByID(ctx context.Context, id string) (attendance.WorkPeriod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.data.workPeriods[id]
	if !ok {
		return attendance.WorkPeriod{}, attendance.ErrWorkPeriodNotFound
	}
	return w, nil
}

func (r workPeriodRepo) FindOpenFor(ctx context.Context, employeeID string) (*attendance.WorkPeriod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.data.workPeriods {
		if w.EmployeeID == employeeID && w.IsOpen() {
			return &w, nil
		}
	}
	return nil, nil
}

type breakRepo struct{ s *Store }

func (r breakRepo) Create(ctx context.Context, b breaks.Break) (breaks.Break, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.breaks {
		if existing.EmployeeID == b.EmployeeID && existing.IsOpen() {
			return breaks.Break{}, breaks.ErrBreakAlreadyActive
		}
	}
	b.ID = newID()
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.data.breaks[b.ID] = b
	return b, nil
}

func (r breakRepo) Close(ctx context.Context, b breaks.Break) (breaks.Break, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.breaks[b.ID]
	if !ok {
		return breaks.Break{}, breaks.ErrBreakNotFound
	}
	if !current.IsOpen() {
		return breaks.Break{}, breaks.ErrNoActiveBreak
	}
	current.EndTime = b.EndTime
	current.EndLatitude = b.EndLatitude
	current.EndLongitude = b.EndLongitude
	current.DurationMinutes = b.DurationMinutes
	current.UpdatedAt = time.Now().UTC()
	r.s.data.breaks[current.ID] = current
	return current, nil
}

func (r breakRepo) FindOpenFor(ctx context.Context, employeeID string) (*breaks.Break, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.data.breaks {
		if b.EmployeeID == employeeID && b.IsOpen() {
			return &b, nil
		}
	}
	return nil, nil
}

func (r breakRepo) ListStartedBetween(ctx context.Context, employeeID string, from, to time.Time) ([]breaks.Break, error) {
	return r.list(func(b breaks.Break) bool {
		return b.EmployeeID == employeeID && !b.StartTime.Before(from) && b.StartTime.Before(to)
	}), nil
}

func (r breakRepo) ListByWorkPeriod(ctx context.Context, workPeriodID string) ([]breaks.Break, error) {
	return r.list(func(b breaks.Break) bool { return b.WorkPeriodID == workPeriodID }), nil
}

func (r breakRepo) list(keep func(breaks.Break) bool) []breaks.Break {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []breaks.Break
	for _, b := range r.s.data.breaks {
		if keep(b) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b breaks.Break) int { return a.StartTime.Compare(b.StartTime) })
	return out
}

type absenceRepo struct{ s *Store }

func (r absenceRepo) Create(ctx context.Context, a absence.Absence) (absence.Absence, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.CountsAgainstQuota() {
		for _, existing := range r.s.data.absences {
			if existing.EmployeeID == a.EmployeeID && existing.CountsAgainstQuota() && existing.Overlaps(a.StartTime, a.EndTime) {
				return absence.Absence{}, absence.ErrOverlapDetected
			}
		}
	}
	a.ID = newID()
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.data.absences[a.ID] = a
	return a, nil
}

func (r absenceRepo) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.absences[id]
	if !ok {
		return absence.Absence{}, absence.ErrAbsenceNotFound
	}
	return a, nil
}

func (r absenceRepo) GetByIDForUpdate(ctx context.Context, id string) (absence.Absence, error) {
	return r.GetByID(ctx, id)
}

func (r absenceRepo) UpdateStatus(ctx context.Context, a absence.Absence) (absence.Absence, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.absences[a.ID]
	if !ok {
		return absence.Absence{}, absence.ErrAbsenceNotFound
	}
	current.Status = a.Status
	current.ReviewedBy = a.ReviewedBy
	current.ReviewedAt = a.ReviewedAt
	current.UpdatedAt = time.Now().UTC()
	r.s.data.absences[current.ID] = current
	return current, nil
}

func (r absenceRepo) ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) ([]absence.Absence, error) {
	return r.list(func(a absence.Absence) bool {
		if excludeID != nil && a.ID == *excludeID {
			return false
		}
		return a.EmployeeID == employeeID && a.CountsAgainstQuota() && a.Overlaps(start, end)
	}), nil
}

func (r absenceRepo) ListByTypeBetween(ctx context.Context, employeeID, absenceTypeID string, start, end time.Time) ([]absence.Absence, error) {
	return r.list(func(a absence.Absence) bool {
		return a.EmployeeID == employeeID && a.AbsenceTypeID == absenceTypeID && a.CountsAgainstQuota() && a.Overlaps(start, end)
	}), nil
}

func (r absenceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]absence.Absence, error) {
	return r.list(func(a absence.Absence) bool {
		if a.EmployeeID != employeeID {
			return false
		}
		if from != nil && !a.EndTime.After(*from) {
			return false
		}
		if to != nil && !a.StartTime.Before(*to) {
			return false
		}
		return true
	}), nil
}

func (r absenceRepo) list(keep func(absence.Absence) bool) []absence.Absence {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []absence.Absence
	for _, a := range r.s.data.absences {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b absence.Absence) int { return a.StartTime.Compare(b.StartTime) })
	return out
}

type absenceTypeRepo struct{ s *Store }

func (r absenceTypeRepo) GetByID(ctx context.Context, id string) (absence.AbsenceType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.data.absenceTypes[id]
	if !ok {
		return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
	}
	return t, nil
}

func (r absenceTypeRepo) FindBreakType(ctx context.Context, companyID string) (*absence.AbsenceType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.data.absenceTypes {
		if t.CompanyID == companyID && t.IsBreak {
			return &t, nil
		}
	}
	return nil, nil
}

func (r absenceTypeRepo) ListByCompany(ctx context.Context, companyID string) ([]absence.AbsenceType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []absence.AbsenceType
	for _, t := range r.s.data.absenceTypes {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b absence.AbsenceType) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r absenceTypeRepo) Create(ctx context.Context, t absence.AbsenceType) (absence.AbsenceType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.absenceTypes {
		if existing.CompanyID != t.CompanyID {
			continue
		}
		if strings.EqualFold(existing.Name, t.Name) || (existing.IsBreak && t.IsBreak) {
			return absence.AbsenceType{}, absence.ErrAbsenceTypeExists
		}
	}
	t.ID = newID()
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.data.absenceTypes[t.ID] = t
	return t, nil
}

type scheduleRepo struct{ s *Store }

func (r scheduleRepo) LockPosition(ctx context.Context, positionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.positions[positionID]; !ok {
		return schedule.ErrPositionNotFound
	}
	return nil
}

func (r scheduleRepo) DeleteByPosition(ctx context.Context, positionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, b := range r.s.data.blocks {
		if b.PositionID == positionID {
			delete(r.s.data.blocks, id)
		}
	}
	return nil
}

func (r scheduleRepo) CreateBlocks(ctx context.Context, blocks []schedule.PositionScheduleBlock) ([]schedule.PositionScheduleBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	out := make([]schedule.PositionScheduleBlock, 0, len(blocks))
	for _, b := range blocks {
		b.ID = newID()
		b.CreatedAt, b.UpdatedAt = now, now
		r.s.data.blocks[b.ID] = b
		out = append(out, b)
	}
	return out, nil
}

func (r scheduleRepo) ListByPosition(ctx context.Context, positionID string) ([]schedule.PositionScheduleBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []schedule.PositionScheduleBlock
	for _, b := range r.s.data.blocks {
		if b.PositionID == positionID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b schedule.PositionScheduleBlock) int {
		if d := slices.Index(schedule.Weekdays, a.Weekday) - slices.Index(schedule.Weekdays, b.Weekday); d != 0 {
			return d
		}
		return a.StartTime - b.StartTime
	})
	return out, nil
}
