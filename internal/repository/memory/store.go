// Package memory is an in-process implementation of the repository ports. It
// enforces the same single-open-record and no-overlap rules as the PostgreSQL
// schema and is used by service and handler tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
)

type state struct {
	employees    map[string]employee.Employee
	stores       map[string]employee.Store
	locations    map[string]employee.AllowedLocation
	workPeriods  map[string]attendance.WorkPeriod
	breaks       map[string]breaks.Break
	absences     map[string]absence.Absence
	absenceTypes map[string]absence.AbsenceType
	positions    map[string]struct{}
	blocks       map[string]schedule.PositionScheduleBlock
}

func (s state) clone() state {
	return state{
		employees:    maps.Clone(s.employees),
		stores:       maps.Clone(s.stores),
		locations:    maps.Clone(s.locations),
		workPeriods:  maps.Clone(s.workPeriods),
		breaks:       maps.Clone(s.breaks),
		absences:     maps.Clone(s.absences),
		absenceTypes: maps.Clone(s.absenceTypes),
		positions:    maps.Clone(s.positions),
		blocks:       maps.Clone(s.blocks),
	}
}

// Store holds every table. Records are stored by value and replaced on
// update, so a shallow clone is a consistent snapshot for rollback.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data state
}

func NewStore() *Store {
	return &Store{
		data: state{
			employees:    make(map[string]employee.Employee),
			stores:       make(map[string]employee.Store),
			locations:    make(map[string]employee.AllowedLocation),
			workPeriods:  make(map[string]attendance.WorkPeriod),
			breaks:       make(map[string]breaks.Break),
			absences:     make(map[string]absence.Absence),
			absenceTypes: make(map[string]absence.AbsenceType),
			positions:    make(map[string]struct{}),
			blocks:       make(map[string]schedule.PositionScheduleBlock),
		},
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type txKey struct{}

// WithinTransaction serializes transactions and restores the snapshot taken at
// begin when fn fails. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Seed helpers. They bypass transactions and fill in ids and timestamps.

func (s *Store) AddEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = newID()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	s.data.employees[e.ID] = e
	return e
}

func (s *Store) AddStore(st employee.Store) employee.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" {
		st.ID = newID()
	}
	s.data.stores[st.ID] = st
	return st
}

func (s *Store) AddAllowedLocation(l employee.AllowedLocation) employee.AllowedLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = newID()
	}
	s.data.locations[l.ID] = l
	return l
}

func (s *Store) AddPosition(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.positions[id] = struct{}{}
}

// WorkPeriodCount returns all periods of the employee and how many are open.
func (s *Store) WorkPeriodCount(employeeID string) (total, open int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.data.workPeriods {
		if w.EmployeeID != employeeID {
			continue
		}
		total++
		if w.IsOpen() {
			open++
		}
	}
	return total, open
}

// AbsenceCount returns the number of absences stored for the employee.
func (s *Store) AbsenceCount(employeeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.data.absences {
		if a.EmployeeID == employeeID {
			n++
		}
	}
	return n
}
