package absence

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// AbsenceType is company configuration, read-only to the trackers.
type AbsenceType struct {
	ID                 string
	CompanyID          string
	Name               string
	IsPaid             bool
	IsBreak            bool
	RequiresValidation bool
	MaxPerDay          *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InitialStatus is the status a regular request of this type starts in.
func (t AbsenceType) InitialStatus() Status {
	if t.RequiresValidation {
		return StatusPending
	}
	return StatusApproved
}

// Absence covers the half-open interval [StartTime, EndTime), both UTC.
type Absence struct {
	ID            string
	EmployeeID    string
	AbsenceTypeID string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	Reason        *string
	ReviewedBy    *string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Overlaps reports whether [start, end) intersects the absence.
func (a Absence) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// Touches reports whether the absence intersects the day [dayStart, dayEnd).
func (a Absence) Touches(dayStart, dayEnd time.Time) bool {
	return a.Overlaps(dayStart, dayEnd)
}

// CountsAgainstQuota is false for rejected absences, which neither block
// overlapping requests nor consume per-day quota.
func (a Absence) CountsAgainstQuota() bool {
	return a.Status != StatusRejected
}
