package employee

import (
	"time"
)

type Employee struct {
	ID         string
	CompanyID  string
	StoreID    *string
	PositionID *string
	FullName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store is the employee's assigned workplace. Its coordinates are the fallback geofence.
type Store struct {
	ID        string
	CompanyID string
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// Location returns the store timezone, UTC when unset or unknown.
func (s Store) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedLocation is an extra clock-in zone granted to a single employee.
type AllowedLocation struct {
	ID         string
	EmployeeID string
	Name       string
	Latitude   float64
	Longitude  float64
	ValidFrom  *time.Time // date only
	ValidUntil *time.Time // date only, inclusive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActiveOn reports whether the validity window contains the calendar day of t.
func (l AllowedLocation) IsActiveOn(t time.Time) bool {
	day := t.Format("2006-01-02")
	if l.ValidFrom != nil && day < l.ValidFrom.Format("2006-01-02") {
		return false
	}
	if l.ValidUntil != nil && day > l.ValidUntil.Format("2006-01-02") {
		return false
	}
	return true
}
