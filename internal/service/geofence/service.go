package geofence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

const DefaultRadiusKm = 0.5

// IsWithinRadius reports whether the point lies within radiusKm of the center.
// The boundary counts as inside.
func IsWithinRadius(pointLat, pointLon, centerLat, centerLon, radiusKm float64) bool {
	distance := utils.CalculateHaversineDistance(pointLat, pointLon, centerLat, centerLon)
	return distance <= radiusKm*1000
}

type Validator struct {
	employees       employee.EmployeeRepository
	defaultRadiusKm float64
	now             func() time.Time
}

func NewValidator(employees employee.EmployeeRepository, defaultRadiusKm float64) *Validator {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultRadiusKm
	}
	return &Validator{
		employees:       employees,
		defaultRadiusKm: defaultRadiusKm,
		now:             time.Now,
	}
}

// ValidateEmployeeLocation implements employee.LocationValidator.
func (v *Validator) ValidateEmployeeLocation(ctx context.Context, emp employee.Employee, latitude, longitude, radiusKm float64) (bool, error) {
	if radiusKm <= 0 {
		radiusKm = v.defaultRadiusKm
	}

	var store *employee.Store
	loc := time.UTC
	if emp.StoreID != nil {
		s, err := v.employees.GetStore(ctx, *emp.StoreID)
		switch {
		case err == nil:
			store = &s
			loc = s.Location()
		case errors.Is(err, employee.ErrStoreNotFound):
			slog.Warn("employee store missing, skipping store geofence", "employee_id", emp.ID, "store_id", *emp.StoreID)
		default:
			return false, fmt.Errorf("failed to get store: %w", err)
		}
	}

	locations, err := v.employees.ListAllowedLocations(ctx, emp.ID)
	if err != nil {
		return false, fmt.Errorf("failed to list allowed locations: %w", err)
	}

	today := v.now().In(loc)
	for _, l := range locations {
		if !l.IsActiveOn(today) {
			continue
		}
		if IsWithinRadius(latitude, longitude, l.Latitude, l.Longitude, radiusKm) {
			return true, nil
		}
	}

	if store == nil {
		return false, nil
	}
	return IsWithinRadius(latitude, longitude, store.Latitude, store.Longitude, radiusKm), nil
}
