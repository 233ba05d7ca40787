package employee

import (
	"context"
	"errors"
	"time"
)

// LocationValidator decides whether a point is inside one of the employee's geofences.
// radiusKm <= 0 selects the configured default.
type LocationValidator interface {
	ValidateEmployeeLocation(ctx context.Context, emp Employee, latitude, longitude, radiusKm float64) (bool, error)
}

// StoreLocation resolves the timezone that defines "today" for the employee.
// Employees without a store, or with a missing store, use UTC.
func StoreLocation(ctx context.Context, repo EmployeeRepository, emp Employee) (*time.Location, error) {
	if emp.StoreID == nil {
		return time.UTC, nil
	}
	store, err := repo.GetStore(ctx, *emp.StoreID)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return time.UTC, nil
		}
		return nil, err
	}
	return store.Location(), nil
}
