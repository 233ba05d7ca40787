package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// LockForUpdate takes a row lock on the employee inside the current transaction.
	// Every attendance mutation for one employee is serialized behind this lock.
	LockForUpdate(ctx context.Context, id string) (Employee, error)

	GetStore(ctx context.Context, storeID string) (Store, error)
	ListAllowedLocations(ctx context.Context, employeeID string) ([]AllowedLocation, error)
}
