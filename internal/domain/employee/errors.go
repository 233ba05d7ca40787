package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrStoreNotFound    = errors.New("store not found")
)
