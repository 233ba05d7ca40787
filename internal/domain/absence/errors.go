package absence

import (
	"errors"
	"fmt"
)

var (
	ErrAbsenceNotFound     = errors.New("absence not found")
	ErrAbsenceTypeNotFound = errors.New("absence type not found")
	ErrOverlapDetected     = errors.New("absence overlaps an existing absence")
	ErrDailyLimitReached   = errors.New("daily limit reached for this absence type")
	ErrNotPending          = errors.New("absence is no longer pending")
	ErrNotConfigured       = errors.New("no break absence type is configured")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrAbsenceTypeExists   = errors.New("absence type already exists")
)

// DailyLimitError names the first day on which the type's max_per_day is hit.
type DailyLimitError struct {
	Date  string
	Limit int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily limit of %d reached on %s", e.Limit, e.Date)
}

func (e *DailyLimitError) Is(target error) bool {
	return target == ErrDailyLimitReached
}
