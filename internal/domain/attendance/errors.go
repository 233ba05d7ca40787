package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn   = errors.New("you are already clocked in")
	ErrNotClockedIn       = errors.New("you are not clocked in")
	ErrLocationRejected   = errors.New("you are outside every allowed location")
	ErrWorkPeriodNotFound = errors.New("work period not found")
)
