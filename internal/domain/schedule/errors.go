package schedule

import "errors"

var (
	ErrPositionNotFound = errors.New("position not found")
	ErrEmptySchedule    = errors.New("schedule must contain at least one block")
)
