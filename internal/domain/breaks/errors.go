package breaks

import "errors"

var (
	ErrBreakAlreadyActive    = errors.New("a break is already in progress")
	ErrNoActiveBreak         = errors.New("no break is in progress")
	ErrNoBreakTypeConfigured = errors.New("no absence type is configured as a break")
	ErrBreakNotFound         = errors.New("break not found")
)
