package schedule

import "context"

type ScheduleService interface {
	// ValidateWeeklySchedule returns nil or validator.ValidationErrors keyed by
	// weekday and block index.
	ValidateWeeklySchedule(ctx context.Context, positionID string, blocks WeeklyBlocks) error

	// SavePositionSchedule validates and replaces every block of the position.
	SavePositionSchedule(ctx context.Context, positionID string, blocks WeeklyBlocks) (WeeklyScheduleResponse, error)
	GetPositionSchedule(ctx context.Context, positionID string) (WeeklyScheduleResponse, error)
}
