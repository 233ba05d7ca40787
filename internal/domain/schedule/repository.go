package schedule

import "context"

type ScheduleRepository interface {
	// LockPosition takes a row lock on the position. Returns ErrPositionNotFound.
	LockPosition(ctx context.Context, positionID string) error
	DeleteByPosition(ctx context.Context, positionID string) error
	CreateBlocks(ctx context.Context, blocks []PositionScheduleBlock) ([]PositionScheduleBlock, error)
	ListByPosition(ctx context.Context, positionID string) ([]PositionScheduleBlock, error)
}
