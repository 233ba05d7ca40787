package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// LockPosition implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) LockPosition(ctx context.Context, positionID string) error {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `SELECT id FROM positions WHERE id = $1 FOR UPDATE`, positionID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return schedule.ErrPositionNotFound
		}
		return fmt.Errorf("failed to lock position: %w", err)
	}

	return nil
}

// DeleteByPosition implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) DeleteByPosition(ctx context.Context, positionID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM position_schedule_blocks WHERE position_id = $1`, positionID); err != nil {
		return fmt.Errorf("failed to delete schedule blocks: %w", err)
	}

	return nil
}

// CreateBlocks implements schedule.ScheduleRepository. Times are stored as TIME
// built from minutes since midnight.
func (r *scheduleRepositoryImpl) CreateBlocks(ctx context.Context, blocks []schedule.PositionScheduleBlock) ([]schedule.PositionScheduleBlock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO position_schedule_blocks (position_id, weekday, title, description, start_time, end_time)
		VALUES ($1, $2::weekday, $3, $4, make_time($5::int / 60, $5::int % 60, 0), make_time($6::int / 60, $6::int % 60, 0))
		RETURNING id, created_at, updated_at
	`

	created := make([]schedule.PositionScheduleBlock, 0, len(blocks))
	for _, b := range blocks {
		err := q.QueryRow(ctx, query,
			b.PositionID,
			string(b.Weekday),
			b.Title,
			b.Description,
			b.StartTime,
			b.EndTime,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create schedule block: %w", err)
		}
		created = append(created, b)
	}

	return created, nil
}

// ListByPosition implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByPosition(ctx context.Context, positionID string) ([]schedule.PositionScheduleBlock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, position_id, weekday::text, title, description,
			(EXTRACT(HOUR FROM start_time) * 60 + EXTRACT(MINUTE FROM start_time))::int,
			(EXTRACT(HOUR FROM end_time) * 60 + EXTRACT(MINUTE FROM end_time))::int,
			created_at, updated_at
		FROM position_schedule_blocks
		WHERE position_id = $1
		ORDER BY weekday, start_time
	`

	rows, err := q.Query(ctx, query, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule blocks: %w", err)
	}
	defer rows.Close()

	var blocks []schedule.PositionScheduleBlock
	for rows.Next() {
		var b schedule.PositionScheduleBlock
		if err := rows.Scan(
			&b.ID, &b.PositionID, &b.Weekday, &b.Title, &b.Description, &b.StartTime, &b.EndTime, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule blocks: %w", err)
	}

	return blocks, nil
}
