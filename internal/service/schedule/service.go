package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

const maxTitleLength = 100

type scheduleServiceImpl struct {
	tx        database.Transactor
	schedules schedule.ScheduleRepository
}

// parsedBlock is a block whose times passed format and ordering checks.
type parsedBlock struct {
	index int
	input schedule.BlockInput
	start int
	end   int
}

// ValidateWeeklySchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ValidateWeeklySchedule(ctx context.Context, positionID string, blocks schedule.WeeklyBlocks) error {
	_, err := validateWeek(positionID, blocks)
	return err
}

// validateWeek checks the whole week and returns the blocks ready to persist.
func validateWeek(positionID string, blocks schedule.WeeklyBlocks) ([]schedule.PositionScheduleBlock, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(positionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "position_id",
			Message: "position_id is required",
		})
	}

	unknown := make([]string, 0)
	total := 0
	for day, list := range blocks {
		if !day.IsValid() {
			unknown = append(unknown, string(day))
			continue
		}
		total += len(list)
	}
	slices.Sort(unknown)
	for _, day := range unknown {
		errs = append(errs, validator.ValidationError{
			Field:   "blocks." + day,
			Message: fmt.Sprintf("%q is not a weekday", day),
		})
	}

	if total == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "blocks",
			Message: schedule.ErrEmptySchedule.Error(),
		})
	}
	if total > schedule.MaxBlocksPerWeek {
		errs = append(errs, validator.ValidationError{
			Field:   "blocks",
			Message: fmt.Sprintf("a week may contain at most %d blocks, got %d", schedule.MaxBlocksPerWeek, total),
		})
	}

	var result []schedule.PositionScheduleBlock
	for _, day := range schedule.Weekdays {
		list := blocks[day]
		if len(list) > schedule.MaxBlocksPerWeekday {
			errs = append(errs, validator.ValidationError{
				Field:   "blocks." + string(day),
				Message: fmt.Sprintf("%s may contain at most %d blocks, got %d", day, schedule.MaxBlocksPerWeekday, len(list)),
			})
		}

		parsed, blockErrs := validateDay(day, list)
		errs = append(errs, blockErrs...)
		errs = append(errs, findOverlaps(day, parsed)...)

		for _, p := range parsed {
			result = append(result, schedule.PositionScheduleBlock{
				PositionID:  positionID,
				Weekday:     day,
				Title:       strings.TrimSpace(p.input.Title),
				Description: p.input.Description,
				StartTime:   p.start,
				EndTime:     p.end,
			})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}

func validateDay(day schedule.Weekday, list []schedule.BlockInput) ([]parsedBlock, validator.ValidationErrors) {
	var (
		errs   validator.ValidationErrors
		parsed []parsedBlock
	)

	for i, b := range list {
		field := fmt.Sprintf("blocks.%s[%d]", day, i)

		title := strings.TrimSpace(b.Title)
		if title == "" {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".title",
				Message: "title is required",
			})
		} else if len(title) > maxTitleLength {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".title",
				Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
			})
		}

		start, startOK := validator.IsValidTime(b.StartTime)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
		end, endOK := validator.IsValidTime(b.EndTime)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
		if !startOK || !endOK {
			continue
		}

		if end <= start {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".end_time",
				Message: "end_time must be after start_time",
			})
			continue
		}

		duration := end - start
		if duration < schedule.MinBlockMinutes || duration > schedule.MaxBlockMinutes {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".end_time",
				Message: fmt.Sprintf("block duration must be between %d and %d minutes, got %d", schedule.MinBlockMinutes, schedule.MaxBlockMinutes, duration),
			})
			continue
		}

		parsed = append(parsed, parsedBlock{index: i, input: b, start: start, end: end})
	}

	return parsed, errs
}

// findOverlaps reports each later block that intersects an earlier one.
func findOverlaps(day schedule.Weekday, parsed []parsedBlock) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i := 0; i < len(parsed); i++ {
		for j := i + 1; j < len(parsed); j++ {
			a, b := parsed[i], parsed[j]
			if a.start < b.end && b.start < a.end {
				errs = append(errs, validator.ValidationError{
					Field:   fmt.Sprintf("blocks.%s[%d].start_time", day, b.index),
					Message: fmt.Sprintf("%s overlaps with %s", describe(b), describe(a)),
				})
			}
		}
	}
	return errs
}

func describe(p parsedBlock) string {
	return fmt.Sprintf("%q (%s-%s)", strings.TrimSpace(p.input.Title), schedule.FormatClock(p.start), schedule.FormatClock(p.end))
}

// SavePositionSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) SavePositionSchedule(ctx context.Context, positionID string, blocks schedule.WeeklyBlocks) (schedule.WeeklyScheduleResponse, error) {
	toSave, err := validateWeek(positionID, blocks)
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	var saved []schedule.PositionScheduleBlock
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.schedules.LockPosition(ctx, positionID); err != nil {
			return fmt.Errorf("failed to lock position: %w", err)
		}
		if err := s.schedules.DeleteByPosition(ctx, positionID); err != nil {
			return fmt.Errorf("failed to delete position schedule: %w", err)
		}
		saved, err = s.schedules.CreateBlocks(ctx, toSave)
		if err != nil {
			return fmt.Errorf("failed to create schedule blocks: %w", err)
		}
		return nil
	})
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	slog.Info("position schedule saved", "position_id", positionID, "blocks", len(saved))
	return schedule.NewWeeklyScheduleResponse(positionID, saved), nil
}

// GetPositionSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetPositionSchedule(ctx context.Context, positionID string) (schedule.WeeklyScheduleResponse, error) {
	blocks, err := s.schedules.ListByPosition(ctx, positionID)
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, fmt.Errorf("failed to list position schedule: %w", err)
	}
	return schedule.NewWeeklyScheduleResponse(positionID, blocks), nil
}

func NewScheduleService(tx database.Transactor, scheduleRepo schedule.ScheduleRepository) schedule.ScheduleService {
	return &scheduleServiceImpl{
		tx:        tx,
		schedules: scheduleRepo,
	}
}
