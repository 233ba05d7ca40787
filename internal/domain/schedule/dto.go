package schedule

import "fmt"

type BlockInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
}

// WeeklyBlocks is keyed by lowercase weekday name.
type WeeklyBlocks map[Weekday][]BlockInput

type ScheduleRequest struct {
	Blocks WeeklyBlocks `json:"blocks"`
}

type BlockResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
}

type WeeklyScheduleResponse struct {
	PositionID  string                      `json:"position_id"`
	Blocks      map[Weekday][]BlockResponse `json:"blocks"`
	TotalBlocks int                         `json:"total_blocks"`
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func NewWeeklyScheduleResponse(positionID string, blocks []PositionScheduleBlock) WeeklyScheduleResponse {
	resp := WeeklyScheduleResponse{
		PositionID: positionID,
		Blocks:     make(map[Weekday][]BlockResponse),
	}
	for _, b := range blocks {
		resp.Blocks[b.Weekday] = append(resp.Blocks[b.Weekday], BlockResponse{
			ID:              b.ID,
			Title:           b.Title,
			Description:     b.Description,
			StartTime:       FormatClock(b.StartTime),
			EndTime:         FormatClock(b.EndTime),
			DurationMinutes: b.DurationMinutes(),
		})
		resp.TotalBlocks++
	}
	return resp
}
