package schedule

import "time"

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Weekday) IsValid() bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

const (
	MinBlockMinutes     = 15
	MaxBlockMinutes     = 720
	MaxBlocksPerWeekday = 10
	MaxBlocksPerWeek    = 50
)

// PositionScheduleBlock is one recurring entry of a position's weekly template.
// StartTime and EndTime are minutes since midnight.
type PositionScheduleBlock struct {
	ID          string
	PositionID  string
	Weekday     Weekday
	Title       string
	Description *string
	StartTime   int
	EndTime     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b PositionScheduleBlock) DurationMinutes() int {
	return b.EndTime - b.StartTime
}
