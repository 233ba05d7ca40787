package breaks

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

// Break is a pause nested inside an open work period. EndTime == nil means open.
type Break struct {
	ID              string
	EmployeeID      string
	WorkPeriodID    string
	AbsenceTypeID   string
	StartTime       time.Time
	EndTime         *time.Time
	StartLatitude   *float64
	StartLongitude  *float64
	EndLatitude     *float64
	EndLongitude    *float64
	DurationMinutes *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (b Break) IsOpen() bool {
	return b.EndTime == nil
}

// MinutesAt returns the break length at now, or the persisted duration once closed.
func (b Break) MinutesAt(now time.Time) int {
	if b.DurationMinutes != nil {
		return *b.DurationMinutes
	}
	end := now
	if b.EndTime != nil {
		end = *b.EndTime
	}
	return utils.WholeMinutes(end.Sub(b.StartTime))
}

// FormatMinutes renders "Xh Ymin" from one hour upwards, "Ymin" below.
func FormatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dmin", minutes)
}

// Status is the read-only break state shown to the employee.
type Status struct {
	IsOnBreak            bool    `json:"is_on_break"`
	CanStartBreak        bool    `json:"can_start_break"`
	CanEndBreak          bool    `json:"can_end_break"`
	HasActiveWorkPeriod  bool    `json:"has_active_work_period"`
	CurrentBreakDuration *string `json:"current_break_duration,omitempty"`
	TodayBreakMinutes    int     `json:"today_break_minutes"`
	TodayBreakCount      int     `json:"today_break_count"`
	DailyLimit           *int    `json:"daily_limit,omitempty"`
}
