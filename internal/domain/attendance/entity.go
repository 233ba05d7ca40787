package attendance

import (
	"time"
)

// WorkPeriod is one clock-in/clock-out span. ClockOut == nil means the period is open.
type WorkPeriod struct {
	ID                 string
	EmployeeID         string
	ClockIn            time.Time
	ClockOut           *time.Time
	ClockInLatitude    float64
	ClockInLongitude   float64
	ClockOutLatitude   *float64
	ClockOutLongitude  *float64
	WorkHoursInMinutes *int
	AutoClockedOut     bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (w WorkPeriod) IsOpen() bool {
	return w.ClockOut == nil
}
