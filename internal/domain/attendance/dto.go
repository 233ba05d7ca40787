package attendance

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID string  `json:"-"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *ClockInRequest) Validate() error {
	return validateClockRequest(r.EmployeeID, r.Latitude, r.Longitude)
}

type ClockOutRequest struct {
	EmployeeID string  `json:"-"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *ClockOutRequest) Validate() error {
	return validateClockRequest(r.EmployeeID, r.Latitude, r.Longitude)
}

func validateClockRequest(employeeID string, latitude, longitude float64) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidLatitude(latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkPeriodResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	ClockInTime       string   `json:"clock_in_time"`
	ClockOutTime      *string  `json:"clock_out_time,omitempty"`
	ClockInLatitude   float64  `json:"clock_in_latitude"`
	ClockInLongitude  float64  `json:"clock_in_longitude"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	WorkingMinutes    *int     `json:"working_minutes,omitempty"`
	AutoClockedOut    bool     `json:"auto_clocked_out"`
	IsOpen            bool     `json:"is_open"`
}

// NewWorkPeriodResponse maps a WorkPeriod to its API shape. Timestamps are RFC3339 UTC.
func NewWorkPeriodResponse(w WorkPeriod) WorkPeriodResponse {
	resp := WorkPeriodResponse{
		ID:                w.ID,
		EmployeeID:        w.EmployeeID,
		ClockInTime:       w.ClockIn.UTC().Format(timeLayout),
		ClockInLatitude:   w.ClockInLatitude,
		ClockInLongitude:  w.ClockInLongitude,
		ClockOutLatitude:  w.ClockOutLatitude,
		ClockOutLongitude: w.ClockOutLongitude,
		WorkingMinutes:    w.WorkHoursInMinutes,
		AutoClockedOut:    w.AutoClockedOut,
		IsOpen:            w.IsOpen(),
	}
	if w.ClockOut != nil {
		out := w.ClockOut.UTC().Format(timeLayout)
		resp.ClockOutTime = &out
	}
	return resp
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
