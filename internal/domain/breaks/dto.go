package breaks

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type StartBreakRequest struct {
	EmployeeID string   `json:"-"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *StartBreakRequest) Validate() error {
	return validateBreakRequest(r.EmployeeID, r.Latitude, r.Longitude)
}

type EndBreakRequest struct {
	EmployeeID string   `json:"-"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *EndBreakRequest) Validate() error {
	return validateBreakRequest(r.EmployeeID, r.Latitude, r.Longitude)
}

func validateBreakRequest(employeeID string, latitude, longitude *float64) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Coordinates are optional but come as a pair.
	if (latitude == nil) != (longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: "latitude and longitude must be provided together",
		})
	}
	if latitude != nil && !validator.IsValidLatitude(*latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if longitude != nil && !validator.IsValidLongitude(*longitude) {
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

type BreakResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	WorkPeriodID    string   `json:"work_period_id"`
	AbsenceTypeID   string   `json:"absence_type_id"`
	StartTime       string   `json:"start_time"`
	EndTime         *string  `json:"end_time,omitempty"`
	StartLatitude   *float64 `json:"start_latitude,omitempty"`
	StartLongitude  *float64 `json:"start_longitude,omitempty"`
	EndLatitude     *float64 `json:"end_latitude,omitempty"`
	EndLongitude    *float64 `json:"end_longitude,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Duration        *string  `json:"duration,omitempty"`
}

func NewBreakResponse(b Break) BreakResponse {
	resp := BreakResponse{
		ID:              b.ID,
		EmployeeID:      b.EmployeeID,
		WorkPeriodID:    b.WorkPeriodID,
		AbsenceTypeID:   b.AbsenceTypeID,
		StartTime:       b.StartTime.UTC().Format("2006-01-02T15:04:05Z07:00"),
		StartLatitude:   b.StartLatitude,
		StartLongitude:  b.StartLongitude,
		EndLatitude:     b.EndLatitude,
		EndLongitude:    b.EndLongitude,
		DurationMinutes: b.DurationMinutes,
	}
	if b.EndTime != nil {
		end := b.EndTime.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.EndTime = &end
	}
	if b.DurationMinutes != nil {
		formatted := FormatMinutes(*b.DurationMinutes)
		resp.Duration = &formatted
	}
	return resp
}
