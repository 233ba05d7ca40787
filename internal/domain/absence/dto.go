package absence

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

const (
	timeLayout = "2006-01-02T15:04:05Z07:00"

	MinLunchMinutes = 1
	MaxLunchMinutes = 240
	MaxReasonLength = 1000
)

type RequestAbsenceRequest struct {
	EmployeeID    string  `json:"-"`
	AbsenceTypeID string  `json:"absence_type_id"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Timezone      string  `json:"timezone"`
	Reason        *string `json:"reason,omitempty"`
}

func (r *RequestAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.AbsenceTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_type_id",
			Message: "absence_type_id is required",
		})
	} else if !validator.IsValidUUID(r.AbsenceTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_type_id",
			Message: "absence_type_id must be a valid UUID",
		})
	}

	loc, tzOK := validator.IsValidTimezone(r.Timezone)
	if validator.IsEmpty(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone is required",
		})
	} else if !tzOK {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	if loc == nil {
		loc = time.UTC
	}
	start, startOK := validator.ParseLocalDateTime(r.Start, loc)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be a local date time like 2006-01-02 15:04",
		})
	}
	end, endOK := validator.ParseLocalDateTime(r.End, loc)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be a local date time like 2006-01-02 15:04",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: ErrInvalidTimeRange.Error(),
		})
	}

	if r.Reason != nil && len(*r.Reason) > MaxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Interval converts the local start and end to UTC. Call after Validate.
func (r *RequestAbsenceRequest) Interval() (start, end time.Time, loc *time.Location, err error) {
	loc, ok := validator.IsValidTimezone(r.Timezone)
	if !ok {
		return time.Time{}, time.Time{}, nil, validator.ValidationErrors{{Field: "timezone", Message: "timezone must be a valid IANA timezone name"}}
	}
	start, startOK := validator.ParseLocalDateTime(r.Start, loc)
	end, endOK := validator.ParseLocalDateTime(r.End, loc)
	if !startOK || !endOK {
		return time.Time{}, time.Time{}, nil, validator.ValidationErrors{{Field: "start", Message: "start and end must be local date times"}}
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, nil, ErrInvalidTimeRange
	}
	return start.UTC(), end.UTC(), loc, nil
}

type LunchBreakRequest struct {
	EmployeeID      string  `json:"-"`
	DurationMinutes int     `json:"duration_minutes"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

func (r *LunchBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.DurationMinutes < MinLunchMinutes || r.DurationMinutes > MaxLunchMinutes {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_minutes",
			Message: "duration_minutes must be between 1 and 240",
		})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(r.Longitude) {
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

type ReviewRequest struct {
	AbsenceID  string `json:"-"`
	ReviewerID string `json:"-"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.AbsenceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if !validator.IsValidUUID(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListAbsencesFilter bounds are calendar dates (YYYY-MM-DD) interpreted in UTC.
type ListAbsencesFilter struct {
	EmployeeID string
	From       *string
	To         *string
}

func (f *ListAbsencesFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if f.From != nil && !isDate(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	if f.To != nil && !isDate(*f.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 && f.From != nil && f.To != nil && *f.To < *f.From {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func isDate(value string) bool {
	_, ok := validator.IsValidDate(value)
	return ok
}

type AbsenceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	AbsenceTypeID string  `json:"absence_type_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Status        Status  `json:"status"`
	Reason        *string `json:"reason,omitempty"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func NewAbsenceResponse(a Absence) AbsenceResponse {
	resp := AbsenceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		AbsenceTypeID: a.AbsenceTypeID,
		StartTime:     a.StartTime.UTC().Format(timeLayout),
		EndTime:       a.EndTime.UTC().Format(timeLayout),
		Status:        a.Status,
		Reason:        a.Reason,
		ReviewedBy:    a.ReviewedBy,
		CreatedAt:     a.CreatedAt.UTC().Format(timeLayout),
	}
	if a.ReviewedAt != nil {
		reviewed := a.ReviewedAt.UTC().Format(timeLayout)
		resp.ReviewedAt = &reviewed
	}
	return resp
}

type LunchBreakResponse struct {
	Absence      AbsenceResponse `json:"absence"`
	Message      string          `json:"message"`
	ClockedOut   bool            `json:"clocked_out"`
	BreakEndTime string          `json:"break_end_time"`
}
