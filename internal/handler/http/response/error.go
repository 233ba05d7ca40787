package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/facerecognition"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var dailyLimit *absence.DailyLimitError
	if errors.As(err, &dailyLimit) {
		Conflict(w, dailyLimit.Error())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, jwt.ErrEmployeeRequired):
		Forbidden(w, "Token is not bound to an employee")

	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Work period errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "You are already clocked in")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "You are not clocked in")
	case errors.Is(err, attendance.ErrLocationRejected):
		Forbidden(w, "You are outside every allowed location")
	case errors.Is(err, attendance.ErrWorkPeriodNotFound):
		NotFound(w, "Work period not found")

	// Break errors
	case errors.Is(err, breaks.ErrBreakAlreadyActive):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, breaks.ErrNoActiveBreak):
		Conflict(w, "No break is in progress")
	case errors.Is(err, breaks.ErrNoBreakTypeConfigured):
		Conflict(w, "No break type is configured for your company")
	case errors.Is(err, breaks.ErrBreakNotFound):
		NotFound(w, "Break not found")
	case errors.Is(err, facerecognition.ErrFaceNotMatched):
		Forbidden(w, "Face does not match")
	case errors.Is(err, facerecognition.ErrPhotoRequired):
		BadRequest(w, "Photo is required", nil)

	// Absence errors
	case errors.Is(err, absence.ErrAbsenceNotFound):
		NotFound(w, "Absence not found")
	case errors.Is(err, absence.ErrAbsenceTypeNotFound):
		NotFound(w, "Absence type not found")
	case errors.Is(err, absence.ErrOverlapDetected):
		Conflict(w, "Absence overlaps an existing absence")
	case errors.Is(err, absence.ErrDailyLimitReached):
		Conflict(w, "Daily limit reached for this absence type")
	case errors.Is(err, absence.ErrNotPending):
		Conflict(w, "Absence is no longer pending")
	case errors.Is(err, absence.ErrNotConfigured):
		Conflict(w, "No break type is configured for your company")
	case errors.Is(err, absence.ErrAbsenceTypeExists):
		Conflict(w, "Absence type already exists")
	case errors.Is(err, absence.ErrInvalidTimeRange):
		BadRequest(w, "End time must be after start time", nil)

	// Schedule errors
	case errors.Is(err, schedule.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, schedule.ErrEmptySchedule):
		BadRequest(w, "Schedule must contain at least one block", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
