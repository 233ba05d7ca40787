package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	Validate(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Validate checks a weekly schedule without saving it.
func (h *scheduleHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "id")

	var req schedule.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode schedule request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.scheduleService.ValidateWeeklySchedule(r.Context(), positionID, req.Blocks); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule is valid", nil)
}

// Save replaces every block of the position's weekly schedule.
func (h *scheduleHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "id")

	var req schedule.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode schedule request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.SavePositionSchedule(r.Context(), positionID, req.Blocks)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule saved", result)
}

// Get implements ScheduleHandler.
func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "id")

	result, err := h.scheduleService.GetPositionSchedule(r.Context(), positionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
