package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type AbsenceHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	TakeLunchBreak(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type absenceHandlerImpl struct {
	absenceService absence.AbsenceService
}

func NewAbsenceHandler(absenceService absence.AbsenceService) AbsenceHandler {
	return &absenceHandlerImpl{
		absenceService: absenceService,
	}
}

// Request implements AbsenceHandler.
func (h *absenceHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	employeeID, err := jwt.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req absence.RequestAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode absence request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.absenceService.RequestAbsence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence requested", result)
}

// TakeLunchBreak implements AbsenceHandler.
func (h *absenceHandlerImpl) TakeLunchBreak(w http.ResponseWriter, r *http.Request) {
	employeeID, err := jwt.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req absence.LunchBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode lunch break request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.absenceService.TakeLunchBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

// ListMy implements AbsenceHandler.
func (h *absenceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	employeeID, err := jwt.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := absence.ListAbsencesFilter{EmployeeID: employeeID}
	if from := r.URL.Query().Get("from"); from != "" {
		filter.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		filter.To = &to
	}

	result, err := h.absenceService.ListMyAbsences(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// Get implements AbsenceHandler.
func (h *absenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.absenceService.GetAbsence(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements AbsenceHandler.
func (h *absenceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, err := reviewRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence approved", result)
}

// Reject implements AbsenceHandler.
func (h *absenceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := reviewRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence rejected", result)
}

func reviewRequest(r *http.Request) (absence.ReviewRequest, error) {
	reviewerID, err := jwt.UserID(r.Context())
	if err != nil {
		return absence.ReviewRequest{}, err
	}
	return absence.ReviewRequest{
		AbsenceID:  chi.URLParam(r, "id"),
		ReviewerID: reviewerID,
	}, nil
}
