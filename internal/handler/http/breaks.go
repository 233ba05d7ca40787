package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/facerecognition"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
)

type BreakHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type breakHandlerImpl struct {
	breakService breaks.BreakService
	faces        facerecognition.Verifier
}

func NewBreakHandler(breakService breaks.BreakService, faces facerecognition.Verifier) BreakHandler {
	return &breakHandlerImpl{
		breakService: breakService,
		faces:        faces,
	}
}

// Start implements BreakHandler.
func (h *breakHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	employeeID, err := jwt.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req breaks.StartBreakRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			slog.Error("Failed to decode start break request", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID

	result, err := h.breakService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break started", result)
}

// End accepts either a JSON body or a multipart form with a 'data' JSON field
// and an optional 'photo' file checked by the face verifier.
func (h *breakHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	employeeID, err := jwt.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req breaks.EndBreakRequest
	var photo io.Reader

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		// Parse multipart form (max 10MB)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		if dataJSON := r.FormValue("data"); dataJSON != "" {
			if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
				slog.Error("Failed to unmarshal JSON data", "error", err)
				response.BadRequest(w, "Invalid request format", nil)
				return
			}
		}

		file, _, err := r.FormFile("photo")
		if err != nil && err != http.ErrMissingFile {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if file != nil {
			defer file.Close()
			photo = file
		}
	} else if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			slog.Error("Failed to decode end break request", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID

	if _, err := h.faces.Verify(r.Context(), employeeID, photo); err != nil {
		slog.Warn("Face verification failed", "employee_id", employeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := h.breakService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// Status implements BreakHandler.
func (h *breakHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID, err := jwt.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.breakService.GetBreakStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
