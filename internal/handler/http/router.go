package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ulule/limiter/v3"
)

type Handlers struct {
	Attendance AttendanceHandler
	Break      BreakHandler
	Absence    AbsenceHandler
	Schedule   ScheduleHandler
}

// NewRouter mounts every route under /api/v1. A nil limiter disables
// throttling of the mutating attendance routes.
func NewRouter(JWTService jwt.Service, limiterInstance *limiter.Limiter, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	throttle := func(next http.Handler) http.Handler { return next }
	if limiterInstance != nil {
		throttle = middleware.RateLimit(limiterInstance)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(throttle).Post("/clock-in", h.Attendance.ClockIn)
				r.With(throttle).Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/active", h.Attendance.GetActive)
			})

			r.Route("/breaks", func(r chi.Router) {
				r.With(throttle).Post("/start", h.Break.Start)
				r.With(throttle).Post("/end", h.Break.End)
				r.Get("/status", h.Break.Status)
			})

			r.Route("/absences", func(r chi.Router) {
				r.With(throttle).Post("/", h.Absence.Request)
				r.With(throttle).Post("/lunch-break", h.Absence.TakeLunchBreak)
				r.Get("/my", h.Absence.ListMy)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Absence.Get)
					r.Post("/approve", h.Absence.Approve)
					r.Post("/reject", h.Absence.Reject)
				})
			})

			r.Route("/positions/{id}/schedule", func(r chi.Router) {
				r.Get("/", h.Schedule.Get)
				r.Put("/", h.Schedule.Save)
				r.Post("/validate", h.Schedule.Validate)
			})
		})
	})
	return r
}
