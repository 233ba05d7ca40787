package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/facerecognition"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	absenceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/absence"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	breakService "github.com/cmlabs-hris/hris-attendance-go/internal/service/breaks"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/geofence"
	scheduleService "github.com/cmlabs-hris/hris-attendance-go/internal/service/schedule"
	"github.com/ulule/limiter/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workPeriodRepo := postgresql.NewWorkPeriodRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	absenceTypeRepo := postgresql.NewAbsenceTypeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	faces := facerecognition.NewVerifier(ctx, facerecognition.Config{
		Enabled:      cfg.FaceRecognition.Enabled,
		BaseURL:      cfg.FaceRecognition.BaseURL,
		TokenURL:     cfg.FaceRecognition.TokenURL,
		ClientID:     cfg.FaceRecognition.ClientID,
		ClientSecret: cfg.FaceRecognition.ClientSecret,
		Timeout:      cfg.FaceRecognition.Timeout,
	})

	var limiterInstance *limiter.Limiter
	if cfg.RateLimit.Rate != "" {
		limiterInstance, err = ratelimit.New(ctx, cfg.RateLimit.Rate, cfg.RateLimit.RedisURL)
		if err != nil {
			slog.Error("Failed to initialize rate limiter", "error", err)
			os.Exit(1)
		}
	}

	locationValidator := geofence.NewValidator(employeeRepo, cfg.Geofence.RadiusKm)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		workPeriodRepo,
		breakRepo,
		employeeRepo,
		locationValidator,
	)
	breakSvc := breakService.NewBreakService(
		transactor,
		breakRepo,
		workPeriodRepo,
		employeeRepo,
		absenceTypeRepo,
		cfg.Break.AllowedMinutes,
	)
	absenceSvc := absenceService.NewAbsenceService(
		transactor,
		absenceRepo,
		absenceTypeRepo,
		employeeRepo,
		workPeriodRepo,
		locationValidator,
		attendanceSvc,
	)
	scheduleSvc := scheduleService.NewScheduleService(transactor, scheduleRepo)

	router := appHTTP.NewRouter(JWTService, limiterInstance, cfg.App.AllowedOrigins, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Break:      appHTTP.NewBreakHandler(breakSvc, faces),
		Absence:    appHTTP.NewAbsenceHandler(absenceSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server running", "address", "http://localhost"+port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
