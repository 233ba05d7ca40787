package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	scheduleService "github.com/cmlabs-hris/hris-attendance-go/internal/service/schedule"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	steps := flag.Int("steps", 0, "number of versions to move; 0 applies every pending migration, negative rolls back")
	seedCompany := flag.String("seed", "", "company id to seed with the default absence types")
	seedPosition := flag.String("seed-position", "", "position id to seed with the default weekly schedule")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	if err := database.Migrate(cfg.DatabaseURL(), *source, *steps); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	if *seedCompany == "" && *seedPosition == "" {
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if *seedCompany != "" {
		created, err := fixtures.SeedAbsenceTypes(ctx, postgresql.NewAbsenceTypeRepository(db), *seedCompany)
		if err != nil {
			slog.Error("Seeding absence types failed", "company_id", *seedCompany, "error", err)
			os.Exit(1)
		}
		slog.Info("Absence types seeded", "company_id", *seedCompany, "created", created)
	}

	if *seedPosition != "" {
		schedules := scheduleService.NewScheduleService(postgresql.NewTransactor(db), postgresql.NewScheduleRepository(db))
		saved, err := schedules.SavePositionSchedule(ctx, *seedPosition, fixtures.DefaultWeeklySchedule())
		if err != nil {
			slog.Error("Seeding position schedule failed", "position_id", *seedPosition, "error", err)
			os.Exit(1)
		}
		slog.Info("Position schedule seeded", "position_id", *seedPosition, "blocks", saved.TotalBlocks)
	}
}
