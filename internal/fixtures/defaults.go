package fixtures

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/absence"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// DefaultAbsenceTypes returns the catalogue every company starts with.
// Exactly one entry is flagged as the break type.
func DefaultAbsenceTypes(companyID string) []absence.AbsenceType {
	return []absence.AbsenceType{
		{
			CompanyID: companyID,
			Name:      "Break",
			IsPaid:    true,
			IsBreak:   true,
			MaxPerDay: intPtr(3),
		},
		{
			CompanyID:          companyID,
			Name:               "Sick leave",
			RequiresValidation: true,
		},
		{
			CompanyID:          companyID,
			Name:               "Annual leave",
			IsPaid:             true,
			RequiresValidation: true,
			MaxPerDay:          intPtr(1),
		},
		{
			CompanyID:          companyID,
			Name:               "Unpaid leave",
			RequiresValidation: true,
		},
		{
			CompanyID: companyID,
			Name:      "Remote errand",
			IsPaid:    true,
			MaxPerDay: intPtr(2),
		},
	}
}

// SeedAbsenceTypes inserts the default catalogue, skipping names the company
// already has. It returns the number of types created.
func SeedAbsenceTypes(ctx context.Context, repo absence.AbsenceTypeRepository, companyID string) (int, error) {
	existing, err := repo.ListByCompany(ctx, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list absence types: %w", err)
	}

	names := make(map[string]bool, len(existing))
	hasBreak := false
	for _, t := range existing {
		names[strings.ToLower(t.Name)] = true
		hasBreak = hasBreak || t.IsBreak
	}

	created := 0
	for _, t := range DefaultAbsenceTypes(companyID) {
		if names[strings.ToLower(t.Name)] || (t.IsBreak && hasBreak) {
			continue
		}
		if _, err := repo.Create(ctx, t); err != nil {
			return created, fmt.Errorf("failed to create absence type %q: %w", t.Name, err)
		}
		created++
	}
	return created, nil
}

// DefaultWeeklySchedule is a Monday to Friday office week split by a lunch hour.
func DefaultWeeklySchedule() schedule.WeeklyBlocks {
	week := schedule.WeeklyBlocks{}
	for _, day := range []schedule.Weekday{
		schedule.Monday,
		schedule.Tuesday,
		schedule.Wednesday,
		schedule.Thursday,
		schedule.Friday,
	} {
		week[day] = []schedule.BlockInput{
			{Title: "Morning shift", StartTime: "09:00", EndTime: "12:00"},
			{Title: "Afternoon shift", Description: strPtr("After lunch"), StartTime: "13:00", EndTime: "17:00"},
		}
	}
	return week
}
