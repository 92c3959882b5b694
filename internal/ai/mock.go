package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
)

// MockModel is the model name recorded for mock generations.
const MockModel = "mock"

// Mock is a Generator that builds a fixed itinerary from the request alone.
// It is used in local development and whenever no API key is configured.
type Mock struct{}

// Model returns MockModel.
func (Mock) Model() string { return MockModel }

// Generate returns one morning and one afternoon activity per trip day.
func (Mock) Generate(ctx context.Context, cmd domain.GenerateCommand) (domain.PlanDetails, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlanDetails{}, err
	}

	n := cmd.Days()
	days := make([]domain.Day, 0, n)
	for i := range n {
		date := cmd.StartDate.AddDate(0, 0, i)
		days = append(days, domain.Day{
			Day:  i + 1,
			Date: date.Format(time.DateOnly),
			Activities: []domain.Activity{
				{
					Time:        "09:00",
					Title:       fmt.Sprintf("Explore %s", cmd.Destination),
					Description: "Walk the historic centre",
					Location:    cmd.Destination,
				},
				{
					Time:        "14:00",
					Title:       "Local lunch",
					Description: "Try a neighbourhood restaurant",
					Location:    cmd.Destination,
				},
			},
		})
	}

	notes := fmt.Sprintf("Mock itinerary for %d traveller(s) on a %s budget.", cmd.PeopleCount, cmd.BudgetType)
	return domain.PlanDetails{
		Days: days,
		Accommodation: &domain.Accommodation{
			Name:     fmt.Sprintf("%s Central Hotel", cmd.Destination),
			Address:  cmd.Destination,
			CheckIn:  cmd.StartDate.Format(time.DateOnly),
			CheckOut: cmd.EndDate.Format(time.DateOnly),
		},
		Notes: &notes,
	}, nil
}
