package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

const dateLayout = "2006-01-02"

// ExportService assembles a flat export of every activity in a user's plans.
type ExportService struct {
	plans repo.TripPlanRepo
}

// NewExportService constructs an ExportService backed by the plan repo.
func NewExportService(plans repo.TripPlanRepo) *ExportService {
	return &ExportService{plans: plans}
}

// Export returns one ExportRow per activity across all of userID's active
// plans, newest plan first. Never nil.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	p := domain.PaginationParams{Page: 1, Limit: domain.MaxPageLimit}
	for {
		plans, total, err := s.plans.ListPaged(ctx, userID, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		for _, plan := range plans {
			rows = append(rows, planRows(plan)...)
		}
		if len(plans) == 0 || int64(p.Page*p.Limit) >= total {
			return rows, nil
		}
		p.Page++
	}
}

func planRows(plan domain.TripPlan) []domain.ExportRow {
	base := domain.ExportRow{
		PlanID:      plan.ID.String(),
		Destination: plan.Destination,
		StartDate:   plan.StartDate.Format(dateLayout),
		EndDate:     plan.EndDate.Format(dateLayout),
		PeopleCount: plan.PeopleCount,
		BudgetType:  plan.BudgetType,
	}
	if len(plan.PlanDetails.Days) == 0 {
		return []domain.ExportRow{base}
	}

	var rows []domain.ExportRow
	for _, day := range plan.PlanDetails.Days {
		dayRow := base
		dayRow.Day = day.Day
		dayRow.Date = day.Date
		if len(day.Activities) == 0 {
			rows = append(rows, dayRow)
			continue
		}
		for _, a := range day.Activities {
			row := dayRow
			row.Time = a.Time
			row.Title = a.Title
			row.Location = a.Location
			row.EstimatedCost = a.EstimatedCost
			if a.Category != nil {
				row.Category = *a.Category
			}
			rows = append(rows, row)
		}
	}
	return rows
}
