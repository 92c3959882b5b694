// Package service contains the business logic of the trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

// PlanService accepts, updates, reads and soft-deletes trip plans.
// It holds the generations repo because an accepted plan may reference a
// generation, which must exist and belong to the caller.
type PlanService struct {
	plans       repo.TripPlanRepo
	generations repo.GenerationRepo
}

// NewPlanService constructs a PlanService backed by the provided repos.
func NewPlanService(plans repo.TripPlanRepo, generations repo.GenerationRepo) *PlanService {
	return &PlanService{plans: plans, generations: generations}
}

// Accept validates cmd, checks its generation reference and inserts the plan.
// Returns a *domain.ValidationError for invalid input or a foreign/missing
// generation_id; nothing is written in either case.
func (s *PlanService) Accept(ctx context.Context, cmd domain.AcceptPlanCommand) (domain.TripPlanDTO, error) {
	if err := ValidateAccept(cmd); err != nil {
		return domain.TripPlanDTO{}, err
	}

	if cmd.GenerationID != nil {
		ok, err := s.generations.ExistsForUser(ctx, *cmd.GenerationID, cmd.UserID)
		if err != nil {
			return domain.TripPlanDTO{}, fmt.Errorf("service.PlanService.Accept: %w", err)
		}
		if !ok {
			return domain.TripPlanDTO{}, domain.NewValidationError("generation_id", msgGenerationReference)
		}
	}

	created, err := s.plans.Create(ctx, domain.TripPlan{
		UserID:       cmd.UserID,
		Destination:  cmd.Destination,
		StartDate:    cmd.StartDate,
		EndDate:      cmd.EndDate,
		PeopleCount:  cmd.PeopleCount,
		BudgetType:   cmd.BudgetType,
		PlanDetails:  *cmd.PlanDetails,
		Source:       cmd.Source,
		GenerationID: cmd.GenerationID,
	})
	if err != nil {
		return domain.TripPlanDTO{}, fmt.Errorf("service.PlanService.Accept: %w", err)
	}
	return created.ToDTO(), nil
}

// Update validates cmd, reads the plan's current provenance, and writes the
// supplied fields. Editing the itinerary of an "ai" plan also moves it to
// "ai-edited". Returns domain.ErrNotFound when the plan is missing, foreign
// or deleted, including when it disappears between the read and the write.
func (s *PlanService) Update(ctx context.Context, cmd domain.UpdatePlanCommand) (domain.TripPlanDTO, error) {
	if err := ValidateUpdate(cmd); err != nil {
		return domain.TripPlanDTO{}, err
	}

	state, err := s.plans.GetMutableState(ctx, cmd.ID, cmd.UserID)
	if err != nil {
		return domain.TripPlanDTO{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}

	updated, err := s.plans.Update(ctx, cmd.ID, cmd.UserID, buildPlanDelta(cmd, state.Source))
	if err != nil {
		return domain.TripPlanDTO{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	return updated.ToDTO(), nil
}

// buildPlanDelta copies the supplied fields and applies the provenance rule.
func buildPlanDelta(cmd domain.UpdatePlanCommand, current domain.PlanSource) domain.PlanDelta {
	delta := domain.PlanDelta{
		Destination: cmd.Destination,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		BudgetType:  cmd.BudgetType,
		PlanDetails: cmd.PlanDetails,
	}
	if cmd.PeopleCount != nil {
		n := int(*cmd.PeopleCount)
		delta.PeopleCount = &n
	}
	if cmd.PlanDetails != nil {
		if next, changed := current.AfterDetailsEdit(); changed {
			delta.Source = &next
		}
	}
	return delta
}

// Delete soft-deletes one of the caller's plans. A plan that is missing,
// foreign or already deleted yields false, not an error.
func (s *PlanService) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	deleted, err := s.plans.SoftDelete(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return deleted, nil
}

// GetByID returns one of the caller's active plans.
func (s *PlanService) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.TripPlanDTO, error) {
	plan, err := s.plans.GetByID(ctx, id, userID)
	if err != nil {
		return domain.TripPlanDTO{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return plan.ToDTO(), nil
}

// List returns one page of the caller's active plans and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlanService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripPlanDTO, int64, error) {
	plans, total, err := s.plans.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlanService.List: %w", err)
	}
	out := make([]domain.TripPlanDTO, 0, len(plans))
	for _, plan := range plans {
		out = append(out, plan.ToDTO())
	}
	return out, total, nil
}
