package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

const maxPreferenceNameLen = 100

// PreferenceService manages a user's saved trip parameter templates.
type PreferenceService struct {
	repo repo.PreferenceRepo
}

// NewPreferenceService constructs a PreferenceService backed by r.
func NewPreferenceService(r repo.PreferenceRepo) *PreferenceService {
	return &PreferenceService{repo: r}
}

// List returns the caller's templates ordered by name. Never nil.
func (s *PreferenceService) List(ctx context.Context, userID uuid.UUID) ([]domain.PreferenceTemplate, error) {
	prefs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PreferenceService.List: %w", err)
	}
	if prefs == nil {
		prefs = []domain.PreferenceTemplate{}
	}
	return prefs, nil
}

// Create validates and stores a new template. The name is trimmed first.
// Returns domain.ErrConflict when the caller already uses that name.
func (s *PreferenceService) Create(ctx context.Context, p domain.PreferenceTemplate) (domain.PreferenceTemplate, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validatePreferenceName(p.Name); err != nil {
		return domain.PreferenceTemplate{}, err
	}
	if p.PeopleCount < 1 {
		return domain.PreferenceTemplate{}, domain.NewValidationError("people_count", msgPeopleCountMin)
	}
	if strings.TrimSpace(p.BudgetType) == "" {
		return domain.PreferenceTemplate{}, domain.NewValidationError("budget_type", msgBudgetTypeEmpty)
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.PreferenceTemplate{}, fmt.Errorf("service.PreferenceService.Create: %w", err)
	}
	return created, nil
}

// Update applies a partial change to one of the caller's templates.
func (s *PreferenceService) Update(ctx context.Context, cmd domain.UpdatePreferenceCommand) (domain.PreferenceTemplate, error) {
	if !cmd.HasChanges() {
		return domain.PreferenceTemplate{}, domain.NewValidationError("general", msgNoUpdateFields)
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if err := validatePreferenceName(name); err != nil {
			return domain.PreferenceTemplate{}, err
		}
		cmd.Name = &name
	}
	if cmd.PeopleCount != nil && *cmd.PeopleCount < 1 {
		return domain.PreferenceTemplate{}, domain.NewValidationError("people_count", msgPeopleCountPositive)
	}
	if cmd.BudgetType != nil && strings.TrimSpace(*cmd.BudgetType) == "" {
		return domain.PreferenceTemplate{}, domain.NewValidationError("budget_type", msgBudgetTypeEmpty)
	}

	updated, err := s.repo.Update(ctx, cmd)
	if err != nil {
		return domain.PreferenceTemplate{}, fmt.Errorf("service.PreferenceService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes one of the caller's templates.
func (s *PreferenceService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("service.PreferenceService.Delete: %w", err)
	}
	return nil
}

func validatePreferenceName(name string) error {
	if name == "" {
		return domain.NewValidationError("name", "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxPreferenceNameLen {
		return domain.NewValidationError("name", fmt.Sprintf("Name must be at most %d characters", maxPreferenceNameLen))
	}
	return nil
}
