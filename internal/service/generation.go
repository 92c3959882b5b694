package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/ai"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/quota"
	"github.com/pkordes/tripplanner/internal/repo"
)

const (
	maxDestinationLen = 256
	maxTripDays       = 30
)

// QuotaLimiter records generation attempts against the daily limit.
// Allow records one attempt and reports whether the user is still within
// the limit; Used reads today's count without recording one.
type QuotaLimiter interface {
	Allow(ctx context.Context, userID uuid.UUID) (bool, error)
	Used(ctx context.Context, userID uuid.UUID) (int64, error)
}

// GenerationService drafts itineraries and keeps the audit trail of every
// attempt. Drafts are not plans; the client accepts one through PlanService.
type GenerationService struct {
	generator   ai.Generator
	generations repo.GenerationRepo
	limiter     QuotaLimiter
	dailyLimit  int
	logger      *slog.Logger
	now         func() time.Time
}

// NewGenerationService constructs a GenerationService. A nil limiter makes
// the quota fall back to counting today's generation rows.
func NewGenerationService(gen ai.Generator, generations repo.GenerationRepo, limiter QuotaLimiter, dailyLimit int, logger *slog.Logger) *GenerationService {
	return &GenerationService{
		generator:   gen,
		generations: generations,
		limiter:     limiter,
		dailyLimit:  dailyLimit,
		logger:      logger,
		now:         time.Now,
	}
}

// Generate validates cmd, charges the caller's quota, asks the generator for
// an itinerary and records the attempt. Generator failures are recorded too
// and returned as domain.ErrGenerationFailed.
func (s *GenerationService) Generate(ctx context.Context, cmd domain.GenerateCommand) (domain.GenerationResult, error) {
	cmd.Destination = strings.TrimSpace(cmd.Destination)
	if err := validateGenerate(cmd); err != nil {
		return domain.GenerationResult{}, err
	}

	if err := s.charge(ctx, cmd); err != nil {
		return domain.GenerationResult{}, err
	}

	started := s.now()
	details, genErr := s.generator.Generate(ctx, cmd)
	if genErr == nil {
		genErr = checkDraft(details)
	}

	record := domain.Generation{
		UserID:      cmd.UserID,
		Destination: cmd.Destination,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		PeopleCount: cmd.PeopleCount,
		BudgetType:  cmd.BudgetType,
		Model:       s.generator.Model(),
		DurationMS:  s.now().Sub(started).Milliseconds(),
		Status:      domain.GenerationSucceeded,
	}
	if genErr != nil {
		msg := genErr.Error()
		record.Status = domain.GenerationFailed
		record.ErrorMessage = &msg
	}

	saved, err := s.generations.Create(ctx, record)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	if genErr != nil {
		s.logger.WarnContext(ctx, "generation failed",
			"user_id", cmd.UserID,
			"generation_id", saved.ID,
			"model", record.Model,
			"error", genErr,
		)
		return domain.GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w: %w", domain.ErrGenerationFailed, genErr)
	}

	details.Renumber()
	return domain.GenerationResult{
		GenerationID: saved.ID,
		Model:        saved.Model,
		PlanDetails:  details,
	}, nil
}

// Quota reports how many generations userID has left today. It reads the
// same counter Generate charges: Redis when configured, otherwise today's
// generation rows.
func (s *GenerationService) Quota(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error) {
	var (
		used int64
		err  error
	)
	if s.limiter != nil {
		used, err = s.limiter.Used(ctx, userID)
	} else {
		used, err = s.generations.CountSince(ctx, userID, quota.StartOfDay(s.now()))
	}
	if err != nil {
		return domain.QuotaStatus{}, fmt.Errorf("service.GenerationService.Quota: %w", err)
	}
	return domain.QuotaStatus{
		Limit:     s.dailyLimit,
		Used:      int(used),
		Remaining: max(s.dailyLimit-int(used), 0),
	}, nil
}

// charge consumes one unit of the caller's daily quota.
func (s *GenerationService) charge(ctx context.Context, cmd domain.GenerateCommand) error {
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("service.GenerationService.Generate: %w", err)
		}
		if !ok {
			s.logger.InfoContext(ctx, "generation quota exhausted", "user_id", cmd.UserID, "limit", s.dailyLimit)
			return domain.ErrQuotaExceeded
		}
		return nil
	}

	used, err := s.generations.CountSince(ctx, cmd.UserID, quota.StartOfDay(s.now()))
	if err != nil {
		return fmt.Errorf("service.GenerationService.Generate: %w", err)
	}
	if used >= int64(s.dailyLimit) {
		s.logger.InfoContext(ctx, "generation quota exhausted", "user_id", cmd.UserID, "limit", s.dailyLimit)
		return domain.ErrQuotaExceeded
	}
	return nil
}

func validateGenerate(cmd domain.GenerateCommand) error {
	if cmd.Destination == "" {
		return domain.NewValidationError("destination", msgDestinationEmpty)
	}
	if utf8.RuneCountInString(cmd.Destination) > maxDestinationLen {
		return domain.NewValidationError("destination",
			fmt.Sprintf("Destination must be at most %d characters", maxDestinationLen))
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return domain.NewValidationError("end_date", msgEndBeforeStart)
	}
	if cmd.Days() > maxTripDays {
		return domain.NewValidationError("end_date",
			fmt.Sprintf("Trip cannot be longer than %d days", maxTripDays))
	}
	if cmd.PeopleCount < 1 {
		return domain.NewValidationError("people_count", msgPeopleCountMin)
	}
	if strings.TrimSpace(cmd.BudgetType) == "" {
		return domain.NewValidationError("budget_type", msgBudgetTypeEmpty)
	}
	return nil
}

// checkDraft rejects drafts that could never be accepted as a plan.
func checkDraft(d domain.PlanDetails) error {
	if len(d.Days) == 0 {
		return errors.New("draft has no days")
	}
	for i, day := range d.Days {
		if len(day.Activities) == 0 {
			return fmt.Errorf("draft day %d has no activities", i+1)
		}
	}
	return nil
}
