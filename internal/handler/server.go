// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, plan.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/service"
)

// PlanServicer defines the plan operations the plan handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type PlanServicer interface {
	Accept(ctx context.Context, cmd domain.AcceptPlanCommand) (domain.TripPlanDTO, error)
	Update(ctx context.Context, cmd domain.UpdatePlanCommand) (domain.TripPlanDTO, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.TripPlanDTO, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripPlanDTO, int64, error)
}

// GenerationServicer drafts itineraries.
type GenerationServicer interface {
	Generate(ctx context.Context, cmd domain.GenerateCommand) (domain.GenerationResult, error)
	Quota(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error)
}

// PreferenceServicer manages preference templates.
type PreferenceServicer interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.PreferenceTemplate, error)
	Create(ctx context.Context, p domain.PreferenceTemplate) (domain.PreferenceTemplate, error)
	Update(ctx context.Context, cmd domain.UpdatePreferenceCommand) (domain.PreferenceTemplate, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// AuthServicer registers users and manages sessions.
type AuthServicer interface {
	Register(ctx context.Context, email, password string) (domain.User, service.Session, error)
	Login(ctx context.Context, email, password string) (domain.User, service.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
	VerifySession(token string) (uuid.UUID, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

// Services groups the dependencies of Server.
type Services struct {
	Plans       PlanServicer
	Generations GenerationServicer
	Preferences PreferenceServicer
	Auth        AuthServicer
	Export      ExportServicer
}

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

// Server holds every dependency the handlers need.
type Server struct {
	plans       PlanServicer
	generations GenerationServicer
	preferences PreferenceServicer
	auth        AuthServicer
	export      ExportServicer
	cookie      CookieOptions
	logger      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svcs Services, cookie CookieOptions, logger *slog.Logger) *Server {
	return &Server{
		plans:       svcs.Plans,
		generations: svcs.Generations,
		preferences: svcs.Preferences,
		auth:        svcs.Auth,
		export:      svcs.Export,
		cookie:      cookie,
		logger:      logger,
	}
}
