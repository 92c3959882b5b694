package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/handler"
	"github.com/pkordes/tripplanner/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones the test needs.

type mockPlanService struct {
	accept  func(ctx context.Context, cmd domain.AcceptPlanCommand) (domain.TripPlanDTO, error)
	update  func(ctx context.Context, cmd domain.UpdatePlanCommand) (domain.TripPlanDTO, error)
	delete  func(ctx context.Context, id, userID uuid.UUID) (bool, error)
	getByID func(ctx context.Context, id, userID uuid.UUID) (domain.TripPlanDTO, error)
	list    func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripPlanDTO, int64, error)
}

func (m *mockPlanService) Accept(ctx context.Context, cmd domain.AcceptPlanCommand) (domain.TripPlanDTO, error) {
	return m.accept(ctx, cmd)
}
func (m *mockPlanService) Update(ctx context.Context, cmd domain.UpdatePlanCommand) (domain.TripPlanDTO, error) {
	return m.update(ctx, cmd)
}
func (m *mockPlanService) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return m.delete(ctx, id, userID)
}
func (m *mockPlanService) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.TripPlanDTO, error) {
	return m.getByID(ctx, id, userID)
}
func (m *mockPlanService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripPlanDTO, int64, error) {
	return m.list(ctx, userID, p)
}

type mockGenerationService struct {
	generate func(ctx context.Context, cmd domain.GenerateCommand) (domain.GenerationResult, error)
	quota    func(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error)
}

func (m *mockGenerationService) Generate(ctx context.Context, cmd domain.GenerateCommand) (domain.GenerationResult, error) {
	return m.generate(ctx, cmd)
}
func (m *mockGenerationService) Quota(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error) {
	return m.quota(ctx, userID)
}

type mockPreferenceService struct {
	list   func(ctx context.Context, userID uuid.UUID) ([]domain.PreferenceTemplate, error)
	create func(ctx context.Context, p domain.PreferenceTemplate) (domain.PreferenceTemplate, error)
	update func(ctx context.Context, cmd domain.UpdatePreferenceCommand) (domain.PreferenceTemplate, error)
	delete func(ctx context.Context, id, userID uuid.UUID) error
}

func (m *mockPreferenceService) List(ctx context.Context, userID uuid.UUID) ([]domain.PreferenceTemplate, error) {
	return m.list(ctx, userID)
}
func (m *mockPreferenceService) Create(ctx context.Context, p domain.PreferenceTemplate) (domain.PreferenceTemplate, error) {
	return m.create(ctx, p)
}
func (m *mockPreferenceService) Update(ctx context.Context, cmd domain.UpdatePreferenceCommand) (domain.PreferenceTemplate, error) {
	return m.update(ctx, cmd)
}
func (m *mockPreferenceService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.delete(ctx, id, userID)
}

type mockExportService struct {
	export func(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportService) Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, userID)
}

// mockAuthService accepts exactly one token, aliceToken, for alice.
type mockAuthService struct {
	register func(ctx context.Context, email, password string) (domain.User, service.Session, error)
	login    func(ctx context.Context, email, password string) (domain.User, service.Session, error)
	me       func(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (domain.User, service.Session, error) {
	return m.register(ctx, email, password)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.User, service.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.me(ctx, userID)
}
func (m *mockAuthService) VerifySession(token string) (uuid.UUID, error) {
	if token != aliceToken {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return alice, nil
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.PlanServicer       = (*mockPlanService)(nil)
	_ handler.GenerationServicer = (*mockGenerationService)(nil)
	_ handler.PreferenceServicer = (*mockPreferenceService)(nil)
	_ handler.AuthServicer       = (*mockAuthService)(nil)
	_ handler.ExportServicer     = (*mockExportService)(nil)
)

// ---- helpers ---------------------------------------------------------------

const aliceToken = "alice-token"

var (
	alice    = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	errStore = errors.New("connection reset")
)

var allFeatures = config.FeatureFlags{Auth: true, Plans: true, Generation: true, Preferences: true}

// newRouter wires svcs behind the real router with every feature on.
// A nil service in svcs is replaced by an empty mock.
func newRouter(svcs handler.Services) http.Handler {
	return newRouterWith(svcs, allFeatures)
}

func newRouterWith(svcs handler.Services, features config.FeatureFlags) http.Handler {
	if svcs.Plans == nil {
		svcs.Plans = &mockPlanService{}
	}
	if svcs.Generations == nil {
		svcs.Generations = &mockGenerationService{}
	}
	if svcs.Preferences == nil {
		svcs.Preferences = &mockPreferenceService{}
	}
	if svcs.Auth == nil {
		svcs.Auth = &mockAuthService{}
	}
	if svcs.Export == nil {
		svcs.Export = &mockExportService{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := handler.NewServer(svcs, handler.CookieOptions{TTL: time.Hour}, logger)
	return s.Routes(features, []byte("openapi: 3.0.3\n"))
}

// do sends an authenticated request as alice. body may be empty.
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := authedRequest(method, path, body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func authedRequest(method, path, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	return req
}
