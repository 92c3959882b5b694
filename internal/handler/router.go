package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/middleware"
)

// Routes returns a chi router with every endpoint mounted. Route groups whose
// feature flag is off answer 404. openAPI is served verbatim at /openapi.yaml.
func (s *Server) Routes(features config.FeatureFlags, openAPI []byte) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPI)
	})

	session := middleware.RequireSession(s.auth)

	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.Auth))
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Post("/logout", s.Logout)
		r.With(session).Get("/me", s.Me)
	})

	r.Route("/generations", func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.Generation), session)
		r.Post("/", s.CreateGeneration)
		r.Get("/quota", s.GetQuota)
	})

	r.Route("/plans", func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.Plans), session)
		r.Get("/", s.ListPlans)
		r.Post("/", s.AcceptPlan)
		r.Get("/{id}", s.GetPlan)
		r.Patch("/{id}", s.UpdatePlan)
		r.Delete("/{id}", s.DeletePlan)
	})

	r.Route("/export", func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.Plans), session)
		r.Get("/", s.GetExport)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.Preferences), session)
		r.Get("/", s.ListPreferences)
		r.Post("/", s.CreatePreference)
		r.Patch("/{id}", s.UpdatePreference)
		r.Delete("/{id}", s.DeletePreference)
	})

	return r
}
