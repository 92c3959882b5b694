package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/domain"
)

// GenerateRequest is the body of POST /generations.
type GenerateRequest struct {
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	PeopleCount int                `json:"people_count"`
	BudgetType  string             `json:"budget_type"`
	Preferences []string           `json:"preferences,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

// Generation is the draft itinerary returned for review. The client submits
// it back to POST /plans with generation_id once the user accepts it.
type Generation struct {
	GenerationID openapi_types.UUID `json:"generation_id"`
	Model        string             `json:"model"`
	PlanDetails  domain.PlanDetails `json:"plan_details"`
}

// CreateGeneration handles POST /generations.
func (s *Server) CreateGeneration(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := s.generations.Generate(r.Context(), domain.GenerateCommand{
		UserID:      currentUser(r),
		Destination: body.Destination,
		StartDate:   body.StartDate.Time,
		EndDate:     body.EndDate.Time,
		PeopleCount: body.PeopleCount,
		BudgetType:  body.BudgetType,
		Preferences: body.Preferences,
		Notes:       body.Notes,
	})
	if err != nil {
		s.writeError(w, r, err, "generation not found")
		return
	}

	writeJSON(w, http.StatusCreated, Generation{
		GenerationID: result.GenerationID,
		Model:        result.Model,
		PlanDetails:  result.PlanDetails,
	})
}

// Quota is the body of GET /generations/quota.
type Quota struct {
	Limit     int `json:"limit"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

// GetQuota handles GET /generations/quota.
func (s *Server) GetQuota(w http.ResponseWriter, r *http.Request) {
	q, err := s.generations.Quota(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, Quota{Limit: q.Limit, Used: q.Used, Remaining: q.Remaining})
}
