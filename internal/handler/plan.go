package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/domain"
)

const planNotFound = "Trip plan not found"

// TripPlan is the public JSON shape of a plan.
type TripPlan struct {
	ID          openapi_types.UUID `json:"id"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	PeopleCount int                `json:"people_count"`
	BudgetType  string             `json:"budget_type"`
	PlanDetails domain.PlanDetails `json:"plan_details"`
}

// AcceptPlanRequest is the body of POST /plans.
type AcceptPlanRequest struct {
	GenerationID *openapi_types.UUID `json:"generation_id"`
	Destination  *string             `json:"destination"`
	StartDate    *openapi_types.Date `json:"start_date"`
	EndDate      *openapi_types.Date `json:"end_date"`
	PeopleCount  *int                `json:"people_count"`
	BudgetType   *string             `json:"budget_type"`
	PlanDetails  *domain.PlanDetails `json:"plan_details"`
	Source       *string             `json:"source"`
}

// UpdatePlanRequest is the body of PATCH /plans/{id}. Absent fields are left
// unchanged. people_count is a float so fractional values reach validation.
type UpdatePlanRequest struct {
	Destination *string             `json:"destination"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	PeopleCount *float64            `json:"people_count"`
	BudgetType  *string             `json:"budget_type"`
	PlanDetails *domain.PlanDetails `json:"plan_details"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TripPlanList is the body of GET /plans.
type TripPlanList struct {
	Data       []TripPlan `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// AcceptPlan handles POST /plans.
func (s *Server) AcceptPlan(w http.ResponseWriter, r *http.Request) {
	var body AcceptPlanRequest
	if !decodeBody(w, r, &body) {
		return
	}
	cmd, field := acceptCommand(body)
	if field != "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(field, field+" is required"))
		return
	}
	cmd.UserID = currentUser(r)

	created, err := s.plans.Accept(r.Context(), cmd)
	if err != nil {
		s.writeError(w, r, err, planNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, planToResponse(created))
}

// ListPlans handles GET /plans.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "page must be an integer"))
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "limit must be an integer"))
		return
	}
	params := domain.NewPaginationParams(page, limit)

	plans, total, err := s.plans.List(r.Context(), currentUser(r), params)
	if err != nil {
		s.writeError(w, r, err, planNotFound)
		return
	}

	data := make([]TripPlan, len(plans))
	for i, p := range plans {
		data[i] = planToResponse(p)
	}
	writeJSON(w, http.StatusOK, TripPlanList{
		Data: data,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      int(total),
			TotalPages: params.TotalPages(total),
		},
	})
}

// GetPlan handles GET /plans/{id}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	plan, err := s.plans.GetByID(r.Context(), id, currentUser(r))
	if err != nil {
		s.writeError(w, r, err, planNotFound)
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(plan))
}

// UpdatePlan handles PATCH /plans/{id}.
func (s *Server) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body UpdatePlanRequest
	if !decodeBody(w, r, &body) {
		return
	}

	cmd := domain.UpdatePlanCommand{
		ID:          id,
		UserID:      currentUser(r),
		Destination: body.Destination,
		PeopleCount: body.PeopleCount,
		BudgetType:  body.BudgetType,
		PlanDetails: body.PlanDetails,
	}
	if body.StartDate != nil {
		cmd.StartDate = &body.StartDate.Time
	}
	if body.EndDate != nil {
		cmd.EndDate = &body.EndDate.Time
	}

	updated, err := s.plans.Update(r.Context(), cmd)
	if err != nil {
		s.writeError(w, r, err, planNotFound)
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(updated))
}

// DeletePlan handles DELETE /plans/{id}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.plans.Delete(r.Context(), id, currentUser(r))
	if err != nil {
		s.writeError(w, r, err, planNotFound)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", planNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// acceptCommand converts the request body into a command. It returns the
// name of the first missing required field, if any. plan_details is left to
// the validator so an omitted itinerary gets its specific message.
func acceptCommand(body AcceptPlanRequest) (domain.AcceptPlanCommand, string) {
	switch {
	case body.Destination == nil:
		return domain.AcceptPlanCommand{}, "destination"
	case body.StartDate == nil:
		return domain.AcceptPlanCommand{}, "start_date"
	case body.EndDate == nil:
		return domain.AcceptPlanCommand{}, "end_date"
	case body.PeopleCount == nil:
		return domain.AcceptPlanCommand{}, "people_count"
	case body.BudgetType == nil:
		return domain.AcceptPlanCommand{}, "budget_type"
	case body.Source == nil:
		return domain.AcceptPlanCommand{}, "source"
	}
	return domain.AcceptPlanCommand{
		GenerationID: body.GenerationID,
		Destination:  *body.Destination,
		StartDate:    body.StartDate.Time,
		EndDate:      body.EndDate.Time,
		PeopleCount:  *body.PeopleCount,
		BudgetType:   *body.BudgetType,
		PlanDetails:  body.PlanDetails,
		Source:       domain.PlanSource(*body.Source),
	}, ""
}

func planToResponse(p domain.TripPlanDTO) TripPlan {
	return TripPlan{
		ID:          p.ID,
		Destination: p.Destination,
		StartDate:   openapi_types.Date{Time: p.StartDate},
		EndDate:     openapi_types.Date{Time: p.EndDate},
		PeopleCount: p.PeopleCount,
		BudgetType:  p.BudgetType,
		PlanDetails: p.PlanDetails,
	}
}
