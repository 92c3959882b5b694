package handler

import (
	"net/http"

	"github.com/pkordes/tripplanner/internal/domain"
)

const preferenceNotFound = "Preference template not found"

// PreferenceRequest is the body of POST /preferences.
type PreferenceRequest struct {
	Name        string `json:"name"`
	PeopleCount int    `json:"people_count"`
	BudgetType  string `json:"budget_type"`
}

// UpdatePreferenceRequest is the body of PATCH /preferences/{id}.
type UpdatePreferenceRequest struct {
	Name        *string `json:"name"`
	PeopleCount *int    `json:"people_count"`
	BudgetType  *string `json:"budget_type"`
}

// PreferenceList is the body of GET /preferences.
type PreferenceList struct {
	Data []domain.PreferenceTemplate `json:"data"`
}

// ListPreferences handles GET /preferences.
func (s *Server) ListPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferences.List(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err, preferenceNotFound)
		return
	}
	writeJSON(w, http.StatusOK, PreferenceList{Data: prefs})
}

// CreatePreference handles POST /preferences.
func (s *Server) CreatePreference(w http.ResponseWriter, r *http.Request) {
	var body PreferenceRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.preferences.Create(r.Context(), domain.PreferenceTemplate{
		UserID:      currentUser(r),
		Name:        body.Name,
		PeopleCount: body.PeopleCount,
		BudgetType:  body.BudgetType,
	})
	if err != nil {
		s.writeError(w, r, err, preferenceNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePreference handles PATCH /preferences/{id}.
func (s *Server) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body UpdatePreferenceRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.preferences.Update(r.Context(), domain.UpdatePreferenceCommand{
		ID:          id,
		UserID:      currentUser(r),
		Name:        body.Name,
		PeopleCount: body.PeopleCount,
		BudgetType:  body.BudgetType,
	})
	if err != nil {
		s.writeError(w, r, err, preferenceNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeletePreference handles DELETE /preferences/{id}.
func (s *Server) DeletePreference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.preferences.Delete(r.Context(), id, currentUser(r)); err != nil {
		s.writeError(w, r, err, preferenceNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
