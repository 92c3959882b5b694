package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes the JSON request body into dst. On failure it writes
// the error response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body too large"))
	case errors.Is(err, io.EOF):
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("", "request body is required"))
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "malformed JSON body"))
	}
	return false
}

// pathID binds the {id} path parameter. On failure it writes a 400 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "invalid id"))
		return id, false
	}
	return id, true
}

// queryInt binds an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// queryString binds an optional string query parameter.
func queryString(r *http.Request, name string) (*string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// currentUser returns the session user. Routes that call it are mounted
// behind middleware.RequireSession, so a missing id is a wiring bug.
func currentUser(r *http.Request) openapi_types.UUID {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		panic("handler: route mounted without RequireSession")
	}
	return id
}
