package middleware

import "net/http"

// RequireFeature answers 404 for every request when enabled is false, so a
// switched-off feature looks like a route that does not exist.
func RequireFeature(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", "not found")
		})
	}
}
