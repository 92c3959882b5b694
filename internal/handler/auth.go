package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/middleware"
	"github.com/pkordes/tripplanner/internal/service"
)

// Credentials is the body of POST /auth/register and POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public JSON shape of an account.
type User struct {
	ID        openapi_types.UUID `json:"id"`
	Email     string             `json:"email"`
	CreatedAt time.Time          `json:"created_at"`
}

// Register handles POST /auth/register. The new account is logged in.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body Credentials
	if !decodeBody(w, r, &body) {
		return
	}

	user, session, err := s.auth.Register(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, r, err, "user not found")
		return
	}
	s.setSessionCookie(w, session)
	writeJSON(w, http.StatusCreated, userToResponse(user))
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body Credentials
	if !decodeBody(w, r, &body) {
		return
	}

	user, session, err := s.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, r, err, "user not found")
		return
	}
	s.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// Logout handles POST /auth/logout by expiring the session cookie.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.Me(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

func (s *Server) setSessionCookie(w http.ResponseWriter, session service.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(s.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func userToResponse(u domain.User) User {
	return User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
