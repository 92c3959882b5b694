package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

const (
	minPasswordLen = 8
	// bcrypt rejects longer inputs with ErrPasswordTooLong.
	maxPasswordBytes = 72
)

// Session is a signed token and the moment it stops being accepted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService registers users, checks credentials and issues session tokens.
// Tokens are HS256 JWTs whose subject is the user id.
type AuthService struct {
	users  repo.UserRepo
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs an AuthService that signs tokens with secret and
// makes them valid for ttl.
func NewAuthService(users repo.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

// Register creates an account and opens a session for it.
// Returns domain.ErrConflict when the email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, Session, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return domain.User{}, Session{}, domain.NewValidationError("email", "Email must be a valid address")
	}
	if len(password) < minPasswordLen {
		return domain.User{}, Session{}, domain.NewValidationError("password",
			fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	if len(password) > maxPasswordBytes {
		return domain.User{}, Session{}, domain.NewValidationError("password",
			fmt.Sprintf("Password must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return domain.User{}, Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	session, err := s.issue(user.ID)
	if err != nil {
		return domain.User{}, Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, session, nil
}

// Login checks credentials and opens a session. An unknown email and a wrong
// password both yield domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, Session{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.User{}, Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, Session{}, domain.ErrUnauthorized
	}

	session, err := s.issue(user.ID)
	if err != nil {
		return domain.User{}, Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, session, nil
}

// Me returns the account behind an authenticated session.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Me: %w", err)
	}
	return user, nil
}

// VerifySession parses a session token and returns its user id.
// Any malformed, expired or foreign-signed token yields domain.ErrUnauthorized.
func (s *AuthService) VerifySession(token string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", domain.ErrUnauthorized)
	}
	return id, nil
}

func (s *AuthService) issue(userID uuid.UUID) (Session, error) {
	now := time.Now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: signed, ExpiresAt: expires}, nil
}
