package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account able to own plans, generations and preference templates.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
