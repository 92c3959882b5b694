package domain

import (
	"time"

	"github.com/google/uuid"
)

// PreferenceTemplate is a named set of trip parameters a user can reapply
// when filling in the generation form. Names are unique per user.
type PreferenceTemplate struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	PeopleCount int       `json:"people_count"`
	BudgetType  string    `json:"budget_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdatePreferenceCommand is a partial update; nil fields are left unchanged.
type UpdatePreferenceCommand struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        *string
	PeopleCount *int
	BudgetType  *string
}

// HasChanges reports whether at least one mutable field was supplied.
func (c UpdatePreferenceCommand) HasChanges() bool {
	return c.Name != nil || c.PeopleCount != nil || c.BudgetType != nil
}
