package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerationStatus is the outcome of one itinerary generation attempt.
type GenerationStatus string

// Generation outcomes.
const (
	GenerationSucceeded GenerationStatus = "success"
	GenerationFailed    GenerationStatus = "failure"
)

// Generation is the audit record of a single generation attempt.
// Accepted plans may reference a successful generation by ID.
type Generation struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Destination  string
	StartDate    time.Time
	EndDate      time.Time
	PeopleCount  int
	BudgetType   string
	Model        string
	DurationMS   int64
	Status       GenerationStatus
	ErrorMessage *string
	CreatedAt    time.Time
}

// GenerateCommand asks for a new itinerary.
type GenerateCommand struct {
	UserID      uuid.UUID
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	PeopleCount int
	BudgetType  string
	Preferences []string
	Notes       string
}

// Days returns the inclusive number of calendar days the trip spans.
func (c GenerateCommand) Days() int {
	return int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
}

// QuotaStatus is a user's generation allowance for the current UTC day.
type QuotaStatus struct {
	Limit     int
	Used      int
	Remaining int
}

// GenerationResult is what the client receives to review and edit before
// accepting it as a plan.
type GenerationResult struct {
	GenerationID uuid.UUID
	Model        string
	PlanDetails  PlanDetails
}
