// Package domain contains the core data types for the trip planner.
// This package depends only on the standard library and uuid, and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripPlan is an accepted itinerary persisted for one user.
// Plans are created only by accepting a generated itinerary, changed by
// partial updates, and removed by soft delete (DeletedAt set, row kept).
type TripPlan struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Destination  string
	StartDate    time.Time
	EndDate      time.Time
	PeopleCount  int
	BudgetType   string
	PlanDetails  PlanDetails
	Source       PlanSource
	GenerationID *uuid.UUID // nil when the plan was not tied to a generation
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
	DeletedBy    *uuid.UUID
}

// TripPlanDTO is the public shape of a plan returned to callers.
// Source, ownership, timestamps and soft-delete markers stay internal.
type TripPlanDTO struct {
	ID          uuid.UUID
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	PeopleCount int
	BudgetType  string
	PlanDetails PlanDetails
}

// ToDTO maps a stored plan to its public shape.
func (p TripPlan) ToDTO() TripPlanDTO {
	return TripPlanDTO{
		ID:          p.ID,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		PeopleCount: p.PeopleCount,
		BudgetType:  p.BudgetType,
		PlanDetails: p.PlanDetails,
	}
}

// AcceptPlanCommand persists a generated (possibly edited) itinerary.
// PlanDetails is a pointer so that an omitted itinerary can be told apart
// from an empty one.
type AcceptPlanCommand struct {
	UserID       uuid.UUID
	GenerationID *uuid.UUID
	Destination  string
	StartDate    time.Time
	EndDate      time.Time
	PeopleCount  int
	BudgetType   string
	PlanDetails  *PlanDetails
	Source       PlanSource
}

// UpdatePlanCommand carries a partial update. A nil field means
// "leave unchanged".
type UpdatePlanCommand struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	PeopleCount *float64 // JSON numbers arrive as floats; fractional values fail validation
	BudgetType  *string
	PlanDetails *PlanDetails
}

// HasChanges reports whether at least one mutable field was supplied.
func (c UpdatePlanCommand) HasChanges() bool {
	return c.Destination != nil ||
		c.StartDate != nil ||
		c.EndDate != nil ||
		c.PeopleCount != nil ||
		c.BudgetType != nil ||
		c.PlanDetails != nil
}

// PlanState is the slice of a stored plan the update path needs before it
// writes: the provenance marker and the current itinerary.
type PlanState struct {
	Source      PlanSource
	PlanDetails PlanDetails
}

// PlanDelta is the set of columns an update writes. Only non-nil fields are
// written; Source is set by the service, never by the caller.
type PlanDelta struct {
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	PeopleCount *int
	BudgetType  *string
	PlanDetails *PlanDetails
	Source      *PlanSource
}

// IsEmpty reports whether the delta writes nothing.
func (d PlanDelta) IsEmpty() bool {
	return d.Destination == nil &&
		d.StartDate == nil &&
		d.EndDate == nil &&
		d.PeopleCount == nil &&
		d.BudgetType == nil &&
		d.PlanDetails == nil &&
		d.Source == nil
}
