package handler_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

// memPlans is an in-memory repo.TripPlanRepo honouring the owner and
// soft-delete scoping of the real one.
type memPlans struct {
	plans map[uuid.UUID]domain.TripPlan
}

func newMemPlans() *memPlans {
	return &memPlans{plans: map[uuid.UUID]domain.TripPlan{}}
}

func (m *memPlans) active(id, userID uuid.UUID) (domain.TripPlan, bool) {
	p, ok := m.plans[id]
	if !ok || p.UserID != userID || p.DeletedAt != nil {
		return domain.TripPlan{}, false
	}
	return p, true
}

func (m *memPlans) Create(_ context.Context, p domain.TripPlan) (domain.TripPlan, error) {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.plans[p.ID] = p
	return p, nil
}

func (m *memPlans) GetByID(_ context.Context, id, userID uuid.UUID) (domain.TripPlan, error) {
	p, ok := m.active(id, userID)
	if !ok {
		return domain.TripPlan{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *memPlans) GetMutableState(_ context.Context, id, userID uuid.UUID) (domain.PlanState, error) {
	p, ok := m.active(id, userID)
	if !ok {
		return domain.PlanState{}, domain.ErrNotFound
	}
	return domain.PlanState{Source: p.Source, PlanDetails: p.PlanDetails}, nil
}

func (m *memPlans) ListPaged(_ context.Context, userID uuid.UUID, _ domain.PaginationParams) ([]domain.TripPlan, int64, error) {
	var out []domain.TripPlan
	for _, p := range m.plans {
		if p.UserID == userID && p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memPlans) Update(_ context.Context, id, userID uuid.UUID, d domain.PlanDelta) (domain.TripPlan, error) {
	p, ok := m.active(id, userID)
	if !ok {
		return domain.TripPlan{}, domain.ErrNotFound
	}
	if d.Destination != nil {
		p.Destination = *d.Destination
	}
	if d.StartDate != nil {
		p.StartDate = *d.StartDate
	}
	if d.EndDate != nil {
		p.EndDate = *d.EndDate
	}
	if d.PeopleCount != nil {
		p.PeopleCount = *d.PeopleCount
	}
	if d.BudgetType != nil {
		p.BudgetType = *d.BudgetType
	}
	if d.PlanDetails != nil {
		p.PlanDetails = *d.PlanDetails
	}
	if d.Source != nil {
		p.Source = *d.Source
	}
	p.UpdatedAt = time.Now()
	m.plans[id] = p
	return p, nil
}

func (m *memPlans) SoftDelete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	p, ok := m.active(id, userID)
	if !ok {
		return false, nil
	}
	now := time.Now()
	p.DeletedAt = &now
	p.DeletedBy = &userID
	m.plans[id] = p
	return true, nil
}

// noGenerations is a repo.GenerationRepo that knows no generations.
type noGenerations struct{}

func (noGenerations) Create(_ context.Context, g domain.Generation) (domain.Generation, error) {
	g.ID = uuid.New()
	return g, nil
}
func (noGenerations) ExistsForUser(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (noGenerations) CountSince(context.Context, uuid.UUID, time.Time) (int64, error) {
	return 0, nil
}

var (
	_ repo.TripPlanRepo   = (*memPlans)(nil)
	_ repo.GenerationRepo = noGenerations{}
)
