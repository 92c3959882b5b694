package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripplanner/internal/domain"
)

// TripPlanRepo defines the persistence operations for trip plans.
// Every single-row operation is scoped by owner and excludes soft-deleted
// rows, so a foreign, missing or deleted plan all look the same:
// domain.ErrNotFound (or false for SoftDelete).
type TripPlanRepo interface {
	// Create inserts a new plan and returns the persisted record with
	// DB-generated id, created_at and updated_at.
	Create(ctx context.Context, plan domain.TripPlan) (domain.TripPlan, error)

	// GetByID returns one active plan owned by userID.
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.TripPlan, error)

	// GetMutableState returns the source and itinerary of one active plan
	// owned by userID.
	GetMutableState(ctx context.Context, id, userID uuid.UUID) (domain.PlanState, error)

	// ListPaged returns one page of active plans owned by userID, newest
	// first, and the total number of active plans.
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripPlan, int64, error)

	// Update writes the non-nil fields of delta to one active plan owned by
	// userID and returns the updated record.
	Update(ctx context.Context, id, userID uuid.UUID, delta domain.PlanDelta) (domain.TripPlan, error)

	// SoftDelete marks one active plan owned by userID as deleted.
	// Returns false (and no error) when no row matched.
	SoftDelete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

const planColumns = `id, user_id, destination, start_date, end_date, people_count,
		budget_type, plan_details, source, generation_id, created_at, updated_at`

// activePlanScope is the one filter applied to every read, update and delete
// of a single plan.
const activePlanScope = `id = @id AND user_id = @user_id AND deleted_at IS NULL`

// pgTripPlanRepo is the Postgres implementation of TripPlanRepo.
type pgTripPlanRepo struct {
	db db
}

// NewTripPlanRepo constructs a TripPlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewTripPlanRepo(db db) TripPlanRepo {
	return &pgTripPlanRepo{db: db}
}

// Create inserts a new plan row and returns the full persisted record.
func (r *pgTripPlanRepo) Create(ctx context.Context, plan domain.TripPlan) (domain.TripPlan, error) {
	const q = `
		INSERT INTO trip_plans (user_id, destination, start_date, end_date, people_count,
		                        budget_type, plan_details, source, generation_id)
		VALUES (@user_id, @destination, @start_date, @end_date, @people_count,
		        @budget_type, @plan_details, @source, @generation_id)
		RETURNING ` + planColumns

	details, err := json.Marshal(plan.PlanDetails)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.TripPlanRepo.Create: encode plan_details: %w", err)
	}

	args := pgx.NamedArgs{
		"user_id":       plan.UserID,
		"destination":   plan.Destination,
		"start_date":    plan.StartDate,
		"end_date":      plan.EndDate,
		"people_count":  plan.PeopleCount,
		"budget_type":   plan.BudgetType,
		"plan_details":  details,
		"source":        string(plan.Source),
		"generation_id": plan.GenerationID, // nil becomes NULL
	}

	result, err := scanPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.TripPlanRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves one active plan scoped to its owner.
func (r *pgTripPlanRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.TripPlan, error) {
	const q = `SELECT ` + planColumns + ` FROM trip_plans WHERE ` + activePlanScope

	result, err := scanPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.TripPlanRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetMutableState reads only the columns the update path branches on.
func (r *pgTripPlanRepo) GetMutableState(ctx context.Context, id, userID uuid.UUID) (domain.PlanState, error) {
	const q = `SELECT source, plan_details FROM trip_plans WHERE ` + activePlanScope

	var (
		state   domain.PlanState
		source  string
		details []byte
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}).Scan(&source, &details)
	if err != nil {
		return domain.PlanState{}, fmt.Errorf("repo.TripPlanRepo.GetMutableState: %w", translate(err))
	}
	state.Source = domain.PlanSource(source)
	if err := json.Unmarshal(details, &state.PlanDetails); err != nil {
		return domain.PlanState{}, fmt.Errorf("repo.TripPlanRepo.GetMutableState: decode plan_details: %w", err)
	}
	return state, nil
}

// ListPaged returns one page of the owner's active plans, newest first.
func (r *pgTripPlanRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripPlan, int64, error) {
	const countQ = `SELECT count(*) FROM trip_plans WHERE user_id = @user_id AND deleted_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripPlanRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + planColumns + `
		FROM trip_plans
		WHERE user_id = @user_id AND deleted_at IS NULL
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripPlanRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	plans := []domain.TripPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripPlanRepo.ListPaged: scan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripPlanRepo.ListPaged: rows: %w", err)
	}
	return plans, total, nil
}

// Update builds the SET list from the non-nil delta fields.
// updated_at is always refreshed.
func (r *pgTripPlanRepo) Update(ctx context.Context, id, userID uuid.UUID, delta domain.PlanDelta) (domain.TripPlan, error) {
	sets := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id, "user_id": userID}

	set := func(column string, value any) {
		sets = append(sets, column+" = @"+column)
		args[column] = value
	}
	if delta.Destination != nil {
		set("destination", *delta.Destination)
	}
	if delta.StartDate != nil {
		set("start_date", *delta.StartDate)
	}
	if delta.EndDate != nil {
		set("end_date", *delta.EndDate)
	}
	if delta.PeopleCount != nil {
		set("people_count", *delta.PeopleCount)
	}
	if delta.BudgetType != nil {
		set("budget_type", *delta.BudgetType)
	}
	if delta.PlanDetails != nil {
		details, err := json.Marshal(delta.PlanDetails)
		if err != nil {
			return domain.TripPlan{}, fmt.Errorf("repo.TripPlanRepo.Update: encode plan_details: %w", err)
		}
		set("plan_details", details)
	}
	if delta.Source != nil {
		set("source", string(*delta.Source))
	}

	q := `UPDATE trip_plans SET ` + strings.Join(sets, ", ") +
		` WHERE ` + activePlanScope +
		` RETURNING ` + planColumns

	result, err := scanPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.TripPlanRepo.Update: %w", err)
	}
	return result, nil
}

// SoftDelete stamps deleted_at and deleted_by; no other column changes.
func (r *pgTripPlanRepo) SoftDelete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	const q = `
		UPDATE trip_plans
		SET deleted_at = now(),
		    deleted_by = @user_id
		WHERE ` + activePlanScope

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("repo.TripPlanRepo.SoftDelete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanPlan maps a single row selected with planColumns into a domain.TripPlan.
func scanPlan(s scanner) (domain.TripPlan, error) {
	var (
		p            domain.TripPlan
		id, userID   pgtype.UUID
		generationID pgtype.UUID
		start, end   pgtype.Date
		details      []byte
		source       string
	)

	err := s.Scan(&id, &userID, &p.Destination, &start, &end, &p.PeopleCount,
		&p.BudgetType, &details, &source, &generationID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.TripPlan{}, translate(err)
	}

	p.ID = uuid.UUID(id.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	p.StartDate = start.Time
	p.EndDate = end.Time
	p.Source = domain.PlanSource(source)
	p.GenerationID = uuidPtr(generationID)
	if err := json.Unmarshal(details, &p.PlanDetails); err != nil {
		return domain.TripPlan{}, fmt.Errorf("decode plan_details: %w", err)
	}
	return p, nil
}
