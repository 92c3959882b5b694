package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripplanner/internal/domain"
)

// GenerationRepo defines the persistence operations for generation records.
// Records are append-only; nothing in the application updates or deletes them.
type GenerationRepo interface {
	// Create inserts one generation attempt and returns it with id and
	// created_at populated.
	Create(ctx context.Context, g domain.Generation) (domain.Generation, error)

	// ExistsForUser reports whether a generation with id exists and belongs
	// to userID.
	ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error)

	// CountSince returns how many attempts userID made at or after since.
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
}

// pgGenerationRepo is the Postgres implementation of GenerationRepo.
type pgGenerationRepo struct {
	db db
}

// NewGenerationRepo constructs a GenerationRepo backed by the provided db connection.
func NewGenerationRepo(db db) GenerationRepo {
	return &pgGenerationRepo{db: db}
}

func (r *pgGenerationRepo) Create(ctx context.Context, g domain.Generation) (domain.Generation, error) {
	const q = `
		INSERT INTO generations (user_id, destination, start_date, end_date, people_count,
		                         budget_type, model, duration_ms, status, error_message)
		VALUES (@user_id, @destination, @start_date, @end_date, @people_count,
		        @budget_type, @model, @duration_ms, @status, @error_message)
		RETURNING id, created_at`

	args := pgx.NamedArgs{
		"user_id":       g.UserID,
		"destination":   g.Destination,
		"start_date":    g.StartDate,
		"end_date":      g.EndDate,
		"people_count":  g.PeopleCount,
		"budget_type":   g.BudgetType,
		"model":         g.Model,
		"duration_ms":   g.DurationMS,
		"status":        string(g.Status),
		"error_message": g.ErrorMessage,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id, &g.CreatedAt); err != nil {
		return domain.Generation{}, fmt.Errorf("repo.GenerationRepo.Create: %w", translate(err))
	}
	g.ID = uuid.UUID(id.Bytes)
	return g, nil
}

func (r *pgGenerationRepo) ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM generations WHERE id = @id AND user_id = @user_id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.GenerationRepo.ExistsForUser: %w", err)
	}
	return exists, nil
}

func (r *pgGenerationRepo) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	const q = `SELECT count(*) FROM generations WHERE user_id = @user_id AND created_at >= @since`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "since": since}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.GenerationRepo.CountSince: %w", err)
	}
	return n, nil
}
