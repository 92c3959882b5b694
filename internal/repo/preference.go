package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripplanner/internal/domain"
)

// PreferenceRepo defines the persistence operations for preference templates.
// All single-row operations are scoped by owner.
type PreferenceRepo interface {
	// Create inserts a template. Returns domain.ErrConflict when the owner
	// already has a template with the same name.
	Create(ctx context.Context, p domain.PreferenceTemplate) (domain.PreferenceTemplate, error)

	// List returns all templates owned by userID ordered by name.
	List(ctx context.Context, userID uuid.UUID) ([]domain.PreferenceTemplate, error)

	// GetByID returns one template owned by userID.
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.PreferenceTemplate, error)

	// Update writes the non-nil fields of cmd. Returns domain.ErrNotFound when
	// no template matched and domain.ErrConflict on a duplicate name.
	Update(ctx context.Context, cmd domain.UpdatePreferenceCommand) (domain.PreferenceTemplate, error)

	// Delete removes one template owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

const preferenceColumns = `id, user_id, name, people_count, budget_type, created_at, updated_at`

// pgPreferenceRepo is the Postgres implementation of PreferenceRepo.
type pgPreferenceRepo struct {
	db db
}

// NewPreferenceRepo constructs a PreferenceRepo backed by the provided db connection.
func NewPreferenceRepo(db db) PreferenceRepo {
	return &pgPreferenceRepo{db: db}
}

func (r *pgPreferenceRepo) Create(ctx context.Context, p domain.PreferenceTemplate) (domain.PreferenceTemplate, error) {
	const q = `
		INSERT INTO user_preferences (user_id, name, people_count, budget_type)
		VALUES (@user_id, @name, @people_count, @budget_type)
		RETURNING ` + preferenceColumns

	result, err := scanPreference(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"user_id":      p.UserID,
		"name":         p.Name,
		"people_count": p.PeopleCount,
		"budget_type":  p.BudgetType,
	}))
	if err != nil {
		return domain.PreferenceTemplate{}, fmt.Errorf("repo.PreferenceRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPreferenceRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.PreferenceTemplate, error) {
	const q = `SELECT ` + preferenceColumns + ` FROM user_preferences WHERE user_id = @user_id ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.PreferenceRepo.List: %w", err)
	}
	defer rows.Close()

	prefs := []domain.PreferenceTemplate{}
	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PreferenceRepo.List: scan: %w", err)
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PreferenceRepo.List: rows: %w", err)
	}
	return prefs, nil
}

func (r *pgPreferenceRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.PreferenceTemplate, error) {
	const q = `SELECT ` + preferenceColumns + ` FROM user_preferences WHERE id = @id AND user_id = @user_id`

	result, err := scanPreference(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.PreferenceTemplate{}, fmt.Errorf("repo.PreferenceRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPreferenceRepo) Update(ctx context.Context, cmd domain.UpdatePreferenceCommand) (domain.PreferenceTemplate, error) {
	sets := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": cmd.ID, "user_id": cmd.UserID}
	if cmd.Name != nil {
		sets = append(sets, "name = @name")
		args["name"] = *cmd.Name
	}
	if cmd.PeopleCount != nil {
		sets = append(sets, "people_count = @people_count")
		args["people_count"] = *cmd.PeopleCount
	}
	if cmd.BudgetType != nil {
		sets = append(sets, "budget_type = @budget_type")
		args["budget_type"] = *cmd.BudgetType
	}

	q := `UPDATE user_preferences SET ` + strings.Join(sets, ", ") +
		` WHERE id = @id AND user_id = @user_id RETURNING ` + preferenceColumns

	result, err := scanPreference(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PreferenceTemplate{}, fmt.Errorf("repo.PreferenceRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgPreferenceRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	const q = `DELETE FROM user_preferences WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PreferenceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanPreference(s scanner) (domain.PreferenceTemplate, error) {
	var (
		p          domain.PreferenceTemplate
		id, userID pgtype.UUID
	)
	err := s.Scan(&id, &userID, &p.Name, &p.PeopleCount, &p.BudgetType, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.PreferenceTemplate{}, translate(err)
	}
	p.ID = uuid.UUID(id.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	return p, nil
}
