package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripplanner/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a user. Returns domain.ErrConflict when the email is
	// already registered (case-insensitive).
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)

	// GetByEmail looks a user up by email, ignoring case.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID looks a user up by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	const q = `
		INSERT INTO users (email, password_hash)
		VALUES (@email, @password_hash)
		RETURNING id, email, password_hash, created_at`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email, "password_hash": passwordHash}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE lower(email) = lower(@email)`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE id = @id`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return u, nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	if err := s.Scan(&id, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return domain.User{}, translate(err)
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
