package user

import (
	"context"
	"database/sql"
	"fmt"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, input RegisterInput, hashedPassword string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, input RegisterInput, hashedPassword string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, age, contact_number, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, first_name, last_name, email, age, contact_number, password, created_at, updated_at
	`, uuid.NewString(), input.FirstName, input.LastName, input.Email, input.Age, input.ContactNumber, hashedPassword).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Age, &u.ContactNumber, &u.Password, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", input.Email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, age, contact_number, password, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Age, &u.ContactNumber, &u.Password, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	return u, err
}

func (r *repository) FindByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, age, contact_number, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Age, &u.ContactNumber, &u.Password, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	return u, err
}

func (r *repository) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET first_name     = COALESCE($1, first_name),
		    last_name      = COALESCE($2, last_name),
		    email          = COALESCE($3, email),
		    age            = COALESCE($4, age),
		    contact_number = COALESCE($5, contact_number),
		    updated_at     = NOW()
		WHERE id = $6
		RETURNING id, first_name, last_name, email, age, contact_number, password, created_at, updated_at
	`, params.FirstName, params.LastName, params.Email, params.Age, params.ContactNumber, userID).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Age, &u.ContactNumber, &u.Password, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}
