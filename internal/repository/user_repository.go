package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogstarter/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password, firstname, lastname, role, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user, assigning an id when missing. The caller hashes the
// password and normalises the email beforehand.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query := `
		INSERT INTO users (id, email, password, firstname, lastname, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.Password, user.Firstname, user.Lastname, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s is already used", models.ErrConflict, user.Email)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, fmt.Errorf("%w: no user with id %s", models.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user for email %s", models.ErrNotFound, email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, userID string, profile ProfileUpdate) (*models.User, error) {
	var user models.User

	query := `
		UPDATE users
		SET firstname = COALESCE($2, firstname),
		    lastname = COALESCE($3, lastname),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	err := r.db.GetContext(ctx, &user, query, userID, profile.Firstname, profile.Lastname)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, fmt.Errorf("%w: no user with id %s", models.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) (*models.User, error) {
	var user models.User

	query := `
		UPDATE users
		SET password = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	err := r.db.GetContext(ctx, &user, query, userID, passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, fmt.Errorf("%w: no user with id %s", models.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("update password: %w", err)
	}

	return &user, nil
}
