package repository

import (
	"context"

	"blogstarter/internal/models"
	"blogstarter/internal/pagination"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, userID string, profile ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListPublishedByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	FindPublished(ctx context.Context, filter PostFilter, window pagination.Window) ([]models.Post, error)
	CountPublished(ctx context.Context, filter PostFilter) (int, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, imageID string) (*models.Image, error)
	ListByPost(ctx context.Context, postID string) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type TablesRepository interface {
	CountTables(ctx context.Context) (int, error)
}

// ProfileUpdate carries the optional profile fields; nil leaves a column as is.
type ProfileUpdate struct {
	Firstname *string
	Lastname  *string
}

// PostFilter narrows published posts. Query is a case-sensitive substring
// of the title; empty matches everything.
type PostFilter struct {
	Query string
}

type Repository struct {
	User   UserRepository
	Post   PostRepository
	Image  ImageRepository
	Tables TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Post:   NewPostRepository(db),
		Image:  NewImageRepository(db),
		Tables: NewTablesRepository(db),
	}
}
