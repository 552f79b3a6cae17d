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

const imageColumns = `id, post_id, object_name, url, created_at`

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	query := `
		INSERT INTO post_images (id, post_id, object_name, url)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query, image.ImageID, image.PostID, image.ObjectName, image.ImageURL).
		Scan(&image.CreatedAt)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, imageID string) (*models.Image, error) {
	var image models.Image

	query := `SELECT ` + imageColumns + ` FROM post_images WHERE id = $1`

	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, fmt.Errorf("%w: no image with id %s", models.ErrNotFound, imageID)
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	return &image, nil
}

func (r *imageRepository) ListByPost(ctx context.Context, postID string) ([]models.Image, error) {
	images := []models.Image{}

	query := `SELECT ` + imageColumns + ` FROM post_images WHERE post_id = $1 ORDER BY created_at, id`

	if err := r.db.SelectContext(ctx, &images, query, postID); err != nil {
		if isInvalidText(err) {
			return []models.Image{}, nil
		}
		return nil, fmt.Errorf("list images: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_images WHERE id = $1`, imageID)
	if err != nil {
		if isInvalidText(err) {
			return fmt.Errorf("%w: no image with id %s", models.ErrNotFound, imageID)
		}
		return fmt.Errorf("delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: no image with id %s", models.ErrNotFound, imageID)
	}

	return nil
}
