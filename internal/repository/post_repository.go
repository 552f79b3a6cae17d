package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogstarter/internal/models"
	"blogstarter/internal/pagination"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const postColumns = `id, title, content, published, author_id, created_at, updated_at`

// postOrderColumns maps the public ordering fields onto SQL expressions.
// content is nullable, so NULL sorts as the empty string to keep row
// comparisons total.
var postOrderColumns = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"published": "published",
	"title":     "title",
	"content":   "COALESCE(content, '')",
}

func IsPostOrderField(field string) bool {
	_, ok := postOrderColumns[field]
	return ok
}

// PostKey is the pagination.KeyFunc for posts.
func PostKey(p models.Post, field string) (any, string) {
	switch field {
	case "id":
		return p.ID, p.ID
	case "createdAt":
		return p.CreatedAt, p.ID
	case "updatedAt":
		return p.UpdatedAt, p.ID
	case "published":
		return p.Published, p.ID
	case "title":
		return p.Title, p.ID
	case "content":
		if p.Content == nil {
			return "", p.ID
		}
		return *p.Content, p.ID
	}
	return nil, p.ID
}

func postCursorValue(c *pagination.Cursor) (any, error) {
	switch c.Field {
	case "createdAt", "updatedAt":
		var t time.Time
		if err := c.Scan(&t); err != nil {
			return nil, err
		}
		return t, nil
	case "published":
		var b bool
		if err := c.Scan(&b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		var s string
		if err := c.Scan(&s); err != nil {
			return nil, err
		}
		return s, nil
	}
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	query := `
		INSERT INTO posts (id, title, content, published, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, post.ID, post.Title, post.Content, post.Published, post.AuthorID).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, fmt.Errorf("%w: no post with id %s", models.ErrNotFound, postID)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) ListPublishedByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	posts := []models.Post{}

	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = $1 AND published = TRUE
		ORDER BY created_at, id
	`

	if err := r.db.SelectContext(ctx, &posts, query, authorID); err != nil {
		if isInvalidText(err) {
			return []models.Post{}, nil
		}
		return nil, fmt.Errorf("list posts of author: %w", err)
	}

	return posts, nil
}

func publishedConditions(filter PostFilter) ([]string, []any) {
	conds := []string{"published = TRUE"}
	var args []any
	if filter.Query != "" {
		conds = append(conds, "strpos(title, ?) > 0")
		args = append(args, filter.Query)
	}
	return conds, args
}

// FindPublished runs the keyset query for one pagination window. Rows are
// compared on (order column, id) so ties on the column keep a fixed place.
func (r *postRepository) FindPublished(ctx context.Context, filter PostFilter, w pagination.Window) ([]models.Post, error) {
	column, ok := postOrderColumns[w.Order.Field]
	if !ok {
		return nil, fmt.Errorf("%w: cannot order posts by %q", models.ErrBadRequest, w.Order.Field)
	}

	conds, args := publishedConditions(filter)

	after, before := ">", "<"
	if w.Order.Direction == pagination.Desc {
		after, before = before, after
	}

	if w.After != nil {
		value, err := postCursorValue(w.After)
		if err != nil {
			return nil, err
		}
		conds = append(conds, fmt.Sprintf("(%s, id) %s (?, ?)", column, after))
		args = append(args, value, w.After.ID)
	}
	if w.Before != nil {
		value, err := postCursorValue(w.Before)
		if err != nil {
			return nil, err
		}
		conds = append(conds, fmt.Sprintf("(%s, id) %s (?, ?)", column, before))
		args = append(args, value, w.Before.ID)
	}

	direction := w.Order.Direction
	if w.Backward {
		direction = direction.Reversed()
	}

	query := fmt.Sprintf(
		"SELECT %s FROM posts WHERE %s ORDER BY %s %s, id %s LIMIT ?",
		postColumns, strings.Join(conds, " AND "), column, direction.SQL(), direction.SQL(),
	)
	args = append(args, w.Limit)

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...); err != nil {
		// only cursor positions can carry a malformed id
		if isInvalidText(err) {
			return nil, fmt.Errorf("%w: position does not name a post", pagination.ErrInvalidCursor)
		}
		return nil, fmt.Errorf("find published posts: %w", err)
	}

	if w.Backward {
		pagination.Reverse(posts)
	}

	return posts, nil
}

func (r *postRepository) CountPublished(ctx context.Context, filter PostFilter) (int, error) {
	conds, args := publishedConditions(filter)

	query := "SELECT COUNT(*) FROM posts WHERE " + strings.Join(conds, " AND ")

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}

	return count, nil
}
