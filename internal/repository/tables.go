package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

// CountTables counts the tables of the public schema, goose's version table
// included.
func (r *tablesRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
	`)
	if err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}

	return count, nil
}
