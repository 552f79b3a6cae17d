package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogstarter/internal/config"
	"blogstarter/internal/database/migrations"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

type DB struct {
	*sqlx.DB
}

// gooseUp is replaced in tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

func DSN(cfg config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

// ConnectDB opens the pool, applies pending migrations and pings the server.
func ConnectDB(ctx context.Context, cfg config.DB, log *zap.Logger) (*DB, error) {
	log.Info("connecting to database", zap.String("host", cfg.DbHOST), zap.String("dbname", cfg.DbNAME))

	conn, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(30 * time.Minute)

	db := &DB{conn}

	if err := db.RunMigrations(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := db.HealthCheck(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("database health check: %w", err)
	}

	log.Info("connected to postgres")
	return db, nil
}

func (db *DB) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := gooseUp(ctx, db.DB.DB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return errors.New("database connection is not initialised")
	}
	return db.PingContext(ctx)
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}
