package app

import (
	"context"
	"fmt"

	"blogstarter/internal/auth"
	"blogstarter/internal/config"
	"blogstarter/internal/database"
	"blogstarter/internal/metrics"
	"blogstarter/internal/models"
	"blogstarter/internal/pubsub"
	"blogstarter/internal/repository"
	"blogstarter/internal/service"
	"blogstarter/internal/storage"

	"go.uber.org/zap"
)

// Components is everything main needs to serve and shut down.
type Components struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Broker   *pubsub.Broker[models.Post]
	Metrics  *metrics.Metrics
}

func (c *Components) Close() error {
	c.Broker.Close()
	return c.DB.CloseDB()
}

func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Components, error) {
	hasher, err := auth.NewPasswordHasher(cfg.Security.BcryptSaltOrRound)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	db, err := database.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		_ = db.CloseDB()
		return nil, err
	}
	if err := minioClient.EnsureBucket(ctx); err != nil {
		// images stay unavailable until the bucket is reachable; readiness reports it
		log.Warn("object storage not ready", zap.Error(err))
	}

	repo := repository.NewRepository(db.DB)
	broker := pubsub.NewBroker[models.Post](pubsub.DefaultBuffer)
	m := metrics.New()

	services := service.NewService(repo, db, service.Deps{
		Config:  cfg,
		Hasher:  hasher,
		Tokens:  auth.NewTokenIssuer(cfg.Security),
		Storage: minioClient,
		Broker:  broker,
		Metrics: m,
		Log:     log,
	})

	return &Components{
		DB:       db,
		Repo:     repo,
		Services: services,
		Broker:   broker,
		Metrics:  m,
	}, nil
}
