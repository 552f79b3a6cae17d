package service

import (
	"blogstarter/internal/auth"
	"blogstarter/internal/config"
	"blogstarter/internal/database"
	"blogstarter/internal/metrics"
	"blogstarter/internal/models"
	"blogstarter/internal/pubsub"
	"blogstarter/internal/repository"
	"blogstarter/internal/storage"

	"go.uber.org/zap"
)

type Service struct {
	User   UserService
	Post   PostService
	Auth   AuthService
	Health HealthService
}

// Deps bundles what the services share.
type Deps struct {
	Config  *config.Config
	Hasher  *auth.PasswordHasher
	Tokens  *auth.TokenIssuer
	Storage storage.Storage
	Broker  *pubsub.Broker[models.Post]
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewService(rep *repository.Repository, db *database.DB, deps Deps) *Service {
	return &Service{
		User:   NewUserService(rep.User, deps.Hasher, deps.Log),
		Post:   NewPostService(rep.Post, rep.Image, rep.User, deps.Storage, deps.Broker, deps.Config.MaxUploadSize, deps.Log),
		Auth:   NewAuthService(rep.User, deps.Hasher, deps.Tokens, deps.Metrics, deps.Log),
		Health: NewHealthService(db, rep.Tables, deps.Storage),
	}
}
