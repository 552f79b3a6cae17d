package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogstarter/internal/auth"
	"blogstarter/internal/metrics"
	"blogstarter/internal/models"
	"blogstarter/internal/repository"

	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, input models.SignupInput) (models.TokenPair, error)
	Login(ctx context.Context, email, password string) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	// VerifyAccess checks signature and expiry of an access token.
	VerifyAccess(accessToken string) (string, error)
	ResolveUser(ctx context.Context, accessToken string) (*models.User, error)
	ValidateUser(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	m *metrics.Metrics,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		metrics:  m,
		log:      log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, input models.SignupInput) (pair models.TokenPair, err error) {
	defer func() { s.metrics.AuthEvent("signup", err) }()

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return models.TokenPair{}, err
	}

	user := &models.User{
		Email:     normalizeEmail(input.Email),
		Password:  hashed,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Role:      models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return models.TokenPair{}, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID))

	return s.tokens.IssuePair(user.ID)
}

func (s *authService) Login(ctx context.Context, email, password string) (pair models.TokenPair, err error) {
	defer func() { s.metrics.AuthEvent("login", err) }()

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.TokenPair{}, err
	}

	if !s.hasher.Verify(password, user.Password) {
		s.log.Debug("login with wrong password", zap.String("user_id", user.ID))
		return models.TokenPair{}, fmt.Errorf("%w: invalid password", models.ErrBadRequest)
	}

	return s.tokens.IssuePair(user.ID)
}

// Refresh mints a fresh pair for the user of a valid refresh token. The old
// refresh token stays usable until it expires.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (pair models.TokenPair, err error) {
	defer func() { s.metrics.AuthEvent("refresh", err) }()

	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	return s.tokens.IssuePair(userID)
}

func (s *authService) VerifyAccess(accessToken string) (string, error) {
	return s.tokens.VerifyAccess(accessToken)
}

// ResolveUser trusts the token; it must have been verified earlier in the
// request.
func (s *authService) ResolveUser(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := s.tokens.Decode(accessToken)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) ValidateUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", models.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}
