package service

import (
	"context"
	"fmt"

	"blogstarter/internal/auth"
	"blogstarter/internal/models"
	"blogstarter/internal/repository"

	"go.uber.org/zap"
)

type UserService interface {
	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, input models.UpdateUserInput) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, input models.ChangePasswordInput) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, hasher: hasher, log: log}
}

func (s *userService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateUser(ctx context.Context, userID string, input models.UpdateUserInput) (*models.User, error) {
	return s.userRepo.Update(ctx, userID, repository.ProfileUpdate{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
	})
}

func (s *userService) ChangePassword(ctx context.Context, userID string, input models.ChangePasswordInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(input.OldPassword, user.Password) {
		return nil, fmt.Errorf("%w: invalid password", models.ErrBadRequest)
	}

	hashed, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdatePassword(ctx, userID, hashed)
	if err != nil {
		return nil, err
	}

	s.log.Info("password changed", zap.String("user_id", userID))
	return updated, nil
}
