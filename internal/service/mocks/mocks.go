// Package mocks holds testify mocks of the service interfaces for handler
// and middleware tests.
package mocks

import (
	"context"

	"blogstarter/internal/models"
	"blogstarter/internal/pagination"
	"blogstarter/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, input models.SignupInput) (models.TokenPair, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.TokenPair), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(models.TokenPair), args.Error(1)
}

func (m *MockAuthService) VerifyAccess(accessToken string) (string, error) {
	args := m.Called(accessToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResolveUser(ctx context.Context, accessToken string) (*models.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Me(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, input models.UpdateUserInput) (*models.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, input models.ChangePasswordInput) (*models.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID string, input models.CreatePostInput) (*models.Post, error) {
	args := m.Called(ctx, authorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) PublishedPosts(ctx context.Context, q service.PostsQuery) (*pagination.Connection[models.Post], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Connection[models.Post]), args.Error(1)
}

func (m *MockPostService) UserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) Post(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) PostAuthor(ctx context.Context, postID string) (*models.User, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockPostService) AddImage(ctx context.Context, userID, postID string, upload service.ImageUpload) (*models.Image, error) {
	args := m.Called(ctx, userID, postID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockPostService) DeleteImage(ctx context.Context, userID, postID, imageID string) error {
	args := m.Called(ctx, userID, postID, imageID)
	return args.Error(0)
}

func (m *MockPostService) Subscribe() (<-chan models.Post, func()) {
	args := m.Called()
	return args.Get(0).(<-chan models.Post), args.Get(1).(func())
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Hello() string {
	return m.Called().String(0)
}

func (m *MockHealthService) HelloName(name string) string {
	return m.Called(name).String(0)
}

func (m *MockHealthService) Ready(ctx context.Context) service.Readiness {
	return m.Called(ctx).Get(0).(service.Readiness)
}

var (
	_ service.AuthService   = (*MockAuthService)(nil)
	_ service.UserService   = (*MockUserService)(nil)
	_ service.PostService   = (*MockPostService)(nil)
	_ service.HealthService = (*MockHealthService)(nil)
)
