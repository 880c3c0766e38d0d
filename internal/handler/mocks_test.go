package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"moviedb/internal/auth"
	"moviedb/internal/model"
	"moviedb/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, email, password)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID uint) (*model.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) Ban(ctx context.Context, actor service.Actor, targetID uint, reason string) (*service.BanResult, error) {
	args := m.Called(ctx, actor, targetID, reason)
	result, _ := args.Get(0).(*service.BanResult)
	return result, args.Error(1)
}

func (m *MockModerationService) Unban(ctx context.Context, actor service.Actor, targetID uint) error {
	args := m.Called(ctx, actor, targetID)
	return args.Error(0)
}

func (m *MockModerationService) Promote(ctx context.Context, actor service.Actor, targetID uint) (*model.User, error) {
	args := m.Called(ctx, actor, targetID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockModerationService) Demote(ctx context.Context, actor service.Actor, targetID uint) (*model.User, error) {
	args := m.Called(ctx, actor, targetID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockModerationService) ListBanned(ctx context.Context) ([]model.BannedView, error) {
	args := m.Called(ctx)
	banned, _ := args.Get(0).([]model.BannedView)
	return banned, args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockAdminService) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.Stats)
	return stats, args.Error(1)
}

func (m *MockAdminService) UserActivity(ctx context.Context, userID uint) (*service.UserActivity, error) {
	args := m.Called(ctx, userID)
	activity, _ := args.Get(0).(*service.UserActivity)
	return activity, args.Error(1)
}

func (m *MockAdminService) UpdateMovie(ctx context.Context, movieID uint, input service.MovieInput) (*model.Movie, error) {
	args := m.Called(ctx, movieID, input)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MockAdminService) DeleteMovie(ctx context.Context, movieID uint) error {
	args := m.Called(ctx, movieID)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByMovie(ctx context.Context, movieID uint) ([]model.ReviewView, error) {
	args := m.Called(ctx, movieID)
	reviews, _ := args.Get(0).([]model.ReviewView)
	return reviews, args.Error(1)
}

func (m *MockReviewService) ListAll(ctx context.Context) ([]model.ReviewView, error) {
	args := m.Called(ctx)
	reviews, _ := args.Get(0).([]model.ReviewView)
	return reviews, args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, actor service.Actor, movieID uint, rating int, text string) (*model.Review, error) {
	args := m.Called(ctx, actor, movieID, rating, text)
	review, _ := args.Get(0).(*model.Review)
	return review, args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor service.Actor, reviewID uint, rating int, text string) (*model.Review, error) {
	args := m.Called(ctx, actor, reviewID, rating, text)
	review, _ := args.Get(0).(*model.Review)
	return review, args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor service.Actor, reviewID uint) error {
	args := m.Called(ctx, actor, reviewID)
	return args.Error(0)
}
