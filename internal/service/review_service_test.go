package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/model"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("author comes from actor", func(t *testing.T) {
		repo := new(MockReviewRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(r *model.Review) bool {
			return r.UserID == 3 && r.MovieID == 12 && r.Rating == 8
		})).Return(nil)

		review, err := NewReviewService(repo).Create(ctx, Actor{ID: 3, Role: model.RoleRegular}, 12, 8, "great")
		require.NoError(t, err)
		assert.Equal(t, "great", review.ReviewText)
		repo.AssertExpectations(t)
	})

	t.Run("rating out of range", func(t *testing.T) {
		repo := new(MockReviewRepository)
		_, err := NewReviewService(repo).Create(ctx, Actor{ID: 3}, 12, 11, "")
		assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown movie", func(t *testing.T) {
		repo := new(MockReviewRepository)
		repo.On("Create", ctx, mock.Anything).Return(apperrors.BadRequest("referenced resource does not exist"))
		_, err := NewReviewService(repo).Create(ctx, Actor{ID: 3}, 404, 5, "")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
	})
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()
	existing := func() *model.Review { return &model.Review{ReviewID: 1, UserID: 3, MovieID: 12, Rating: 5} }

	tests := []struct {
		name     string
		actor    Actor
		setup    func(*MockReviewRepository)
		wantKind apperrors.Kind
		wantErr  bool
	}{
		{
			name:  "owner edits",
			actor: Actor{ID: 3, Role: model.RoleRegular},
			setup: func(r *MockReviewRepository) {
				r.On("FindByID", ctx, uint(1)).Return(existing(), nil)
				r.On("Update", ctx, mock.MatchedBy(func(rv *model.Review) bool { return rv.Rating == 9 })).Return(nil)
			},
		},
		{
			name:  "moderator cannot edit",
			actor: Actor{ID: 2, Role: model.RoleModerator},
			setup: func(r *MockReviewRepository) {
				r.On("FindByID", ctx, uint(1)).Return(existing(), nil)
			},
			wantErr:  true,
			wantKind: apperrors.KindForbidden,
		},
		{
			name:  "missing review",
			actor: Actor{ID: 3},
			setup: func(r *MockReviewRepository) {
				r.On("FindByID", ctx, uint(1)).Return(nil, apperrors.NotFound("record not found"))
			},
			wantErr:  true,
			wantKind: apperrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReviewRepository)
			tt.setup(repo)

			review, err := NewReviewService(repo).Update(ctx, tt.actor, 1, 9, "edited")
			if tt.wantErr {
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "edited", review.ReviewText)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()
	existing := &model.Review{ReviewID: 1, UserID: 3}

	tests := []struct {
		name    string
		actor   Actor
		allowed bool
	}{
		{name: "owner", actor: Actor{ID: 3, Role: model.RoleRegular}, allowed: true},
		{name: "moderator", actor: Actor{ID: 2, Role: model.RoleModerator}, allowed: true},
		{name: "admin", actor: Actor{ID: 1, Role: model.RoleAdmin}, allowed: true},
		{name: "other regular user", actor: Actor{ID: 4, Role: model.RoleRegular}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReviewRepository)
			repo.On("FindByID", ctx, uint(1)).Return(existing, nil)
			if tt.allowed {
				repo.On("Delete", ctx, uint(1)).Return(nil)
			}

			err := NewReviewService(repo).Delete(ctx, tt.actor, 1)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
			}
			repo.AssertExpectations(t)
		})
	}
}
