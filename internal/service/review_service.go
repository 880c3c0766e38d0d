package service

import (
	"context"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/logging"
	"moviedb/internal/model"
	"moviedb/internal/repository"
)

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 10
)

var (
	ErrReviewNotFound   = apperrors.NotFound("review not found")
	ErrMovieNotFound    = apperrors.NotFound("movie not found")
	ErrInvalidRating    = apperrors.BadRequest("rating must be between 1 and 10")
	ErrReviewEditDenied = apperrors.Forbidden("unauthorized to edit this review")
	ErrReviewDelDenied  = apperrors.Forbidden("unauthorized to delete this review")
)

// ReviewService manages user reviews.
type ReviewService interface {
	ListByMovie(ctx context.Context, movieID uint) ([]model.ReviewView, error)
	ListAll(ctx context.Context) ([]model.ReviewView, error)
	Create(ctx context.Context, actor Actor, movieID uint, rating int, text string) (*model.Review, error)
	Update(ctx context.Context, actor Actor, reviewID uint, rating int, text string) (*model.Review, error)
	Delete(ctx context.Context, actor Actor, reviewID uint) error
}

type reviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) ListByMovie(ctx context.Context, movieID uint) ([]model.ReviewView, error) {
	return s.repo.ListByMovie(ctx, movieID)
}

func (s *reviewService) ListAll(ctx context.Context) ([]model.ReviewView, error) {
	return s.repo.ListAll(ctx)
}

// Create posts a review authored by actor.
func (s *reviewService) Create(ctx context.Context, actor Actor, movieID uint, rating int, text string) (*model.Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	review := &model.Review{
		UserID:     actor.ID,
		MovieID:    movieID,
		Rating:     rating,
		ReviewText: text,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if apperrors.Is(err, apperrors.KindBadRequest) {
			return nil, apperrors.Wrap(apperrors.KindBadRequest, "movie does not exist", err)
		}
		return nil, err
	}
	return review, nil
}

// Update edits a review. Only its author may do so.
func (s *reviewService) Update(ctx context.Context, actor Actor, reviewID uint, rating int, text string) (*model.Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	review, err := s.find(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor.ID {
		return nil, ErrReviewEditDenied
	}

	review.Rating = rating
	review.ReviewText = text
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. Authors may delete their own; moderators and
// admins may delete any.
func (s *reviewService) Delete(ctx context.Context, actor Actor, reviewID uint) error {
	review, err := s.find(ctx, reviewID)
	if err != nil {
		return err
	}
	staff := actor.Role == model.RoleModerator || actor.Role == model.RoleAdmin
	if review.UserID != actor.ID && !staff {
		return ErrReviewDelDenied
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != actor.ID {
		logging.Ctx(ctx).Info().
			Uint("review_id", reviewID).
			Uint("author_id", review.UserID).
			Uint("actor_id", actor.ID).
			Msg("review removed by staff")
	}
	return nil
}

func (s *reviewService) find(ctx context.Context, reviewID uint) (*model.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
