package repository

import (
	"context"

	"gorm.io/gorm"

	"moviedb/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uint) error
	ListByMovie(ctx context.Context, movieID uint) ([]model.ReviewView, error)
	ListByUser(ctx context.Context, userID uint) ([]model.ReviewView, error)
	ListAll(ctx context.Context) ([]model.ReviewView, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewViewColumns = "r.review_id, r.user_id, r.movie_id, r.rating, r.review_text, r.created_at, " +
	"u.username, u.role, m.title AS movie_title"

func (r *reviewRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reviews AS r").
		Select(reviewViewColumns).
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN movies m ON m.movie_id = r.movie_id")
}

// Create inserts a review. An unknown movie is reported as a bad request by
// the foreign key.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return translateError(r.db.WithContext(ctx).Omit("Movie").Create(review).Error)
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Where("review_id = ?", id).First(&review).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

// Update writes the editable fields of a review.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return translateError(r.db.WithContext(ctx).Model(&model.Review{}).
		Where("review_id = ?", review.ReviewID).
		Updates(map[string]any{
			"rating":      review.Rating,
			"review_text": review.ReviewText,
		}).Error)
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("review_id = ?", id).Delete(&model.Review{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// ListByMovie returns the reviews of movieID, newest first. Reviews of
// banned users drop out through the users join until unban.
func (r *reviewRepository) ListByMovie(ctx context.Context, movieID uint) ([]model.ReviewView, error) {
	var rows []model.ReviewView
	if err := r.viewQuery(ctx).Where("r.movie_id = ?", movieID).
		Order("r.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]model.ReviewView, error) {
	var rows []model.ReviewView
	if err := r.viewQuery(ctx).Where("r.user_id = ?", userID).
		Order("r.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *reviewRepository) ListAll(ctx context.Context) ([]model.ReviewView, error) {
	var rows []model.ReviewView
	if err := r.viewQuery(ctx).Order("r.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}
