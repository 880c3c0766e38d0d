package repository

import (
	"context"

	"gorm.io/gorm"

	"moviedb/internal/model"
)

// MovieRepository defines the catalog writes exposed to admins.
type MovieRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Movie, error)
	Update(ctx context.Context, movie *model.Movie) error
	Delete(ctx context.Context, id uint) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).Where("movie_id = ?", id).First(&movie).Error; err != nil {
		return nil, translateError(err)
	}
	return &movie, nil
}

// Update overwrites every editable column, including zero values.
func (r *movieRepository) Update(ctx context.Context, movie *model.Movie) error {
	res := r.db.WithContext(ctx).Model(&model.Movie{}).
		Where("movie_id = ?", movie.MovieID).
		Select("title", "runtime", "about", "plot", "mpaa_rating", "budget", "box_office",
			"poster_url", "trailer_url", "release_date").
		Updates(movie)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a movie; its reviews cascade.
func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("movie_id = ?", id).Delete(&model.Movie{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}
