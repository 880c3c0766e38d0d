package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/model"
	"moviedb/internal/repository"
)

// MovieInput carries the editable fields of a movie.
type MovieInput struct {
	Title       string
	Runtime     int
	About       string
	Plot        string
	MPAARating  string
	Budget      decimal.Decimal
	BoxOffice   decimal.Decimal
	PosterURL   string
	TrailerURL  string
	ReleaseDate *time.Time
}

// UserActivity is a user's merged activity feed.
type UserActivity struct {
	User       *model.User      `json:"user"`
	Activities []model.Activity `json:"activities"`
}

// AdminService backs the read side of the moderation panel and the admin
// catalog edits.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	Stats(ctx context.Context) (*model.Stats, error)
	UserActivity(ctx context.Context, userID uint) (*UserActivity, error)
	UpdateMovie(ctx context.Context, movieID uint, input MovieInput) (*model.Movie, error)
	DeleteMovie(ctx context.Context, movieID uint) error
}

type adminService struct {
	users      repository.UserRepository
	moderation repository.ModerationRepository
	reviews    repository.ReviewRepository
	movies     repository.MovieRepository
	stats      repository.StatsRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	users repository.UserRepository,
	moderation repository.ModerationRepository,
	reviews repository.ReviewRepository,
	movies repository.MovieRepository,
	stats repository.StatsRepository,
) AdminService {
	return &adminService{
		users:      users,
		moderation: moderation,
		reviews:    reviews,
		movies:     movies,
		stats:      stats,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *adminService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.stats.Counts(ctx)
}

// UserActivity merges a user's reviews with, for staff, the bans and unbans
// they performed. Entries are ordered newest first.
func (s *adminService) UserActivity(ctx context.Context, userID uint) (*UserActivity, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	activities := make([]model.Activity, 0, len(reviews))
	for _, r := range reviews {
		activities = append(activities, model.Activity{
			Type:       model.ActivityReview,
			Date:       r.CreatedAt,
			TargetID:   r.MovieID,
			TargetName: r.MovieTitle,
			Details:    r.ReviewText,
			Rating:     r.Rating,
		})
	}

	if user.IsStaff() {
		bans, err := s.moderation.ListBansBy(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list bans: %w", err)
		}
		for _, b := range bans {
			activities = append(activities, model.Activity{
				Type:       model.ActivityBan,
				Date:       b.BanDate,
				TargetID:   b.UserID,
				TargetName: b.Username,
				Details:    b.BanReason,
			})
		}

		unbans, err := s.moderation.ListUnbansBy(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list unbans: %w", err)
		}
		for _, u := range unbans {
			activities = append(activities, model.Activity{
				Type:       model.ActivityUnban,
				Date:       u.UnbanDate,
				TargetID:   u.UserID,
				TargetName: u.Username,
				Details:    u.BanReason,
			})
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	return &UserActivity{User: user, Activities: activities}, nil
}

// UpdateMovie overwrites every editable field of a movie.
func (s *adminService) UpdateMovie(ctx context.Context, movieID uint, input MovieInput) (*model.Movie, error) {
	if input.Budget.IsNegative() || input.BoxOffice.IsNegative() {
		return nil, apperrors.BadRequest("budget and box office must not be negative")
	}
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	movie.Title = input.Title
	movie.Runtime = input.Runtime
	movie.About = input.About
	movie.Plot = input.Plot
	movie.MPAARating = input.MPAARating
	movie.Budget = input.Budget
	movie.BoxOffice = input.BoxOffice
	movie.PosterURL = input.PosterURL
	movie.TrailerURL = input.TrailerURL
	movie.ReleaseDate = input.ReleaseDate

	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *adminService) DeleteMovie(ctx context.Context, movieID uint) error {
	if err := s.movies.Delete(ctx, movieID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	return nil
}
