package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"moviedb/internal/model"
	"moviedb/internal/service"
)

// releaseDateLayout is the wire format of movie release dates.
const releaseDateLayout = "2006-01-02"

// AdminHandler serves the moderation panel.
type AdminHandler struct {
	moderation service.ModerationService
	admin      service.AdminService
	reviews    service.ReviewService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(moderation service.ModerationService, admin service.AdminService, reviews service.ReviewService) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		admin:      admin,
		reviews:    reviews,
	}
}

// BanRequest represents a ban. Missing fields are reported by the
// moderation service.
type BanRequest struct {
	UserID    uint   `json:"user_id"`
	BanReason string `json:"ban_reason" validate:"max=1000"`
}

// TargetUserRequest names the user an action applies to.
type TargetUserRequest struct {
	UserID uint `json:"user_id"`
}

// RoleChangeResponse is returned by promote and demote.
type RoleChangeResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// MovieRequest carries every editable movie field.
type MovieRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Runtime     int             `json:"runtime" validate:"gte=0"`
	About       string          `json:"about"`
	Plot        string          `json:"plot"`
	MPAARating  string          `json:"mpaa_rating" validate:"max=10"`
	Budget      decimal.Decimal `json:"budget" swaggertype:"string" example:"1000000.00"`
	BoxOffice   decimal.Decimal `json:"box_office" swaggertype:"string" example:"2500000.50"`
	PosterURL   string          `json:"poster_url" validate:"omitempty,url,max=500"`
	TrailerURL  string          `json:"trailer_url" validate:"omitempty,url,max=500"`
	ReleaseDate string          `json:"release_date" validate:"omitempty,datetime=2006-01-02" example:"2010-07-16"`
}

func (r MovieRequest) toInput() service.MovieInput {
	input := service.MovieInput{
		Title:      r.Title,
		Runtime:    r.Runtime,
		About:      r.About,
		Plot:       r.Plot,
		MPAARating: r.MPAARating,
		Budget:     r.Budget,
		BoxOffice:  r.BoxOffice,
		PosterURL:  r.PosterURL,
		TrailerURL: r.TrailerURL,
	}
	// Already checked by the datetime validator.
	if date, err := time.Parse(releaseDateLayout, r.ReleaseDate); err == nil {
		input.ReleaseDate = &date
	}
	return input
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// BanUser godoc
// @Summary Ban a user
// @Description Moves the account into the banned list in one transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BanRequest true "Ban"
// @Success 200 {object} service.BanResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/ban-user [post]
func (h *AdminHandler) BanUser(c echo.Context) error {
	var req BanRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	caller, err := actor(c)
	if err != nil {
		return err
	}

	result, err := h.moderation.Ban(c.Request().Context(), caller, req.UserID, req.BanReason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// UnbanUser godoc
// @Summary Unban a user
// @Description Restores the account as inactive until its next login.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TargetUserRequest true "Target"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/unban-user [post]
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	var req TargetUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	caller, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.moderation.Unban(c.Request().Context(), caller, req.UserID); err != nil {
		return err
	}
	return message(c, "user unbanned successfully")
}

// ListBanned godoc
// @Summary List banned users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.BannedView
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/banned-users [get]
func (h *AdminHandler) ListBanned(c echo.Context) error {
	banned, err := h.moderation.ListBanned(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banned)
}

// ListReviews godoc
// @Summary List every review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ReviewView
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reviews [get]
func (h *AdminHandler) ListReviews(c echo.Context) error {
	reviews, err := h.reviews.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// DeleteReview godoc
// @Summary Delete any review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param reviewId path int true "Review ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reviews/{reviewId} [delete]
func (h *AdminHandler) DeleteReview(c echo.Context) error {
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return err
	}
	caller, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.reviews.Delete(c.Request().Context(), caller, reviewID); err != nil {
		return err
	}
	return message(c, "review deleted successfully")
}

// Stats godoc
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Stats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// PromoteUser godoc
// @Summary Promote a regular user to moderator
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TargetUserRequest true "Target"
// @Success 200 {object} RoleChangeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/promote-user [post]
func (h *AdminHandler) PromoteUser(c echo.Context) error {
	return h.changeRole(c, h.moderation.Promote, "user promoted to moderator successfully")
}

// DemoteUser godoc
// @Summary Demote a moderator to regular user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TargetUserRequest true "Target"
// @Success 200 {object} RoleChangeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/demote-user [post]
func (h *AdminHandler) DemoteUser(c echo.Context) error {
	return h.changeRole(c, h.moderation.Demote, "moderator demoted to regular user successfully")
}

type roleChange func(ctx context.Context, actor service.Actor, targetID uint) (*model.User, error)

func (h *AdminHandler) changeRole(c echo.Context, change roleChange, msg string) error {
	var req TargetUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	caller, err := actor(c)
	if err != nil {
		return err
	}

	user, err := change(c.Request().Context(), caller, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RoleChangeResponse{Message: msg, User: user})
}

// UserActivity godoc
// @Summary A user's activity feed
// @Description Reviews, plus ban and unban actions for staff, newest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} service.UserActivity
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/user-activity/{userId} [get]
func (h *AdminHandler) UserActivity(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	activity, err := h.admin.UserActivity(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}

// UpdateMovie godoc
// @Summary Edit a movie
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Param request body MovieRequest true "Movie"
// @Success 200 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/movies/{movieId} [put]
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}
	var req MovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	movie, err := h.admin.UpdateMovie(c.Request().Context(), movieID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Its reviews are removed with it.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/movies/{movieId} [delete]
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}
	if err := h.admin.DeleteMovie(c.Request().Context(), movieID); err != nil {
		return err
	}
	return message(c, "movie deleted successfully")
}
