package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviedb/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents a new review. The author is the caller.
type CreateReviewRequest struct {
	MovieID    uint   `json:"movie_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=10"`
	ReviewText string `json:"review_text" validate:"max=5000"`
}

// UpdateReviewRequest represents a review edit.
type UpdateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=10"`
	ReviewText string `json:"review_text" validate:"max=5000"`
}

// ListByMovie godoc
// @Summary List reviews of a movie
// @Tags reviews
// @Produce json
// @Param movieId path int true "Movie ID"
// @Success 200 {array} model.ReviewView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews/movie/{movieId} [get]
func (h *ReviewHandler) ListByMovie(c echo.Context) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}
	reviews, err := h.reviewService.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create godoc
// @Summary Post a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	caller, err := actor(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.Create(c.Request().Context(), caller, req.MovieID, req.Rating, req.ReviewText)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Update godoc
// @Summary Edit own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reviewId path int true "Review ID"
// @Param request body UpdateReviewRequest true "Review"
// @Success 200 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{reviewId} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return err
	}
	var req UpdateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	caller, err := actor(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.Update(c.Request().Context(), caller, reviewID, req.Rating, req.ReviewText)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete godoc
// @Summary Delete a review
// @Description Authors may delete their own reviews; moderators and admins may delete any.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param reviewId path int true "Review ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{reviewId} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return err
	}
	caller, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.reviewService.Delete(c.Request().Context(), caller, reviewID); err != nil {
		return err
	}
	return message(c, "review deleted successfully")
}
