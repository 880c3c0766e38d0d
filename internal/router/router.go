package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"moviedb/docs"
	"moviedb/internal/config"
	"moviedb/internal/handler"
	"moviedb/internal/middleware"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth   *handler.AuthHandler
	Review *handler.ReviewHandler
	Admin  *handler.AdminHandler
}

// Guards groups the authentication middleware.
type Guards struct {
	Session *middleware.SessionGuard
	Users   middleware.AccountFinder
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, g Guards) {
	e.HTTPErrorHandler = middleware.ErrorHandler(cfg.IsDevelopment())
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	if cfg.Server.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.Server.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	session := g.Session.Middleware()
	account := middleware.LoadAccount(g.Users)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout, session)
	authGroup.GET("/verify", h.Auth.Verify, session)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.GET("/movie/:movieId", h.Review.ListByMovie)
	reviews.POST("", h.Review.Create, session, account)
	reviews.PUT("/:reviewId", h.Review.Update, session, account)
	reviews.DELETE("/:reviewId", h.Review.Delete, session, account)

	// Admin panel routes
	admin := api.Group("/admin", session, account)
	staff := middleware.RequireModeratorOrAdmin
	admin.GET("/users", h.Admin.ListUsers, staff)
	admin.POST("/ban-user", h.Admin.BanUser, staff)
	admin.POST("/unban-user", h.Admin.UnbanUser, staff)
	admin.GET("/banned-users", h.Admin.ListBanned, staff)
	admin.GET("/reviews", h.Admin.ListReviews, staff)
	admin.DELETE("/reviews/:reviewId", h.Admin.DeleteReview, staff)
	admin.GET("/stats", h.Admin.Stats, staff)
	admin.GET("/user-activity/:userId", h.Admin.UserActivity, staff)
	admin.POST("/promote-user", h.Admin.PromoteUser, middleware.RequireAdmin)
	admin.POST("/demote-user", h.Admin.DemoteUser, middleware.RequireAdmin)
	admin.PUT("/movies/:movieId", h.Admin.UpdateMovie, middleware.RequireAdmin)
	admin.DELETE("/movies/:movieId", h.Admin.DeleteMovie, middleware.RequireAdmin)
}
