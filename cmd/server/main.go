package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"moviedb/internal/auth"
	"moviedb/internal/cache"
	"moviedb/internal/config"
	"moviedb/internal/db"
	"moviedb/internal/handler"
	"moviedb/internal/logging"
	"moviedb/internal/middleware"
	"moviedb/internal/repository"
	"moviedb/internal/router"
	"moviedb/internal/service"
)

const shutdownTimeout = 15 * time.Second

// @title MovieDB API
// @version 1.0
// @description Movie database backend with reviews, session authentication and a moderation panel.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database init")
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logging.Warn().Err(err).Msg("close database")
		}
	}()

	if cfg.Database.Reset {
		logging.Warn().Msg("database reset requested, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.Database.Reset); err != nil {
		logging.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logging.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, token revocation disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	moderationRepo := repository.NewModerationRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	deactivator := auth.NewDeactivator(userRepo, tokenService, cfg.Auth.DeactivateOnInvalid, cfg.Auth.DeactivateTimeout)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, tokenStore, cfg.Auth.BcryptCost)
	moderationService := service.NewModerationService(moderationRepo)
	reviewService := service.NewReviewService(reviewRepo)
	adminService := service.NewAdminService(userRepo, moderationRepo, reviewRepo, movieRepo, statsRepo)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg,
		router.Handlers{
			Auth:   handler.NewAuthHandler(authService),
			Review: handler.NewReviewHandler(reviewService),
			Admin:  handler.NewAdminHandler(moderationService, adminService, reviewService),
		},
		router.Guards{
			Session: middleware.NewSessionGuard(tokenService, tokenStore, deactivator),
			Users:   userRepo,
		},
	)

	go func() {
		logging.Info().
			Str("addr", cfg.HTTPAddress()).
			Str("environment", cfg.Server.Environment).
			Str("deactivate_on_invalid", cfg.Auth.DeactivateOnInvalid).
			Msg("server starting")
		if err := e.Start(cfg.HTTPAddress()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown")
	}
	// Pending deactivations still write to the database closed on return.
	if err := deactivator.Wait(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("pending deactivations abandoned")
	}
}
