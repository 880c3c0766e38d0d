package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"moviedb/internal/config"
	"moviedb/internal/db"
	apperrors "moviedb/internal/errors"
	"moviedb/internal/logging"
	"moviedb/internal/model"
	"moviedb/internal/repository"
)

type userStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	SetActive(ctx context.Context, id uint, active bool) error
}

type roleStore interface {
	UpdateRole(ctx context.Context, id uint, role string) error
}

type adminParams struct {
	Username   string
	Email      string
	Password   string
	BcryptCost int
}

func main() {
	_ = godotenv.Load()

	var params adminParams
	flag.StringVar(&params.Username, "username", envOr("SEED_ADMIN_USERNAME", "admin"), "admin username")
	flag.StringVar(&params.Email, "email", os.Getenv("SEED_ADMIN_EMAIL"), "admin email")
	flag.StringVar(&params.Password, "password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password (min 6 characters)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	params.BcryptCost = cfg.Auth.BcryptCost

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gormDB, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB, false); err != nil {
		logging.Fatal().Err(err).Msg("run migrations")
	}

	user, created, err := ensureAdmin(ctx,
		repository.NewUserRepository(gormDB),
		repository.NewModerationRepository(gormDB),
		params,
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("seed admin")
	}
	logging.Info().
		Uint("user_id", user.ID).
		Str("username", user.Username).
		Bool("created", created).
		Msg("admin account ready")
}

// ensureAdmin creates the admin account, or makes an existing account with
// the same email an active admin. It reports whether a new row was created.
func ensureAdmin(ctx context.Context, users userStore, roles roleStore, p adminParams) (*model.User, bool, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Username == "" || p.Email == "" {
		return nil, false, errors.New("username and email are required")
	}

	existing, err := users.FindByEmail(ctx, p.Email)
	switch {
	case err == nil:
		if existing.Role != model.RoleAdmin {
			if err := roles.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
				return nil, false, fmt.Errorf("promote existing user: %w", err)
			}
			existing.Role = model.RoleAdmin
		}
		if !existing.IsActive {
			if err := users.SetActive(ctx, existing.ID, true); err != nil {
				return nil, false, fmt.Errorf("activate existing user: %w", err)
			}
			existing.IsActive = true
		}
		return existing, false, nil
	case !apperrors.Is(err, apperrors.KindNotFound):
		return nil, false, fmt.Errorf("lookup admin: %w", err)
	}

	if len(p.Password) < 6 {
		return nil, false, errors.New("password must be at least 6 characters")
	}
	cost := p.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), cost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: string(hash),
		JoinDate:     time.Now(),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return admin, true, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
