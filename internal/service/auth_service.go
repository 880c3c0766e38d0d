package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"moviedb/internal/auth"
	apperrors "moviedb/internal/errors"
	"moviedb/internal/logging"
	"moviedb/internal/model"
	"moviedb/internal/repository"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = apperrors.Conflict("this username is already taken")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = apperrors.Conflict("this email is already registered")
	// ErrSessionUserGone is returned by Me when the token outlived its account.
	ErrSessionUserGone = apperrors.New(apperrors.KindInvalidCredentials, "user not found")
)

// TokenIssuer issues session tokens.
type TokenIssuer interface {
	Issue(userID uint) (string, *auth.Claims, error)
	RemainingTTL(claims *auth.Claims) time.Duration
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	revocation auth.RevocationStore
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, revocation auth.RevocationStore, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		users:      users,
		tokens:     tokens,
		revocation: revocation,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register creates a regular, active account and signs it in.
func (s *authService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		JoinDate:     s.now(),
		Role:         model.RoleRegular,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Wrap(apperrors.KindConflict, "username or email is already registered", err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	logging.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("user registered")
	return &AuthResult{Token: token, User: user}, nil
}

// Login checks credentials and marks the account active. Banned users are not
// in users and fail like an unknown email.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.SetActive(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("activate user: %w", err)
	}
	user.IsActive = true

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Logout marks the account inactive and revokes the presented token until
// it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.Unauthenticated("authorization denied")
	}
	if err := s.users.SetActive(ctx, claims.User.ID, false); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if err := s.revocation.Revoke(ctx, claims.ID, s.tokens.RemainingTTL(claims)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Me returns the account behind a verified token.
func (s *authService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, ErrSessionUserGone
		}
		return nil, err
	}
	return user, nil
}
