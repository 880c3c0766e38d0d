package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/logging"
	"moviedb/internal/metrics"
	"moviedb/internal/model"
	"moviedb/internal/repository"
)

// Moderation action names used in logs and metrics.
const (
	ActionBan     = "ban"
	ActionUnban   = "unban"
	ActionPromote = "promote"
	ActionDemote  = "demote"
)

var (
	ErrUserNotFound      = apperrors.NotFound("user not found")
	ErrBannedNotFound    = apperrors.NotFound("banned user not found")
	ErrAlreadyBanned     = apperrors.Conflict("user is already banned")
	ErrBanFieldsRequired = apperrors.BadRequest("user id and ban reason are required")
	ErrUserIDRequired    = apperrors.BadRequest("user id is required")
	ErrModeratorScope    = apperrors.Forbidden("moderators can only ban regular users")
	ErrBanAdmin          = apperrors.Forbidden("cannot ban admin users")
	ErrSelfBan           = apperrors.Forbidden("cannot ban yourself")
	ErrAdminRoleFixed    = apperrors.Forbidden("admin role cannot be changed")
	ErrAlreadyModerator  = apperrors.BadRequest("user is already a moderator")
	ErrNotModerator      = apperrors.BadRequest("only moderators can be demoted")
)

// Actor is the authenticated account performing a moderation action.
type Actor struct {
	ID   uint
	Role string
}

// BannedUserSummary is the part of a tombstone echoed back after a ban.
type BannedUserSummary struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	BanReason string `json:"ban_reason"`
}

// BanResult is returned by a successful ban.
type BanResult struct {
	Message    string            `json:"message"`
	BannedUser BannedUserSummary `json:"banned_user"`
}

// ModerationService runs the ban, unban and role workflows.
type ModerationService interface {
	Ban(ctx context.Context, actor Actor, targetID uint, reason string) (*BanResult, error)
	Unban(ctx context.Context, actor Actor, targetID uint) error
	Promote(ctx context.Context, actor Actor, targetID uint) (*model.User, error)
	Demote(ctx context.Context, actor Actor, targetID uint) (*model.User, error)
	ListBanned(ctx context.Context) ([]model.BannedView, error)
}

type moderationService struct {
	repo repository.ModerationRepository
	now  func() time.Time
}

// NewModerationService creates a new moderation service.
func NewModerationService(repo repository.ModerationRepository) ModerationService {
	return &moderationService{repo: repo, now: time.Now}
}

// Ban moves the target from users to banned_users. All checks read inside
// the transaction under row locks, so concurrent bans of the same user
// serialize and the loser sees a conflict.
func (s *moderationService) Ban(ctx context.Context, actor Actor, targetID uint, reason string) (result *BanResult, err error) {
	defer func() { s.record(ctx, ActionBan, actor, targetID, err) }()

	reason = strings.TrimSpace(reason)
	if targetID == 0 || reason == "" {
		return nil, ErrBanFieldsRequired
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.ModerationRepository) error {
		target, err := tx.FindUserForUpdate(ctx, targetID)
		if err != nil {
			if !apperrors.Is(err, apperrors.KindNotFound) {
				return err
			}
			// The id may already be a tombstone.
			if _, bErr := tx.FindBannedForUpdate(ctx, targetID); bErr == nil {
				return ErrAlreadyBanned
			} else if !apperrors.Is(bErr, apperrors.KindNotFound) {
				return bErr
			}
			return ErrUserNotFound
		}

		if actor.Role == model.RoleModerator && target.Role != model.RoleRegular {
			return ErrModeratorScope
		}
		if target.Role == model.RoleAdmin {
			return ErrBanAdmin
		}
		if target.ID == actor.ID {
			return ErrSelfBan
		}
		if _, err := tx.FindBannedForUpdate(ctx, targetID); err == nil {
			return ErrAlreadyBanned
		} else if !apperrors.Is(err, apperrors.KindNotFound) {
			return err
		}

		if err := tx.InsertBanned(ctx, model.NewBanned(target, reason, actor.ID, s.now())); err != nil {
			return banStoreError(err)
		}
		if err := tx.DeleteUser(ctx, target.ID); err != nil {
			return banStoreError(err)
		}

		result = &BanResult{
			Message: "user banned successfully",
			BannedUser: BannedUserSummary{
				UserID:    target.ID,
				Username:  target.Username,
				BanReason: reason,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// banStoreError gives classified constraint failures a ban-specific message.
func banStoreError(err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindConflict:
		return apperrors.Wrap(apperrors.KindConflict, ErrAlreadyBanned.Message, err)
	case apperrors.KindBadRequest:
		return apperrors.Wrap(apperrors.KindBadRequest, "cannot ban user due to data constraints", err)
	}
	return err
}

// Unban restores the account from its tombstone, appends a history row and
// drops the tombstone in one transaction.
func (s *moderationService) Unban(ctx context.Context, actor Actor, targetID uint) (err error) {
	defer func() { s.record(ctx, ActionUnban, actor, targetID, err) }()

	if targetID == 0 {
		return ErrUserIDRequired
	}

	return s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.ModerationRepository) error {
		banned, err := tx.FindBannedForUpdate(ctx, targetID)
		if err != nil {
			if apperrors.Is(err, apperrors.KindNotFound) {
				return ErrBannedNotFound
			}
			return err
		}

		if err := tx.InsertUser(ctx, banned.Restore()); err != nil {
			if apperrors.Is(err, apperrors.KindConflict) {
				return apperrors.Wrap(apperrors.KindConflict, "username, email or id is already in use", err)
			}
			return err
		}
		if err := tx.InsertUnbanned(ctx, model.NewUnbanned(banned, actor.ID, s.now())); err != nil {
			return err
		}
		return tx.DeleteBanned(ctx, targetID)
	})
}

// Promote turns a regular user into a moderator.
func (s *moderationService) Promote(ctx context.Context, actor Actor, targetID uint) (*model.User, error) {
	return s.changeRole(ctx, ActionPromote, actor, targetID, func(role string) (string, error) {
		switch role {
		case model.RoleRegular:
			return model.RoleModerator, nil
		case model.RoleModerator:
			return "", ErrAlreadyModerator
		default:
			return "", ErrAdminRoleFixed
		}
	})
}

// Demote turns a moderator back into a regular user.
func (s *moderationService) Demote(ctx context.Context, actor Actor, targetID uint) (*model.User, error) {
	return s.changeRole(ctx, ActionDemote, actor, targetID, func(role string) (string, error) {
		switch role {
		case model.RoleModerator:
			return model.RoleRegular, nil
		case model.RoleRegular:
			return "", ErrNotModerator
		default:
			return "", ErrAdminRoleFixed
		}
	})
}

func (s *moderationService) changeRole(ctx context.Context, action string, actor Actor, targetID uint, next func(role string) (string, error)) (user *model.User, err error) {
	defer func() { s.record(ctx, action, actor, targetID, err) }()

	if targetID == 0 {
		return nil, ErrUserIDRequired
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.ModerationRepository) error {
		target, err := tx.FindUserForUpdate(ctx, targetID)
		if err != nil {
			if apperrors.Is(err, apperrors.KindNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		role, err := next(target.Role)
		if err != nil {
			return err
		}
		if err := tx.UpdateRole(ctx, target.ID, role); err != nil {
			return err
		}
		target.Role = role
		user = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *moderationService) ListBanned(ctx context.Context) ([]model.BannedView, error) {
	return s.repo.ListBanned(ctx)
}

func (s *moderationService) record(ctx context.Context, action string, actor Actor, targetID uint, err error) {
	kind := apperrors.KindOf(err)
	metrics.RecordModeration(action, err, err != nil && kind != apperrors.KindInternal)

	logger := logging.Ctx(ctx)
	var event *zerolog.Event
	switch {
	case err == nil:
		event = logger.Info()
	case kind == apperrors.KindInternal:
		event = logger.Error().Err(err)
	default:
		event = logger.Warn().Str("reason", err.Error())
	}
	event.Str("action", action).
		Uint("actor_id", actor.ID).
		Str("actor_role", actor.Role).
		Uint("target_id", targetID).
		Bool("ok", err == nil).
		Msg("moderation action")
}
