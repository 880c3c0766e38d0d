package service

import (
	"context"
	"errors"
	"maps"
	"slices"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/model"
	"moviedb/internal/repository"
)

// memStore is an in-memory ModerationRepository with all-or-nothing
// transactions, used to check table-level properties.
type memStore struct {
	users    map[uint]model.User
	banned   map[uint]model.Banned
	unbanned []model.Unbanned

	failDeleteUser bool
}

var _ repository.ModerationRepository = (*memStore)(nil)

func newMemStore(users ...model.User) *memStore {
	s := &memStore{users: map[uint]model.User{}, banned: map[uint]model.Banned{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func notFound() error { return apperrors.NotFound("record not found") }

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ModerationRepository) error) error {
	users := maps.Clone(s.users)
	banned := maps.Clone(s.banned)
	unbanned := slices.Clone(s.unbanned)
	if err := fn(ctx, s); err != nil {
		s.users, s.banned, s.unbanned = users, banned, unbanned
		return err
	}
	return nil
}

func (s *memStore) FindUserForUpdate(_ context.Context, id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, notFound()
	}
	return &u, nil
}

func (s *memStore) FindBannedForUpdate(_ context.Context, userID uint) (*model.Banned, error) {
	b, ok := s.banned[userID]
	if !ok {
		return nil, notFound()
	}
	return &b, nil
}

func (s *memStore) InsertBanned(_ context.Context, banned *model.Banned) error {
	if _, ok := s.banned[banned.UserID]; ok {
		return apperrors.Conflict("resource already exists")
	}
	banned.BannedID = uint(len(s.banned) + 1)
	s.banned[banned.UserID] = *banned
	return nil
}

func (s *memStore) DeleteUser(_ context.Context, id uint) error {
	if s.failDeleteUser {
		return errors.New("connection reset by peer")
	}
	if _, ok := s.users[id]; !ok {
		return notFound()
	}
	delete(s.users, id)
	return nil
}

func (s *memStore) UpdateRole(_ context.Context, id uint, role string) error {
	u, ok := s.users[id]
	if !ok {
		return notFound()
	}
	u.Role = role
	s.users[id] = u
	return nil
}

func (s *memStore) InsertUser(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.ID == user.ID || u.Username == user.Username || u.Email == user.Email {
			return apperrors.Conflict("resource already exists")
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) DeleteBanned(_ context.Context, userID uint) error {
	if _, ok := s.banned[userID]; !ok {
		return notFound()
	}
	delete(s.banned, userID)
	return nil
}

func (s *memStore) InsertUnbanned(_ context.Context, unbanned *model.Unbanned) error {
	s.unbanned = append(s.unbanned, *unbanned)
	return nil
}

func (s *memStore) ListBanned(_ context.Context) ([]model.BannedView, error) {
	var out []model.BannedView
	for _, b := range s.banned {
		out = append(out, model.BannedView{Banned: b, BannerUsername: s.users[b.BannerID].Username})
	}
	return out, nil
}

func (s *memStore) ListBansBy(_ context.Context, bannerID uint) ([]model.Banned, error) {
	var out []model.Banned
	for _, b := range s.banned {
		if b.BannerID == bannerID {
			out = append(out, b)
		}
	}
	for _, u := range s.unbanned {
		if u.BannerID == bannerID {
			out = append(out, u.LiftedBan())
		}
	}
	return out, nil
}

func (s *memStore) ListUnbansBy(_ context.Context, unbannerID uint) ([]model.Unbanned, error) {
	var out []model.Unbanned
	for _, u := range s.unbanned {
		if u.UnbannerID == unbannerID {
			out = append(out, u)
		}
	}
	return out, nil
}

// exclusive reports whether every known id lives in exactly one table.
func (s *memStore) exclusive() bool {
	for id := range s.users {
		if _, ok := s.banned[id]; ok {
			return false
		}
	}
	return true
}
