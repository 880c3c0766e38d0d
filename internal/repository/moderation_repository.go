package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviedb/internal/model"
)

// ModerationRepository covers the tables touched by ban and unban. Writes
// that must be atomic go through WithTransaction.
type ModerationRepository interface {
	FindUserForUpdate(ctx context.Context, id uint) (*model.User, error)
	FindBannedForUpdate(ctx context.Context, userID uint) (*model.Banned, error)
	InsertBanned(ctx context.Context, banned *model.Banned) error
	DeleteUser(ctx context.Context, id uint) error
	UpdateRole(ctx context.Context, id uint, role string) error
	InsertUser(ctx context.Context, user *model.User) error
	DeleteBanned(ctx context.Context, userID uint) error
	InsertUnbanned(ctx context.Context, unbanned *model.Unbanned) error
	ListBanned(ctx context.Context) ([]model.BannedView, error)
	ListBansBy(ctx context.Context, bannerID uint) ([]model.Banned, error)
	ListUnbansBy(ctx context.Context, unbannerID uint) ([]model.Unbanned, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ModerationRepository) error) error
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new moderation repository.
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

// WithTransaction runs fn in one transaction. It commits when fn returns nil
// and rolls back on error or panic.
func (r *moderationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ModerationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &moderationRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

// FindUserForUpdate locks the user row until the surrounding transaction ends.
func (r *moderationRepository) FindUserForUpdate(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindBannedForUpdate locks the tombstone of userID.
func (r *moderationRepository) FindBannedForUpdate(ctx context.Context, userID uint) (*model.Banned, error) {
	var banned model.Banned
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&banned).Error; err != nil {
		return nil, translateError(err)
	}
	return &banned, nil
}

func (r *moderationRepository) InsertBanned(ctx context.Context, banned *model.Banned) error {
	return translateError(r.db.WithContext(ctx).Create(banned).Error)
}

func (r *moderationRepository) DeleteUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *moderationRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// InsertUser restores a user under its original id.
func (r *moderationRepository) InsertUser(ctx context.Context, user *model.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *moderationRepository) DeleteBanned(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Banned{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *moderationRepository) InsertUnbanned(ctx context.Context, unbanned *model.Unbanned) error {
	return translateError(r.db.WithContext(ctx).Create(unbanned).Error)
}

// ListBanned returns every tombstone with the banner's username, oldest ban
// first. Banners that were banned themselves show an empty name.
func (r *moderationRepository) ListBanned(ctx context.Context) ([]model.BannedView, error) {
	var rows []model.BannedView
	err := r.db.WithContext(ctx).
		Table("banned_users AS b").
		Select("b.*, COALESCE(u.username, '') AS banner_username").
		Joins("LEFT JOIN users u ON u.id = b.banner_id").
		Order("b.ban_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// ListBansBy returns every ban issued by bannerID, newest first. Bans that
// were lifted since are read back from the unban history.
func (r *moderationRepository) ListBansBy(ctx context.Context, bannerID uint) ([]model.Banned, error) {
	var rows []model.Banned
	if err := r.db.WithContext(ctx).Where("banner_id = ?", bannerID).
		Order("ban_date DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	var lifted []model.Unbanned
	if err := r.db.WithContext(ctx).Where("banner_id = ?", bannerID).
		Order("ban_date DESC").Find(&lifted).Error; err != nil {
		return nil, translateError(err)
	}
	for i := range lifted {
		rows = append(rows, lifted[i].LiftedBan())
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].BanDate.After(rows[j].BanDate)
	})
	return rows, nil
}

// ListUnbansBy returns the unbans performed by unbannerID, newest first.
func (r *moderationRepository) ListUnbansBy(ctx context.Context, unbannerID uint) ([]model.Unbanned, error) {
	var rows []model.Unbanned
	if err := r.db.WithContext(ctx).Where("unbanner_id = ?", unbannerID).
		Order("unban_date DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}
