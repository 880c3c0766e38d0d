package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"moviedb/internal/model"
)

// StatsRepository aggregates dashboard counters.
type StatsRepository interface {
	Counts(ctx context.Context) (*model.Stats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"active users", r.db.Model(&model.User{}).Where("is_active = ?", true), &stats.ActiveUsers},
		{"banned users", r.db.Model(&model.Banned{}), &stats.BannedUsers},
		{"movies", r.db.Model(&model.Movie{}), &stats.Movies},
		{"awards", r.db.Model(&model.Award{}), &stats.Awards},
		{"reviews", r.db.Model(&model.Review{}), &stats.Reviews},
		{"people", r.db.Model(&model.Person{}), &stats.People},
	}
	for _, c := range counts {
		if err := c.query.WithContext(ctx).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, translateError(err))
		}
	}
	return stats, nil
}
