package repository

import (
	"context"
	"errors"
	"fmt"

	"brainshift/internal/models"

	"gorm.io/gorm"
)

// StreakRepository persists the per-user streak row.
type StreakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// FindByUser returns the user's streak, or nil when none exists yet.
func (r *StreakRepository) FindByUser(ctx context.Context, userID uint) (*models.Streak, error) {
	var st models.Streak
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error
	switch {
	case err == nil:
		return &st, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find streak: %w", err)
	}
}

// Create inserts a new streak row. ErrDuplicate means another writer created
// it first.
func (r *StreakRepository) Create(ctx context.Context, st *models.Streak) error {
	if err := r.db.WithContext(ctx).Create(st).Error; err != nil {
		if err = translate(err); err == ErrDuplicate {
			return err
		}
		return fmt.Errorf("create streak: %w", err)
	}
	return nil
}

// Save writes the counters and last streak date of an existing row.
func (r *StreakRepository) Save(ctx context.Context, st *models.Streak) error {
	err := r.db.WithContext(ctx).Model(&models.Streak{}).
		Where("user_id = ?", st.UserID).
		Select("current_streak", "longest_streak", "last_streak_date").
		Updates(st).Error
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// ListActive returns every streak whose current run is above zero.
func (r *StreakRepository) ListActive(ctx context.Context) ([]models.Streak, error) {
	var streaks []models.Streak
	if err := r.db.WithContext(ctx).Where("current_streak > ?", 0).Order("user_id ASC").Find(&streaks).Error; err != nil {
		return nil, fmt.Errorf("list streaks: %w", err)
	}
	return streaks, nil
}
