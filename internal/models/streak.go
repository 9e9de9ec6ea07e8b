package models

import (
	"time"

	"gorm.io/datatypes"
)

// Streak is the per-user daily streak counter. One row per user, created on the
// first qualifying completion and never deleted.
type Streak struct {
	ID             uint            `gorm:"primaryKey"`
	UserID         uint            `gorm:"uniqueIndex;not null"`
	CurrentStreak  int             `gorm:"not null;default:0"`
	LongestStreak  int             `gorm:"not null;default:0"`
	LastStreakDate *datatypes.Date // calendar day in the reference timezone
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
