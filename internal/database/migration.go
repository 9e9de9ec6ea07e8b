package database

import (
	"fmt"

	"brainshift/internal/models"

	"gorm.io/gorm"
)

// activeSessionIndex keeps at most one active session per user at the storage
// level. The session service also serialises start per user, this index covers
// writers the in-process lock cannot see.
const activeSessionIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active
	ON sessions(user_id) WHERE completed = 0 AND is_cancelled = 0`

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Session{},
		&models.Streak{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(activeSessionIndex).Error; err != nil {
		return fmt.Errorf("create active session index: %w", err)
	}
	return nil
}
