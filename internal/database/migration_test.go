package database_test

import (
	"errors"
	"testing"
	"time"

	"brainshift/internal/database"
	"brainshift/internal/models"
	"brainshift/internal/testutil"

	"gorm.io/gorm"
)

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("second AutoMigrate() error = %v", err)
	}
}

func TestActiveSessionIndex_RejectsSecondActive(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now().UTC()

	first := models.Session{UserID: 1, StartTime: now}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create first session: %v", err)
	}

	second := models.Session{UserID: 1, StartTime: now}
	err := db.Create(&second).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("create second active session error = %v, want gorm.ErrDuplicatedKey", err)
	}

	// another user is unaffected
	other := models.Session{UserID: 2, StartTime: now}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create session for other user: %v", err)
	}
}

func TestActiveSessionIndex_AllowsAfterTerminal(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now().UTC()

	done := models.Session{UserID: 1, StartTime: now}
	if err := db.Create(&done).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := db.Model(&done).Update("completed", true).Error; err != nil {
		t.Fatalf("complete session: %v", err)
	}

	cancelled := models.Session{UserID: 1, StartTime: now}
	if err := db.Create(&cancelled).Error; err != nil {
		t.Fatalf("create session after completion: %v", err)
	}
	if err := db.Model(&cancelled).Update("is_cancelled", true).Error; err != nil {
		t.Fatalf("cancel session: %v", err)
	}

	next := models.Session{UserID: 1, StartTime: now}
	if err := db.Create(&next).Error; err != nil {
		t.Fatalf("create session after cancellation: %v", err)
	}

	var active int64
	db.Model(&models.Session{}).
		Where("user_id = ? AND completed = ? AND is_cancelled = ?", 1, false, false).
		Count(&active)
	if active != 1 {
		t.Errorf("active sessions = %d, want 1", active)
	}
}
