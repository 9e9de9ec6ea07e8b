package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"brainshift/internal/models"
	"brainshift/internal/repository"
	"brainshift/internal/testutil"

	"gorm.io/datatypes"
)

func TestStreakRepository_CreateSaveFind(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewStreakRepository(testutil.NewDB(t))

	if st, err := repo.FindByUser(ctx, 1); err != nil || st != nil {
		t.Fatalf("FindByUser() on empty db = %v, %v; want nil, nil", st, err)
	}

	day := datatypes.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	st := &models.Streak{UserID: 1, CurrentStreak: 1, LongestStreak: 1, LastStreakDate: &day}
	if err := repo.Create(ctx, st); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, &models.Streak{UserID: 1}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("second Create() error = %v, want ErrDuplicate", err)
	}

	st.CurrentStreak, st.LongestStreak = 0, 5
	if err := repo.Save(ctx, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.FindByUser(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("FindByUser() = %v, %v", got, err)
	}
	if got.CurrentStreak != 0 || got.LongestStreak != 5 {
		t.Errorf("streak = %d/%d, want 0/5", got.CurrentStreak, got.LongestStreak)
	}
	if got.LastStreakDate == nil || time.Time(*got.LastStreakDate).Day() != 1 {
		t.Errorf("LastStreakDate = %v, want 2024-05-01", got.LastStreakDate)
	}
}

func TestStreakRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewStreakRepository(testutil.NewDB(t))

	_ = repo.Create(ctx, &models.Streak{UserID: 1, CurrentStreak: 3, LongestStreak: 3})
	_ = repo.Create(ctx, &models.Streak{UserID: 2, CurrentStreak: 0, LongestStreak: 4})

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 1 || active[0].UserID != 1 {
		t.Errorf("ListActive() = %+v, want only user 1", active)
	}
}
