package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brainshift/internal/models"

	"gorm.io/gorm"
)

// activeClause matches sessions that reached neither terminal state.
const activeClause = "completed = ? AND is_cancelled = ?"

// SessionFilter narrows List. Zero values mean "no filter".
type SessionFilter struct {
	Status     string // active, completed or cancelled
	From       *time.Time
	To         *time.Time
	TargetType models.TargetType
	TargetID   string
	Limit      int
	Offset     int
}

// SessionRepository persists focus sessions. Every query is scoped to a user.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindActive returns the user's active session, or nil when there is none.
func (r *SessionRepository) FindActive(ctx context.Context, userID uint) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(activeClause, false, false).
		Order("start_time DESC").
		First(&s).Error
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find active session: %w", err)
	}
}

func (r *SessionRepository) FindByID(ctx context.Context, userID uint, id string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

// List returns one page of the user's sessions, newest first, and the total
// number of rows matching f.
func (r *SessionRepository) List(ctx context.Context, userID uint, f SessionFilter) ([]models.Session, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Session{}).Where("user_id = ?", userID)

	switch f.Status {
	case "active":
		q = q.Where(activeClause, false, false)
	case "completed":
		q = q.Where("completed = ?", true)
	case "cancelled":
		q = q.Where("is_cancelled = ?", true)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}
	if f.TargetType != models.TargetNone {
		q = q.Where("target_type = ?", f.TargetType)
	}
	if f.TargetID != "" {
		q = q.Where("target_id = ?", f.TargetID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	var sessions []models.Session
	q = q.Order("start_time DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, total, nil
}

// MarkCompleted finalises an active session. applied is false when the row
// was no longer active, e.g. cancelled concurrently.
func (r *SessionRepository) MarkCompleted(ctx context.Context, userID uint, id string, end time.Time, minutes int) (applied bool, err error) {
	res := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND user_id = ?", id, userID).
		Where(activeClause, false, false).
		Updates(map[string]interface{}{
			"completed": true,
			"end_time":  end,
			"duration":  minutes,
		})
	if res.Error != nil {
		return false, fmt.Errorf("complete session: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// MarkCancelled abandons an active session. applied is false when the row was
// no longer active.
func (r *SessionRepository) MarkCancelled(ctx context.Context, userID uint, id string) (applied bool, err error) {
	res := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND user_id = ?", id, userID).
		Where(activeClause, false, false).
		Update("is_cancelled", true)
	if res.Error != nil {
		return false, fmt.Errorf("cancel session: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID uint, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
