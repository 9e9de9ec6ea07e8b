package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brainshift/internal/models"
	"brainshift/internal/repository"
	"brainshift/internal/util"

	"github.com/hashicorp/go-hclog"
)

// StreakEvaluator is the part of the streak engine a completion feeds.
type StreakEvaluator interface {
	Evaluate(ctx context.Context, userID uint, completed bool, duration *int) (*models.Streak, error)
}

// StartInput describes a session to open. EndTime is only honoured for manual
// sessions; Duration and BreakDuration only for Pomodoro ones.
type StartInput struct {
	TargetType    models.TargetType
	TargetID      *string
	IsPomodoro    bool
	Duration      *int
	BreakDuration *int
	EndTime       *time.Time
}

// SessionService owns the focus session lifecycle: Active, then Completed
// or Cancelled, never back.
type SessionService struct {
	repo   *repository.SessionRepository
	streak StreakEvaluator
	locks  *util.KeyedMutex
	log    hclog.Logger

	Now func() time.Time
}

func NewSessionService(repo *repository.SessionRepository, streak StreakEvaluator, locks *util.KeyedMutex, log hclog.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		streak: streak,
		locks:  locks,
		log:    log.Named("session"),
		Now:    time.Now,
	}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

func (s *SessionService) validateStart(in *StartInput) error {
	if !in.TargetType.Valid() {
		return validationf("targetType must be task or subtask")
	}
	if err := util.ValidateTargetID(in.TargetID); err != nil {
		return validationf("%s", err.Error())
	}
	if in.TargetID != nil {
		id := strings.TrimSpace(*in.TargetID)
		in.TargetID = &id
	}
	if !in.IsPomodoro {
		return nil
	}
	if err := util.ValidateDuration(in.Duration); err != nil {
		return validationf("%s", err.Error())
	}
	if err := util.ValidateBreakDuration(in.BreakDuration); err != nil {
		return validationf("%s", err.Error())
	}
	return nil
}

// Start opens a new session for userID. A user holds at most one active
// session at a time.
func (s *SessionService) Start(ctx context.Context, userID uint, in StartInput) (*models.Session, error) {
	if err := s.validateStart(&in); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionKey(userID))
	defer unlock()

	active, err := s.repo.FindActive(ctx, userID)
	if err != nil {
		return nil, persistence("find active session", err)
	}
	if active != nil {
		return nil, conflict("active session already in progress")
	}

	start := s.Now().UTC()
	sess := &models.Session{
		UserID:     userID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		StartTime:  start,
		IsPomodoro: in.IsPomodoro,
	}
	if in.IsPomodoro {
		d := *in.Duration
		end := start.Add(time.Duration(d) * time.Minute)
		sess.Duration = &d
		sess.EndTime = &end
		if in.BreakDuration != nil {
			b := *in.BreakDuration
			sess.BreakDuration = &b
		}
	} else if in.EndTime != nil {
		end := in.EndTime.UTC()
		sess.EndTime = &end
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("active session already in progress")
		}
		return nil, persistence("create session", err)
	}
	s.log.Info("session started", "user_id", userID, "session_id", sess.ID, "pomodoro", sess.IsPomodoro)
	return sess, nil
}

// CompletionTimes computes the final end and whole-minute duration of sess
// completed at now. A Pomodoro is never credited less than its planned
// length; a manual session that declared an end keeps it.
func CompletionTimes(sess *models.Session, now time.Time) (time.Time, int) {
	end := now.UTC()
	if !sess.IsPomodoro && sess.EndTime != nil {
		end = sess.EndTime.UTC()
	}
	if sess.IsPomodoro && sess.Duration != nil {
		planned := sess.StartTime.Add(time.Duration(*sess.Duration) * time.Minute)
		if planned.After(end) {
			end = planned
		}
	}
	minutes := int(end.Sub(sess.StartTime) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return end, minutes
}

// Complete finalises an active session and feeds the outcome to the streak
// engine. Completing an already completed session returns it unchanged.
func (s *SessionService) Complete(ctx context.Context, userID uint, id string) (*models.Session, error) {
	sess, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return sess, nil
	}
	if sess.IsCancelled {
		return nil, conflict("session is cancelled")
	}

	end, minutes := CompletionTimes(sess, s.Now())
	applied, err := s.repo.MarkCompleted(ctx, userID, id, end, minutes)
	if err != nil {
		return nil, persistence("complete session", err)
	}
	if !applied {
		// lost a race with another terminal transition
		if sess, err = s.load(ctx, userID, id); err != nil {
			return nil, err
		}
		if sess.Completed {
			return sess, nil
		}
		return nil, conflict("session is cancelled")
	}

	sess.Completed = true
	sess.EndTime = &end
	sess.Duration = &minutes
	s.log.Info("session completed", "user_id", userID, "session_id", id, "minutes", minutes)

	if _, err := s.streak.Evaluate(ctx, userID, true, sess.Duration); err != nil {
		s.log.Warn("streak evaluation failed", "user_id", userID, "session_id", id, "error", err)
	}
	return sess, nil
}

// Cancel abandons an active session. Streaks are not touched.
func (s *SessionService) Cancel(ctx context.Context, userID uint, id string) (*models.Session, error) {
	sess, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sess.IsCancelled {
		return sess, nil
	}
	if sess.Completed {
		return nil, conflict("session is already completed")
	}

	applied, err := s.repo.MarkCancelled(ctx, userID, id)
	if err != nil {
		return nil, persistence("cancel session", err)
	}
	if !applied {
		if sess, err = s.load(ctx, userID, id); err != nil {
			return nil, err
		}
		if sess.IsCancelled {
			return sess, nil
		}
		return nil, conflict("session is already completed")
	}

	sess.IsCancelled = true
	s.log.Info("session cancelled", "user_id", userID, "session_id", id)
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, userID uint, id string) (*models.Session, error) {
	return s.load(ctx, userID, id)
}

// Active returns the user's active session or nil.
func (s *SessionService) Active(ctx context.Context, userID uint) (*models.Session, error) {
	sess, err := s.repo.FindActive(ctx, userID)
	if err != nil {
		return nil, persistence("find active session", err)
	}
	return sess, nil
}

func (s *SessionService) List(ctx context.Context, userID uint, f repository.SessionFilter) ([]models.Session, int64, error) {
	switch f.Status {
	case "", "active", "completed", "cancelled":
	default:
		return nil, 0, validationf("status must be active, completed or cancelled")
	}
	if !f.TargetType.Valid() {
		return nil, 0, validationf("targetType must be task or subtask")
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return nil, 0, validationf("from must be before to")
	}
	sessions, total, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, 0, persistence("list sessions", err)
	}
	return sessions, total, nil
}

// Delete removes a session. Streaks already earned stay.
func (s *SessionService) Delete(ctx context.Context, userID uint, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("session not found")
		}
		return persistence("delete session", err)
	}
	s.log.Info("session deleted", "user_id", userID, "session_id", id)
	return nil
}

func (s *SessionService) load(ctx context.Context, userID uint, id string) (*models.Session, error) {
	sess, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("session not found")
		}
		return nil, persistence("load session", err)
	}
	return sess, nil
}
