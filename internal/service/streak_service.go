package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brainshift/internal/models"
	"brainshift/internal/repository"
	"brainshift/internal/timeutil"
	"brainshift/internal/util"

	"github.com/hashicorp/go-hclog"
	"gorm.io/datatypes"
)

// QualifyingMinutes is the shortest completed session that counts toward a
// streak.
const QualifyingMinutes = 30

// StreakView is the streak as reported to clients.
type StreakView struct {
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
	LastStreakDate *string `json:"lastStreakDate"` // YYYY-MM-DD in the reference zone
}

// StreakService maintains the per-user daily streak. All calendar math
// happens in loc.
type StreakService struct {
	repo  *repository.StreakRepository
	loc   *time.Location
	locks *util.KeyedMutex
	log   hclog.Logger

	Now func() time.Time
}

func NewStreakService(repo *repository.StreakRepository, loc *time.Location, locks *util.KeyedMutex, log hclog.Logger) *StreakService {
	return &StreakService{
		repo:  repo,
		loc:   loc,
		locks: locks,
		log:   log.Named("streak"),
		Now:   time.Now,
	}
}

func streakKey(userID uint) string {
	return fmt.Sprintf("streak:%d", userID)
}

func qualifies(completed bool, duration *int) bool {
	return completed && duration != nil && *duration >= QualifyingMinutes
}

// stale reports whether st's last day is neither today nor yesterday.
func (s *StreakService) stale(st *models.Streak, now time.Time) bool {
	if st.LastStreakDate == nil {
		return true
	}
	last := s.day(*st.LastStreakDate)
	return !timeutil.IsSameDay(last, now, s.loc) && !timeutil.IsYesterday(last, now, s.loc)
}

// day turns a stored date back into midnight in loc. The driver may hand the
// date back in UTC, so only the calendar components are kept.
func (s *StreakService) day(d datatypes.Date) time.Time {
	y, m, dd := time.Time(d).Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, s.loc)
}

func (s *StreakService) today(now time.Time) *datatypes.Date {
	y, m, d := now.In(s.loc).Date()
	day := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &day
}

// Evaluate applies one session outcome to the user's streak and returns the
// resulting row, nil when none exists.
func (s *StreakService) Evaluate(ctx context.Context, userID uint, completed bool, duration *int) (*models.Streak, error) {
	unlock := s.locks.Lock(streakKey(userID))
	defer unlock()

	now := s.Now()
	st, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, persistence("load streak", err)
	}

	if !qualifies(completed, duration) {
		if st != nil && st.CurrentStreak > 0 && s.stale(st, now) {
			st.CurrentStreak = 0
			if err := s.repo.Save(ctx, st); err != nil {
				return nil, persistence("reset streak", err)
			}
			s.log.Debug("streak reset", "user_id", userID)
		}
		return st, nil
	}

	if st == nil {
		st = &models.Streak{UserID: userID, CurrentStreak: 1, LongestStreak: 1, LastStreakDate: s.today(now)}
		err := s.repo.Create(ctx, st)
		if err == nil {
			s.log.Debug("streak started", "user_id", userID)
			return st, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, persistence("create streak", err)
		}
		// created by another process between the read and the insert
		if st, err = s.repo.FindByUser(ctx, userID); err != nil || st == nil {
			return nil, persistence("reload streak", err)
		}
	}

	switch {
	case st.LastStreakDate != nil && timeutil.IsSameDay(s.day(*st.LastStreakDate), now, s.loc):
		return st, nil
	case st.LastStreakDate != nil && timeutil.IsYesterday(s.day(*st.LastStreakDate), now, s.loc):
		st.CurrentStreak++
	default:
		st.CurrentStreak = 1
	}
	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
	}
	st.LastStreakDate = s.today(now)

	if err := s.repo.Save(ctx, st); err != nil {
		return nil, persistence("save streak", err)
	}
	s.log.Debug("streak advanced", "user_id", userID, "current", st.CurrentStreak, "longest", st.LongestStreak)
	return st, nil
}

// Read returns the user's streak, zeroing a stale current run first.
// No row is created for users without one.
func (s *StreakService) Read(ctx context.Context, userID uint) (*StreakView, error) {
	st, err := s.decayUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return &StreakView{}, nil
	}
	view := &StreakView{CurrentStreak: st.CurrentStreak, LongestStreak: st.LongestStreak}
	if st.LastStreakDate != nil {
		d := time.Time(*st.LastStreakDate).Format("2006-01-02")
		view.LastStreakDate = &d
	}
	return view, nil
}

func (s *StreakService) decayUser(ctx context.Context, userID uint) (*models.Streak, error) {
	unlock := s.locks.Lock(streakKey(userID))
	defer unlock()

	st, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, persistence("load streak", err)
	}
	if st == nil {
		return nil, nil
	}
	if st.CurrentStreak > 0 && s.stale(st, s.Now()) {
		st.CurrentStreak = 0
		if err := s.repo.Save(ctx, st); err != nil {
			return nil, persistence("reset streak", err)
		}
		s.log.Debug("stale streak reset on read", "user_id", userID)
	}
	return st, nil
}

// DecayAll zeroes every stale current streak and returns how many were reset.
func (s *StreakService) DecayAll(ctx context.Context) (int, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, persistence("list streaks", err)
	}
	reset := 0
	for _, st := range active {
		if err := ctx.Err(); err != nil {
			return reset, err
		}
		before := st.CurrentStreak
		after, err := s.decayUser(ctx, st.UserID)
		if err != nil {
			return reset, err
		}
		if after != nil && before > 0 && after.CurrentStreak == 0 {
			reset++
		}
	}
	return reset, nil
}
