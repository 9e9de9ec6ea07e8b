package service

import (
	"time"

	"brainshift/internal/models"
)

// Progress is a read-only projection of an active session's clock, derived
// from stored fields at request time.
type Progress struct {
	ElapsedSeconds   *int64
	RemainingSeconds *int64
}

// ProgressOf computes elapsed and, for Pomodoro sessions, remaining seconds.
// Terminal sessions have no progress.
func ProgressOf(sess *models.Session, now time.Time) Progress {
	if !sess.Active() {
		return Progress{}
	}
	elapsed := int64(now.Sub(sess.StartTime) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	p := Progress{ElapsedSeconds: &elapsed}
	if sess.IsPomodoro && sess.Duration != nil {
		planned := sess.StartTime.Add(time.Duration(*sess.Duration) * time.Minute)
		remaining := int64(planned.Sub(now) / time.Second)
		if remaining < 0 {
			remaining = 0
		}
		p.RemainingSeconds = &remaining
	}
	return p
}
