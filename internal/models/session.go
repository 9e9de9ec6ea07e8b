package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetType discriminates what a session is tracked against.
type TargetType string

const (
	TargetNone    TargetType = ""
	TargetTask    TargetType = "task"
	TargetSubtask TargetType = "subtask"
)

// Valid reports whether t is one of the known target kinds (or empty).
func (t TargetType) Valid() bool {
	switch t {
	case TargetNone, TargetTask, TargetSubtask:
		return true
	}
	return false
}

// Session is one unit of focused work owned by a user.
// Durations are whole minutes.
type Session struct {
	ID            string     `gorm:"primaryKey;size:36"` // UUID
	UserID        uint       `gorm:"index;not null"`
	TargetType    TargetType `gorm:"size:16"`
	TargetID      *string    `gorm:"size:64;index"` // weak reference, owned by the task service
	StartTime     time.Time  `gorm:"index;not null"`
	EndTime       *time.Time // planned end for Pomodoro until completion
	Duration      *int
	BreakDuration *int
	IsPomodoro    bool `gorm:"not null;default:false"`
	Completed     bool `gorm:"not null;default:false;index"`
	IsCancelled   bool `gorm:"not null;default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BeforeCreate assigns a UUID when the caller did not.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Active reports whether the session has reached neither terminal state.
func (s *Session) Active() bool {
	return !s.Completed && !s.IsCancelled
}

// Status is the state name used by the API and list filters.
func (s *Session) Status() string {
	switch {
	case s.Completed:
		return "completed"
	case s.IsCancelled:
		return "cancelled"
	default:
		return "active"
	}
}
