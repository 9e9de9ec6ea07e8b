package util

import (
	"fmt"
	"strings"
)

// MaxSessionMinutes caps planned and break durations at one day.
const MaxSessionMinutes = 24 * 60

// ValidateDuration checks a planned Pomodoro duration in minutes.
func ValidateDuration(minutes *int) error {
	if minutes == nil {
		return fmt.Errorf("duration is required for a pomodoro session")
	}
	if *minutes <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes, got %d", *minutes)
	}
	if *minutes > MaxSessionMinutes {
		return fmt.Errorf("duration too large, max %d minutes", MaxSessionMinutes)
	}
	return nil
}

// ValidateBreakDuration checks an optional break length in minutes.
func ValidateBreakDuration(minutes *int) error {
	if minutes == nil {
		return nil
	}
	if *minutes < 0 {
		return fmt.Errorf("breakDuration must not be negative, got %d", *minutes)
	}
	if *minutes > MaxSessionMinutes {
		return fmt.Errorf("breakDuration too large, max %d minutes", MaxSessionMinutes)
	}
	return nil
}

// ValidateTargetID checks an optional weak reference to a task or subtask.
func ValidateTargetID(id *string) error {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return fmt.Errorf("targetId is empty")
	}
	if len(trimmed) > 64 {
		return fmt.Errorf("targetId too long, max 64 characters")
	}
	return nil
}
