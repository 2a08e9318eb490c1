package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// WorkHours is the working window of a single weekday
type WorkHours struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WorkSchedule maps weekday (0=Sunday..6=Saturday) to working hours.
// An empty schedule means "not configured" and the professional is open for the whole grid;
// in a configured schedule a missing or nil weekday is a day off.
type WorkSchedule map[time.Weekday]*WorkHours

// IsConfigured returns true if at least one weekday entry exists
func (s WorkSchedule) IsConfigured() bool {
	return len(s) > 0
}

// For returns the working hours of the weekday or nil for a day off
func (s WorkSchedule) For(weekday time.Weekday) *WorkHours {
	if s == nil {
		return nil
	}
	return s[weekday]
}

// Professional represents a salon professional
type Professional struct {
	Username     string
	Name         string
	WorkSchedule WorkSchedule
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
