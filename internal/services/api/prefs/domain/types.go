// Package domain holds the preferences types and ports
package domain

import "time"

// TimeRange is one focus window inside the working day, HH:MM bounds
type TimeRange struct {
	Start string `json:"start" validate:"required,clock"`
	End   string `json:"end" validate:"required,clock"`
}

// Preferences are the per-user scheduling preferences sent with every
// extraction request
type Preferences struct {
	UserID           string      `json:"-"`
	WorkStartTime    string      `json:"work_start_time"`
	WorkEndTime      string      `json:"work_end_time"`
	FocusHours       []TimeRange `json:"focus_hours"`
	BreakDuration    int         `json:"break_duration"`
	BreakTime        string      `json:"break_time,omitempty"`
	MaxTasksPerDay   int         `json:"max_tasks_per_day"`
	PrioritizeUrgent bool        `json:"prioritize_urgent"`
	SchedulingStyle  string      `json:"scheduling_style"`
	Timezone         string      `json:"timezone"`
	UpdatedAt        time.Time   `json:"updated_at,omitzero"`
}

// Defaults returns the preferences used until the user saves their own
func Defaults(userID string) Preferences {
	return Preferences{
		UserID:           userID,
		WorkStartTime:    "09:00",
		WorkEndTime:      "17:00",
		FocusHours:       []TimeRange{},
		BreakDuration:    60,
		MaxTasksPerDay:   8,
		PrioritizeUrgent: true,
		SchedulingStyle:  "traditional",
		Timezone:         "UTC",
	}
}
