package domain

// UpdateInput is the full replacement payload for the preferences endpoint.
// Partial updates are not supported; the client always submits the whole form
type UpdateInput struct {
	WorkStartTime    string      `json:"work_start_time" validate:"required,clock"`
	WorkEndTime      string      `json:"work_end_time" validate:"required,clock"`
	FocusHours       []TimeRange `json:"focus_hours" validate:"max=12,dive"`
	BreakDuration    int         `json:"break_duration" validate:"min=0,max=480"`
	BreakTime        string      `json:"break_time" validate:"omitempty,clock"`
	MaxTasksPerDay   int         `json:"max_tasks_per_day" validate:"min=1,max=50"`
	PrioritizeUrgent bool        `json:"prioritize_urgent"`
	SchedulingStyle  string      `json:"scheduling_style" validate:"required,oneof=traditional night evening early custom"`
	Timezone         string      `json:"timezone" validate:"required"`
}
