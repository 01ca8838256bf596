package extract

import (
	"strings"

	"github.com/google/uuid"

	"braindump/internal/core/workflow"
)

// TimeRange is one focus window inside the working day, HH:MM bounds
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Preferences shapes the extraction request to the user's working habits
type Preferences struct {
	WorkStartTime    string      `json:"work_start_time"`
	WorkEndTime      string      `json:"work_end_time"`
	FocusHours       []TimeRange `json:"focus_hours"`
	BreakDuration    int         `json:"break_duration"`
	BreakTime        string      `json:"break_time,omitempty"`
	MaxTasksPerDay   int         `json:"max_tasks_per_day"`
	PrioritizeUrgent bool        `json:"prioritize_urgent"`
	SchedulingStyle  string      `json:"scheduling_style"`
	Timezone         string      `json:"timezone"`
}

// wire shapes for the extraction endpoint

type extractRequest struct {
	Content     string      `json:"content"`
	Timestamp   string      `json:"timestamp"`
	Preferences Preferences `json:"preferences"`
}

type wireTask struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Priority        string   `json:"priority"`
	EstimatedHours  *float64 `json:"estimated_hours"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	MicroTasks      []string `json:"micro_tasks"`
	OptimalTimeSlot string   `json:"optimal_time_slot"`
	EnergyLevel     string   `json:"energy_level"`
	FocusType       string   `json:"focus_type"`
	SuggestedDay    string   `json:"suggested_day"`
}

type wireTimeBlock struct {
	Time      string `json:"time"`
	TaskID    string `json:"task_id"`
	Rationale string `json:"rationale"`
}

type wireSchedule struct {
	TotalEstimatedHours float64         `json:"total_estimated_hours"`
	WorkloadAssessment  string          `json:"workload_assessment"`
	RecommendedOrder    []string        `json:"recommended_order"`
	TimeBlocks          []wireTimeBlock `json:"time_blocks"`
}

type extractResponse struct {
	Tasks    []wireTask    `json:"tasks"`
	Schedule *wireSchedule `json:"schedule"`
}

// toTasks converts wire tasks to domain tasks, repairing whatever the
// upstream model mangled. Untitled entries are dropped, missing ids are
// minted, priorities fold to the enum and hours clamp to non-negative.
// A response with zero usable tasks is still a success
func (r extractResponse) toTasks() []workflow.Task {
	out := make([]workflow.Task, 0, len(r.Tasks))
	for _, wt := range r.Tasks {
		title := strings.TrimSpace(wt.Title)
		if title == "" {
			continue
		}
		t := workflow.Task{
			ID:              strings.TrimSpace(wt.ID),
			Title:           title,
			Description:     strings.TrimSpace(wt.Description),
			Priority:        workflow.ParsePriority(wt.Priority),
			Category:        strings.TrimSpace(wt.Category),
			Tags:            compactStrings(wt.Tags),
			MicroTasks:      compactStrings(wt.MicroTasks),
			OptimalTimeSlot: strings.TrimSpace(wt.OptimalTimeSlot),
			EnergyLevel:     strings.TrimSpace(wt.EnergyLevel),
			FocusType:       strings.TrimSpace(wt.FocusType),
			SuggestedDay:    strings.TrimSpace(wt.SuggestedDay),
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if wt.EstimatedHours != nil && *wt.EstimatedHours > 0 {
			t.EstimatedHours = *wt.EstimatedHours
		}
		out = append(out, t)
	}
	return out
}

// toSchedule converts the wire schedule, dropping blocks that point at no task
func (r extractResponse) toSchedule(tasks []workflow.Task) *workflow.Schedule {
	if r.Schedule == nil {
		return nil
	}
	known := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		known[t.ID] = struct{}{}
	}
	s := &workflow.Schedule{
		TotalEstimatedHours: r.Schedule.TotalEstimatedHours,
		WorkloadAssessment:  strings.TrimSpace(r.Schedule.WorkloadAssessment),
		RecommendedOrder:    compactStrings(r.Schedule.RecommendedOrder),
		TimeBlocks:          make([]workflow.TimeBlock, 0, len(r.Schedule.TimeBlocks)),
	}
	if s.TotalEstimatedHours < 0 {
		s.TotalEstimatedHours = 0
	}
	for _, b := range r.Schedule.TimeBlocks {
		if _, ok := known[b.TaskID]; !ok {
			continue
		}
		s.TimeBlocks = append(s.TimeBlocks, workflow.TimeBlock{
			Time:      strings.TrimSpace(b.Time),
			TaskID:    b.TaskID,
			Rationale: strings.TrimSpace(b.Rationale),
		})
	}
	return s
}

// compactStrings trims entries and drops blanks, always returning a non-nil slice
func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
