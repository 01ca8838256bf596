// Package domain holds the committed task types and ports
package domain

import (
	"time"

	"braindump/internal/core/workflow"
)

// Dump is one committed brain dump: the raw content plus the reviewed tasks
// the user chose to keep
type Dump struct {
	ID        string             `json:"id"`
	UserID    string             `json:"-"`
	Content   string             `json:"content"`
	TaskCount int                `json:"task_count"`
	Tasks     []SavedTask        `json:"tasks,omitempty"`
	Schedule  *workflow.Schedule `json:"schedule,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// SavedTask is a task as persisted at commit time
type SavedTask struct {
	ID             string            `json:"id"`
	DumpID         string            `json:"dump_id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Priority       workflow.Priority `json:"priority"`
	EstimatedHours float64           `json:"estimated_hours"`
	Category       string            `json:"category"`
	Tags           []string          `json:"tags"`
	MicroTasks     []string          `json:"micro_tasks"`
	Position       int               `json:"position"`
	CreatedAt      time.Time         `json:"created_at"`
}
