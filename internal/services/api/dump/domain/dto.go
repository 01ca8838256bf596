// Package domain holds the brain dump DTOs and ports
package domain

import (
	"time"

	"braindump/internal/core/workflow"
)

// TextInput replaces the capture buffer with a keyboard edit.
// An empty text is valid; it clears the buffer
type TextInput struct {
	Text string `json:"text"`
}

// SegmentInput delivers one speech segment recognized on the client device
type SegmentInput struct {
	Segment string `json:"segment" validate:"required"`
	Final   bool   `json:"final"`
}

// ToggleInput flips the selection state of one reviewed task
type ToggleInput struct {
	TaskID string `json:"task_id" validate:"required"`
}

// EditOpenInput opens inline editing for one task
type EditOpenInput struct {
	TaskID string `json:"task_id" validate:"required"`
}

// EditFieldInput applies one inline field edit
type EditFieldInput struct {
	TaskID string `json:"task_id" validate:"required"`
	Field  string `json:"field" validate:"required,oneof=title description priority estimated_hours"`
	Value  string `json:"value"`
}

// VoiceState describes the capture session from the client's perspective
type VoiceState struct {
	Active  bool `json:"active"`
	Demoted bool `json:"demoted"`
}

// State is the full screen state: workflow snapshot plus voice session
type State struct {
	workflow.State
	Voice VoiceState `json:"voice"`
}

// CommitResult reports a successful save
type CommitResult struct {
	DumpID  string    `json:"dump_id"`
	SavedAt time.Time `json:"saved_at"`
	Saved   int       `json:"saved"`
}
