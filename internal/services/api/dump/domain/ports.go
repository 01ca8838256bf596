package domain

import (
	"context"

	"braindump/internal/adapters/extract"
	"braindump/internal/core/workflow"
)

// ServicePort defines the brain dump service interface
type ServicePort interface {
	State(ctx context.Context, userID string) (State, error)

	TypeText(ctx context.Context, userID, text string) (State, error)

	VoiceStart(ctx context.Context, userID string) (State, error)
	VoiceChunk(ctx context.Context, userID string, audio []byte) error
	VoiceSegment(ctx context.Context, userID, segment string, final bool) (State, error)
	VoiceStop(ctx context.Context, userID string) (State, error)

	Extract(ctx context.Context, userID string) (State, error)

	Toggle(ctx context.Context, userID, taskID string) (State, error)
	ToggleAll(ctx context.Context, userID string) (State, error)
	EditOpen(ctx context.Context, userID, taskID string) (State, error)
	EditClose(ctx context.Context, userID string) (State, error)
	EditField(ctx context.Context, userID, taskID, field, value string) (State, error)

	Commit(ctx context.Context, userID string) (CommitResult, error)
}

// Extractor turns buffer content into structured tasks
type Extractor interface {
	Extract(ctx context.Context, content string, prefs extract.Preferences) ([]workflow.Task, *workflow.Schedule, error)
}

// Committer persists a reviewed dump; the tasks module provides it. The
// schedule rides along with the selected tasks and the raw content so the
// whole review lands as one request
type Committer interface {
	Commit(ctx context.Context, userID, content string, tasks []workflow.Task, schedule *workflow.Schedule) (string, error)
}

// PrefsReader supplies the user's extraction preferences
type PrefsReader interface {
	Preferences(ctx context.Context, userID string) (extract.Preferences, error)
}
