package domain

import (
	"context"

	"braindump/internal/core/workflow"
)

// ServicePort defines the tasks service interface
type ServicePort interface {
	// Commit persists a reviewed dump, its selected tasks and the suggested
	// schedule atomically, returning the new dump id
	Commit(ctx context.Context, userID, content string, tasks []workflow.Task, schedule *workflow.Schedule) (string, error)

	// ListDumps returns the user's committed dumps, newest first
	ListDumps(ctx context.Context, userID string, limit int) ([]Dump, error)

	// GetDump returns one dump with its tasks
	GetDump(ctx context.Context, userID, dumpID string) (Dump, error)
}
