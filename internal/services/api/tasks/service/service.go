// Package service implements the committed tasks facade
package service

import (
	"context"

	"braindump/internal/core/workflow"
	"braindump/internal/modkit/repokit"
	perr "braindump/internal/platform/errors"
	"braindump/internal/services/api/tasks/domain"
	srepo "braindump/internal/services/api/tasks/repo"
)

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	DB   repokit.TxRunner
	Repo repokit.Binder[srepo.Repo]
}

// New constructs a tasks service
func New(db repokit.TxRunner, binder repokit.Binder[srepo.Repo]) *Service {
	if db == nil {
		panic("tasks.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("tasks.Service requires a non-nil repo Binder")
	}
	return &Service{DB: db, Repo: binder}
}

// Commit writes the dump, its tasks and the schedule in one transaction.
// Either everything lands or nothing does; the caller keeps its review
// state on failure
func (s *Service) Commit(ctx context.Context, userID, content string, tasks []workflow.Task, schedule *workflow.Schedule) (string, error) {
	if len(tasks) == 0 {
		return "", perr.NothingSelectedf("refusing to commit an empty task set")
	}
	var dumpID string
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Repo.Bind(q)
		id, err := r.InsertDump(ctx, userID, content, schedule)
		if err != nil {
			return err
		}
		if err := r.InsertTasks(ctx, id, tasks); err != nil {
			return err
		}
		dumpID = id
		return nil
	})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeCommit, "commit failed")
	}
	return dumpID, nil
}

// ListDumps returns the user's committed dumps, newest first
func (s *Service) ListDumps(ctx context.Context, userID string, limit int) ([]domain.Dump, error) {
	var out []domain.Dump
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = s.Repo.Bind(q).ListDumps(ctx, userID, limit)
		return e
	})
	return out, err
}

// GetDump returns one dump with its tasks
func (s *Service) GetDump(ctx context.Context, userID, dumpID string) (domain.Dump, error) {
	var out domain.Dump
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Repo.Bind(q)
		d, e := r.GetDump(ctx, userID, dumpID)
		if e != nil {
			return e
		}
		ts, e := r.TasksForDump(ctx, d.ID)
		if e != nil {
			return e
		}
		d.Tasks = ts
		d.TaskCount = len(ts)
		out = d
		return nil
	})
	return out, err
}
