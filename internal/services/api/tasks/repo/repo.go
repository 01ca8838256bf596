// Package repo provides postgres access for committed dumps and tasks
package repo

import (
	"context"
	"encoding/json"

	"braindump/internal/core/workflow"
	"braindump/internal/modkit/repokit"
	perr "braindump/internal/platform/errors"
	"braindump/internal/services/api/tasks/domain"
)

// Repo defines the repository contract for committed dumps
type Repo interface {
	InsertDump(ctx context.Context, userID, content string, schedule *workflow.Schedule) (string, error)
	InsertTasks(ctx context.Context, dumpID string, tasks []workflow.Task) error
	ListDumps(ctx context.Context, userID string, limit int) ([]domain.Dump, error)
	GetDump(ctx context.Context, userID, dumpID string) (domain.Dump, error)
	TasksForDump(ctx context.Context, dumpID string) ([]domain.SavedTask, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) InsertDump(ctx context.Context, userID, content string, schedule *workflow.Schedule) (string, error) {
	var sched []byte
	if schedule != nil {
		b, err := json.Marshal(schedule)
		if err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeDB, "encode schedule")
		}
		sched = b
	}
	const sql = `
insert into dumps (user_id, content, schedule, created_at)
values ($1, $2, $3, now())
returning id::text
`
	var id string
	if err := r.q.QueryRow(ctx, sql, userID, content, sched).Scan(&id); err != nil {
		return "", perr.FromPG(err)
	}
	return id, nil
}

func (r *queries) InsertTasks(ctx context.Context, dumpID string, tasks []workflow.Task) error {
	const sql = `
insert into dump_tasks
(id, dump_id, title, description, priority, estimated_hours, category, tags, micro_tasks, position, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
`
	for i, t := range tasks {
		_, err := r.q.Exec(ctx, sql,
			t.ID,
			dumpID,
			t.Title,
			t.Description,
			string(t.Priority),
			t.EstimatedHours,
			t.Category,
			t.Tags,
			t.MicroTasks,
			i,
		)
		if err != nil {
			return perr.FromPG(err)
		}
	}
	return nil
}

func (r *queries) ListDumps(ctx context.Context, userID string, limit int) ([]domain.Dump, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const sql = `
select d.id::text, d.content, d.created_at, count(t.id)
from dumps d
left join dump_tasks t on t.dump_id = d.id
where d.user_id = $1
group by d.id, d.content, d.created_at
order by d.created_at desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, userID, limit)
	if err != nil {
		return nil, perr.FromPG(err)
	}
	defer rows.Close()
	var out []domain.Dump
	for rows.Next() {
		d := domain.Dump{UserID: userID}
		if err := rows.Scan(&d.ID, &d.Content, &d.CreatedAt, &d.TaskCount); err != nil {
			return nil, perr.FromPG(err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *queries) GetDump(ctx context.Context, userID, dumpID string) (domain.Dump, error) {
	const sql = `
select id::text, content, schedule, created_at
from dumps
where id = $1 and user_id = $2
`
	d := domain.Dump{UserID: userID}
	var sched []byte
	if err := r.q.QueryRow(ctx, sql, dumpID, userID).Scan(&d.ID, &d.Content, &sched, &d.CreatedAt); err != nil {
		return domain.Dump{}, perr.FromPG(err)
	}
	if len(sched) > 0 {
		var s workflow.Schedule
		if err := json.Unmarshal(sched, &s); err != nil {
			return domain.Dump{}, perr.Wrapf(err, perr.ErrorCodeDB, "decode schedule")
		}
		d.Schedule = &s
	}
	return d, nil
}

func (r *queries) TasksForDump(ctx context.Context, dumpID string) ([]domain.SavedTask, error) {
	const sql = `
select id::text, dump_id::text, title, description, priority, estimated_hours,
category, tags, micro_tasks, position, created_at
from dump_tasks
where dump_id = $1
order by position
`
	rows, err := r.q.Query(ctx, sql, dumpID)
	if err != nil {
		return nil, perr.FromPG(err)
	}
	defer rows.Close()
	var out []domain.SavedTask
	for rows.Next() {
		var t domain.SavedTask
		var prio string
		if err := rows.Scan(
			&t.ID,
			&t.DumpID,
			&t.Title,
			&t.Description,
			&prio,
			&t.EstimatedHours,
			&t.Category,
			&t.Tags,
			&t.MicroTasks,
			&t.Position,
			&t.CreatedAt,
		); err != nil {
			return nil, perr.FromPG(err)
		}
		t.Priority = workflow.ParsePriority(prio)
		out = append(out, t)
	}
	return out, rows.Err()
}
