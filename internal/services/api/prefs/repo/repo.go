// Package repo provides postgres access for preferences
package repo

import (
	"context"
	"encoding/json"

	"braindump/internal/modkit/repokit"
	perr "braindump/internal/platform/errors"
	"braindump/internal/services/api/prefs/domain"
)

// Repo defines the repository contract for preferences
type Repo interface {
	Get(ctx context.Context, userID string) (domain.Preferences, error)
	Upsert(ctx context.Context, p domain.Preferences) (domain.Preferences, error)
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

func (r *queries) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	const sql = `
select user_id, work_start_time, work_end_time, focus_hours, break_duration,
break_time, max_tasks_per_day, prioritize_urgent, scheduling_style, timezone, updated_at
from user_preferences
where user_id = $1
`
	var p domain.Preferences
	var focus []byte
	err := r.q.QueryRow(ctx, sql, userID).Scan(
		&p.UserID,
		&p.WorkStartTime,
		&p.WorkEndTime,
		&focus,
		&p.BreakDuration,
		&p.BreakTime,
		&p.MaxTasksPerDay,
		&p.PrioritizeUrgent,
		&p.SchedulingStyle,
		&p.Timezone,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Preferences{}, perr.FromPG(err)
	}
	p.FocusHours = []domain.TimeRange{}
	if len(focus) > 0 {
		if err := json.Unmarshal(focus, &p.FocusHours); err != nil {
			return domain.Preferences{}, perr.Wrapf(err, perr.ErrorCodeDB, "decode focus hours")
		}
	}
	return p, nil
}

func (r *queries) Upsert(ctx context.Context, p domain.Preferences) (domain.Preferences, error) {
	focus, err := json.Marshal(p.FocusHours)
	if err != nil {
		return domain.Preferences{}, perr.Wrapf(err, perr.ErrorCodeDB, "encode focus hours")
	}
	const sql = `
insert into user_preferences
(user_id, work_start_time, work_end_time, focus_hours, break_duration,
break_time, max_tasks_per_day, prioritize_urgent, scheduling_style, timezone, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
on conflict (user_id) do update set
work_start_time = excluded.work_start_time,
work_end_time = excluded.work_end_time,
focus_hours = excluded.focus_hours,
break_duration = excluded.break_duration,
break_time = excluded.break_time,
max_tasks_per_day = excluded.max_tasks_per_day,
prioritize_urgent = excluded.prioritize_urgent,
scheduling_style = excluded.scheduling_style,
timezone = excluded.timezone,
updated_at = now()
returning updated_at
`
	err = r.q.QueryRow(ctx, sql,
		p.UserID,
		p.WorkStartTime,
		p.WorkEndTime,
		focus,
		p.BreakDuration,
		p.BreakTime,
		p.MaxTasksPerDay,
		p.PrioritizeUrgent,
		p.SchedulingStyle,
		p.Timezone,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return domain.Preferences{}, perr.FromPG(err)
	}
	return p, nil
}
