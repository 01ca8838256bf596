// Package service implements the preferences facade
package service

import (
	"context"
	"time"

	"braindump/internal/modkit/repokit"
	perr "braindump/internal/platform/errors"
	"braindump/internal/services/api/prefs/domain"
	srepo "braindump/internal/services/api/prefs/repo"
)

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	DB   repokit.TxRunner
	Repo repokit.Binder[srepo.Repo]
}

// New constructs a preferences service
func New(db repokit.TxRunner, binder repokit.Binder[srepo.Repo]) *Service {
	if db == nil {
		panic("prefs.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("prefs.Service requires a non-nil repo Binder")
	}
	return &Service{DB: db, Repo: binder}
}

// Get returns the stored preferences, falling back to defaults for users
// who never saved any
func (s *Service) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	var out domain.Preferences
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = s.Repo.Bind(q).Get(ctx, userID)
		return e
	})
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Defaults(userID), nil
	}
	return out, err
}

// Update replaces the user's preferences. The timezone must resolve against
// the IANA database; the rest of the payload was already shape-validated
func (s *Service) Update(ctx context.Context, userID string, in domain.UpdateInput) (domain.Preferences, error) {
	if _, err := time.LoadLocation(in.Timezone); err != nil {
		return domain.Preferences{}, perr.Validationf("unknown timezone %q", in.Timezone)
	}
	focus := in.FocusHours
	if focus == nil {
		focus = []domain.TimeRange{}
	}
	p := domain.Preferences{
		UserID:           userID,
		WorkStartTime:    in.WorkStartTime,
		WorkEndTime:      in.WorkEndTime,
		FocusHours:       focus,
		BreakDuration:    in.BreakDuration,
		BreakTime:        in.BreakTime,
		MaxTasksPerDay:   in.MaxTasksPerDay,
		PrioritizeUrgent: in.PrioritizeUrgent,
		SchedulingStyle:  in.SchedulingStyle,
		Timezone:         in.Timezone,
	}
	var out domain.Preferences
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = s.Repo.Bind(q).Upsert(ctx, p)
		return e
	})
	return out, err
}
