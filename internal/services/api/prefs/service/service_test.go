package service

import (
	"context"
	"reflect"
	"testing"

	"braindump/internal/modkit/repokit"
	perr "braindump/internal/platform/errors"
	"braindump/internal/services/api/prefs/domain"
	srepo "braindump/internal/services/api/prefs/repo"
)

// passTx runs the function directly, no real database involved
type passTx struct{}

func (passTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(nil) }
func (passTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	panic("not used")
}
func (passTx) Query(context.Context, string, ...any) (repokit.Rows, error) { panic("not used") }
func (passTx) QueryRow(context.Context, string, ...any) repokit.Row       { panic("not used") }

type fakeRepo struct {
	stored map[string]domain.Preferences
}

func (f *fakeRepo) Get(_ context.Context, userID string) (domain.Preferences, error) {
	p, ok := f.stored[userID]
	if !ok {
		return domain.Preferences{}, perr.NotFoundf("no preferences for %s", userID)
	}
	return p, nil
}

func (f *fakeRepo) Upsert(_ context.Context, p domain.Preferences) (domain.Preferences, error) {
	f.stored[p.UserID] = p
	return p, nil
}

func newSvc() (*Service, *fakeRepo) {
	fr := &fakeRepo{stored: map[string]domain.Preferences{}}
	binder := repokit.BindFunc[srepo.Repo](func(repokit.Queryer) srepo.Repo { return fr })
	return New(passTx{}, binder), fr
}

func validInput() domain.UpdateInput {
	return domain.UpdateInput{
		WorkStartTime:    "08:30",
		WorkEndTime:      "16:30",
		FocusHours:       []domain.TimeRange{{Start: "09:00", End: "11:00"}},
		BreakDuration:    45,
		BreakTime:        "12:00",
		MaxTasksPerDay:   6,
		PrioritizeUrgent: true,
		SchedulingStyle:  "evening",
		Timezone:         "Europe/Stockholm",
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc()
	got, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := domain.Defaults("u1")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want defaults %+v", got, want)
	}
}

func TestUpdateThenGet(t *testing.T) {
	t.Parallel()

	svc, fr := newSvc()
	ctx := context.Background()

	saved, err := svc.Update(ctx, "u1", validInput())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if saved.Timezone != "Europe/Stockholm" || saved.BreakDuration != 45 {
		t.Fatalf("saved = %+v", saved)
	}
	if _, ok := fr.stored["u1"]; !ok {
		t.Fatal("nothing persisted")
	}

	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.WorkStartTime != "08:30" || got.BreakTime != "12:00" || !got.PrioritizeUrgent {
		t.Fatalf("got %+v", got)
	}
	if len(got.FocusHours) != 1 || got.FocusHours[0] != (domain.TimeRange{Start: "09:00", End: "11:00"}) {
		t.Fatalf("focus hours = %+v", got.FocusHours)
	}
}

func TestUpdateRejectsUnknownTimezone(t *testing.T) {
	t.Parallel()

	svc, fr := newSvc()
	in := validInput()
	in.Timezone = "Mars/Olympus_Mons"
	_, err := svc.Update(context.Background(), "u1", in)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want Validation, got %v", err)
	}
	if len(fr.stored) != 0 {
		t.Fatal("invalid timezone persisted")
	}
}
