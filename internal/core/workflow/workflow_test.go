package workflow

import (
	"testing"
	"time"

	perr "braindump/internal/platform/errors"
)

func frozenClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func sampleTasks() []Task {
	return []Task{
		{ID: "t1", Title: "File taxes", Priority: PriorityHigh, EstimatedHours: 2},
		{ID: "t2", Title: "Buy groceries", Priority: PriorityLow, EstimatedHours: 0.5},
		{ID: "t3", Title: "Write report", Priority: PriorityMedium, EstimatedHours: 3},
	}
}

func reviewing(t *testing.T) *Workflow {
	t.Helper()
	w := New()
	w.TypeText("file taxes, buy groceries, write report")
	seq, _, err := w.BeginExtraction()
	if err != nil {
		t.Fatalf("BeginExtraction: %v", err)
	}
	if !w.ApplyExtraction(seq, sampleTasks(), nil) {
		t.Fatal("ApplyExtraction rejected fresh sequence")
	}
	return w
}

func TestBeginExtractionEmptyBuffer(t *testing.T) {
	t.Parallel()

	w := New()
	w.TypeText("   \n\t ")
	if _, _, err := w.BeginExtraction(); !perr.IsCode(err, perr.ErrorCodeEmptyInput) {
		t.Fatalf("want EmptyInput, got %v", err)
	}
	if got := w.Snapshot().Phase; got != PhaseEmpty {
		t.Fatalf("phase = %s, want empty", got)
	}
}

func TestApplyExtractionSelectsAll(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	ids := w.SelectedIDs()
	if len(ids) != 3 {
		t.Fatalf("selected %d tasks, want 3", len(ids))
	}
	if got := w.Snapshot().Phase; got != PhaseReviewing {
		t.Fatalf("phase = %s, want reviewing", got)
	}
}

func TestStaleExtractionDiscarded(t *testing.T) {
	t.Parallel()

	w := New()
	w.TypeText("first dump")
	seqA, _, err := w.BeginExtraction()
	if err != nil {
		t.Fatalf("BeginExtraction A: %v", err)
	}
	w.TypeText("first dump plus more")
	seqB, _, err := w.BeginExtraction()
	if err != nil {
		t.Fatalf("BeginExtraction B: %v", err)
	}

	fresh := []Task{{ID: "b1", Title: "From B"}}
	if !w.ApplyExtraction(seqB, fresh, nil) {
		t.Fatal("newest response rejected")
	}
	if w.ApplyExtraction(seqA, []Task{{ID: "a1", Title: "From A"}}, nil) {
		t.Fatal("stale response applied")
	}

	tasks := w.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "b1" {
		t.Fatalf("tasks = %+v, want only b1", tasks)
	}
}

func TestStaleExtractionDiscardedWhenItArrivesFirst(t *testing.T) {
	t.Parallel()

	w := New()
	w.TypeText("first dump")
	seqA, _, err := w.BeginExtraction()
	if err != nil {
		t.Fatalf("BeginExtraction A: %v", err)
	}
	w.TypeText("first dump plus more")
	seqB, _, err := w.BeginExtraction()
	if err != nil {
		t.Fatalf("BeginExtraction B: %v", err)
	}

	// A's response lands before B's; once B is in flight A is already stale
	if w.ApplyExtraction(seqA, []Task{{ID: "a1", Title: "From A"}}, nil) {
		t.Fatal("stale response applied")
	}
	if got := w.Snapshot().Phase; got != PhaseExtracting {
		t.Fatalf("phase = %s, want still extracting", got)
	}
	if !w.ApplyExtraction(seqB, []Task{{ID: "b1", Title: "From B"}}, nil) {
		t.Fatal("newest response rejected")
	}

	tasks := w.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "b1" {
		t.Fatalf("tasks = %+v, want only b1", tasks)
	}
}

func TestStaleExtractionFailureIgnored(t *testing.T) {
	t.Parallel()

	w := New()
	w.TypeText("some text")
	seqA, _, _ := w.BeginExtraction()
	seqB, _, _ := w.BeginExtraction()

	if !w.ApplyExtraction(seqB, sampleTasks(), nil) {
		t.Fatal("newest response rejected")
	}
	if w.FailExtraction(seqA) {
		t.Fatal("stale failure applied")
	}
	if got := w.Snapshot().Phase; got != PhaseReviewing {
		t.Fatalf("phase = %s, want reviewing", got)
	}
}

func TestFailExtractionKeepsBuffer(t *testing.T) {
	t.Parallel()

	w := New()
	w.TypeText("keep me")
	seq, _, _ := w.BeginExtraction()
	if !w.FailExtraction(seq) {
		t.Fatal("FailExtraction rejected fresh sequence")
	}
	if got := w.Text(); got != "keep me" {
		t.Fatalf("buffer = %q, want untouched", got)
	}
	if got := w.Snapshot().Phase; got != PhaseEmpty {
		t.Fatalf("phase = %s, want empty", got)
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	before := w.SelectedIDs()
	w.Toggle("nope")
	w.Toggle("")
	after := w.SelectedIDs()
	if len(before) != len(after) {
		t.Fatalf("selection changed: %v -> %v", before, after)
	}
}

func TestToggleAllBinaryCollapse(t *testing.T) {
	t.Parallel()

	w := reviewing(t)

	// partial selection collapses to all
	w.Toggle("t2")
	if n := len(w.SelectedIDs()); n != 2 {
		t.Fatalf("selected %d, want 2", n)
	}
	w.ToggleAll()
	if n := len(w.SelectedIDs()); n != 3 {
		t.Fatalf("after ToggleAll from partial: %d, want 3", n)
	}

	// full selection collapses to none, then back to all
	w.ToggleAll()
	if n := len(w.SelectedIDs()); n != 0 {
		t.Fatalf("after ToggleAll from full: %d, want 0", n)
	}
	w.ToggleAll()
	if n := len(w.SelectedIDs()); n != 3 {
		t.Fatalf("after ToggleAll from none: %d, want 3", n)
	}
}

func TestEditFieldCoercesHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"numeric", "2.5", 2.5},
		{"integer", "4", 4},
		{"negative", "-3", 0},
		{"garbage", "abc", 0},
		{"blank", "  ", 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := reviewing(t)
			if !w.EditField("t1", FieldEstimatedHours, tc.in) {
				t.Fatal("EditField rejected known id")
			}
			if got := w.Tasks()[0].EstimatedHours; got != tc.want {
				t.Fatalf("hours = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEditFieldPriorityFoldsUnknown(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	w.EditField("t2", FieldPriority, "URGENT")
	if got := w.Tasks()[1].Priority; got != PriorityUrgent {
		t.Fatalf("priority = %s, want urgent", got)
	}
	w.EditField("t2", FieldPriority, "someday")
	if got := w.Tasks()[1].Priority; got != PriorityMedium {
		t.Fatalf("priority = %s, want medium fallback", got)
	}
}

func TestEditFieldUnknownTargets(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	if w.EditField("nope", FieldTitle, "x") {
		t.Fatal("edit on unknown id accepted")
	}
	if w.EditField("t1", Field("color"), "x") {
		t.Fatal("edit on unknown field accepted")
	}
}

func TestStartEditSwitchesTarget(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	if !w.StartEdit("t1") {
		t.Fatal("StartEdit t1 rejected")
	}
	w.EditField("t1", FieldTitle, "File taxes today")
	if !w.StartEdit("t2") {
		t.Fatal("StartEdit t2 rejected")
	}
	if got := w.Editing(); got != "t2" {
		t.Fatalf("editing = %q, want t2", got)
	}

	// closing the editor keeps edits already applied
	w.StopEdit()
	if got := w.Tasks()[0].Title; got != "File taxes today" {
		t.Fatalf("title = %q, edit lost on close", got)
	}
}

func TestBeginCommitGuards(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	w.ToggleAll() // deselect everything
	if _, err := w.BeginCommit("user-1"); !perr.IsCode(err, perr.ErrorCodeNothingSelected) {
		t.Fatalf("want NothingSelected, got %v", err)
	}

	w.ToggleAll()
	if _, err := w.BeginCommit(""); !perr.IsCode(err, perr.ErrorCodeNothingSelected) {
		t.Fatalf("want NothingSelected for blank identity, got %v", err)
	}
}

func TestBeginCommitSnapshotsSelection(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	w.Toggle("t2")
	p, err := w.BeginCommit("user-1")
	if err != nil {
		t.Fatalf("BeginCommit: %v", err)
	}
	if len(p.Tasks) != 2 {
		t.Fatalf("payload has %d tasks, want 2", len(p.Tasks))
	}
	for _, tk := range p.Tasks {
		if tk.ID == "t2" {
			t.Fatal("deselected task included in payload")
		}
	}
	if p.Identity != "user-1" {
		t.Fatalf("identity = %q", p.Identity)
	}

	// second commit while the first is in flight conflicts
	if _, err := w.BeginCommit("user-1"); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("want Conflict, got %v", err)
	}
}

func TestCommitFailedReturnsToReview(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	if _, err := w.BeginCommit("user-1"); err != nil {
		t.Fatalf("BeginCommit: %v", err)
	}
	w.CommitFailed()
	st := w.Snapshot()
	if st.Phase != PhaseReviewing {
		t.Fatalf("phase = %s, want reviewing", st.Phase)
	}
	if len(st.Tasks) != 3 || len(st.Selected) != 3 {
		t.Fatal("review state lost after failed commit")
	}

	// retry is allowed
	if _, err := w.BeginCommit("user-1"); err != nil {
		t.Fatalf("retry BeginCommit: %v", err)
	}
}

func TestClearReviewKeepsBuffer(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := New(WithClock(frozenClock(now)))
	w.TypeText("dump everything")
	seq, _, _ := w.BeginExtraction()
	w.ApplyExtraction(seq, sampleTasks(), &Schedule{TotalEstimatedHours: 5.5})
	if _, err := w.BeginCommit("user-1"); err != nil {
		t.Fatalf("BeginCommit: %v", err)
	}
	if got := w.CommitSucceeded(); !got.Equal(now) {
		t.Fatalf("savedAt = %v, want %v", got, now)
	}

	if !w.ClearReview() {
		t.Fatal("ClearReview rejected in saved phase")
	}
	st := w.Snapshot()
	if st.Phase != PhaseEmpty || len(st.Tasks) != 0 || len(st.Selected) != 0 || st.Schedule != nil {
		t.Fatalf("review state not cleared: %+v", st)
	}
	if st.Text != "dump everything" {
		t.Fatalf("buffer = %q, must survive clear", st.Text)
	}

	// clearing twice, or outside the saved phase, is a no-op
	if w.ClearReview() {
		t.Fatal("ClearReview applied outside saved phase")
	}
}

func TestMarkSavedSkipsEmptyBuffer(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := New(WithClock(frozenClock(now)))
	w.TypeText("   ")
	w.MarkSaved()
	if !w.LastSavedAt().IsZero() {
		t.Fatal("blank buffer stamped as saved")
	}

	w.TypeText("hello")
	w.MarkSaved()
	if !w.LastSavedAt().Equal(now) {
		t.Fatalf("lastSavedAt = %v, want %v", w.LastSavedAt(), now)
	}
}

func TestAppendTranscript(t *testing.T) {
	t.Parallel()

	w := New()
	if w.AppendTranscript("  ") {
		t.Fatal("blank segment appended")
	}
	w.AppendTranscript("call mom")
	w.AppendTranscript("pay rent ")
	if got := w.Text(); got != "call mom pay rent" {
		t.Fatalf("buffer = %q", got)
	}
	w.TypeText("typed over")
	w.AppendTranscript("and spoken")
	if got := w.Text(); got != "typed over and spoken" {
		t.Fatalf("buffer = %q", got)
	}
}

func TestReextractionReplacesWholesale(t *testing.T) {
	t.Parallel()

	w := reviewing(t)
	w.Toggle("t3")
	w.EditField("t1", FieldTitle, "edited")

	seq, _, err := w.BeginExtraction()
	if err != nil {
		t.Fatalf("BeginExtraction: %v", err)
	}
	w.ApplyExtraction(seq, []Task{{ID: "n1", Title: "Fresh"}}, nil)

	tasks := w.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Fresh" {
		t.Fatalf("tasks = %+v, want full replacement", tasks)
	}
	ids := w.SelectedIDs()
	if len(ids) != 1 || ids[0] != "n1" {
		t.Fatalf("selected = %v, want fresh set fully selected", ids)
	}
	if got := w.Editing(); got != "" {
		t.Fatalf("editing = %q, want cleared", got)
	}
}
