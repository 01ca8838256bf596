package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"braindump/internal/core/workflow"
	perr "braindump/internal/platform/errors"
	"braindump/internal/platform/testkit"
)

func defaultPrefs() Preferences {
	return Preferences{
		WorkStartTime:    "09:00",
		WorkEndTime:      "17:00",
		FocusHours:       []TimeRange{{Start: "10:00", End: "12:00"}},
		BreakDuration:    60,
		BreakTime:        "12:30",
		MaxTasksPerDay:   8,
		PrioritizeUrgent: true,
		SchedulingStyle:  "traditional",
		Timezone:         "UTC",
	}
}

func newTestClient(url string) *Client {
	c := NewClient(Options{BaseURL: url, APIKey: "test-key", Timeout: 2 * time.Second, RetryBase: time.Millisecond})
	c.sleep = func(time.Duration) {}
	return c
}

func TestExtractRequestShape(t *testing.T) {
	t.Parallel()

	var got extractRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(extractResponse{})
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).Extract(context.Background(), "buy milk and call mom", defaultPrefs())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Content != "buy milk and call mom" {
		t.Fatalf("content = %q", got.Content)
	}
	ts, err := time.Parse(time.RFC3339, got.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q not RFC3339: %v", got.Timestamp, err)
	}
	if d := time.Since(ts); d < 0 || d > time.Minute {
		t.Fatalf("timestamp %v not stamped at submit time", ts)
	}
	if got.Preferences.WorkStartTime != "09:00" || got.Preferences.MaxTasksPerDay != 8 {
		t.Fatalf("preferences = %+v", got.Preferences)
	}
	if len(got.Preferences.FocusHours) != 1 || got.Preferences.FocusHours[0].Start != "10:00" {
		t.Fatalf("focus hours = %+v", got.Preferences.FocusHours)
	}
	if got.Preferences.BreakTime != "12:30" || !got.Preferences.PrioritizeUrgent {
		t.Fatalf("preferences = %+v", got.Preferences)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("auth header = %q", auth)
	}
}

func TestExtractRepairsResponse(t *testing.T) {
	t.Parallel()

	neg := -2.0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(extractResponse{
			Tasks: []wireTask{
				{Title: "  Call mom ", Priority: "URGENT", Tags: []string{" family ", ""}},
				{Title: "", Description: "untitled noise"},
				{ID: "keep-id", Title: "Pay rent", Priority: "someday", EstimatedHours: &neg},
			},
			Schedule: &wireSchedule{
				TotalEstimatedHours: 3,
				TimeBlocks: []wireTimeBlock{
					{Time: "09:00", TaskID: "keep-id"},
					{Time: "10:00", TaskID: "ghost"},
				},
			},
		})
	}))
	defer srv.Close()

	tasks, sched, err := newTestClient(srv.URL).Extract(context.Background(), "dump", defaultPrefs())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Title != "Call mom" || tasks[0].Priority != workflow.PriorityUrgent {
		t.Fatalf("task 0 = %+v", tasks[0])
	}
	if tasks[0].ID == "" {
		t.Fatal("missing id not minted")
	}
	if len(tasks[0].Tags) != 1 || tasks[0].Tags[0] != "family" {
		t.Fatalf("tags = %v", tasks[0].Tags)
	}
	if tasks[1].ID != "keep-id" || tasks[1].Priority != workflow.PriorityMedium || tasks[1].EstimatedHours != 0 {
		t.Fatalf("task 1 = %+v", tasks[1])
	}
	if len(sched.TimeBlocks) != 1 || sched.TimeBlocks[0].TaskID != "keep-id" {
		t.Fatalf("schedule blocks = %+v", sched.TimeBlocks)
	}
}

func TestExtractZeroTasksIsSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tasks":[],"schedule":null}`))
	}))
	defer srv.Close()

	tasks, sched, err := newTestClient(srv.URL).Extract(context.Background(), "mumble mumble", defaultPrefs())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(tasks) != 0 || sched != nil {
		t.Fatalf("tasks=%v sched=%v, want empty success", tasks, sched)
	}
}

func TestExtractUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad prompt", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).Extract(context.Background(), "dump", defaultPrefs())
	if !perr.IsCode(err, perr.ErrorCodeExtraction) {
		t.Fatalf("want Extraction, got %v", err)
	}
	testkit.MustContain(t, err.Error(), "bad prompt")
}

func TestExtractRetriesTransient(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if hits == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(extractResponse{Tasks: []wireTask{{Title: "Retry win"}}})
	}))
	defer srv.Close()

	tasks, _, err := newTestClient(srv.URL).Extract(context.Background(), "dump", defaultPrefs())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if hits != 2 || len(tasks) != 1 {
		t.Fatalf("hits=%d tasks=%d", hits, len(tasks))
	}
}
