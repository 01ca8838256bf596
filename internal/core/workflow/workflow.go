// Package workflow implements the capture/review/commit state machine behind
// the brain dump screen. It owns the capture buffer, the extracted task set,
// the review selection, and the commit lifecycle. All methods are safe for
// concurrent use; every mutation happens under one mutex so observers always
// see a consistent snapshot.
//
// Phases: empty -> extracting -> reviewing -> committing -> saved -> empty.
// Reviewing may loop back to extracting when the buffer is resubmitted; the
// prior task set and selection are then discarded in full, never merged.
package workflow

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	perr "braindump/internal/platform/errors"
	ptime "braindump/internal/platform/time"
)

// Phase is the coarse workflow state
type Phase string

const (
	PhaseEmpty      Phase = "empty"
	PhaseExtracting Phase = "extracting"
	PhaseReviewing  Phase = "reviewing"
	PhaseCommitting Phase = "committing"
	PhaseSaved      Phase = "saved"
)

// Priority of an extracted task
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority folds unknown inputs to medium rather than failing;
// extraction responses are not trusted to stick to the enum
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityUrgent:
		return PriorityUrgent
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task is one candidate task produced by extraction.
// Title, Description, Priority and EstimatedHours are editable inline
type Task struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Priority        Priority `json:"priority"`
	EstimatedHours  float64  `json:"estimated_hours"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	MicroTasks      []string `json:"micro_tasks"`
	OptimalTimeSlot string   `json:"optimal_time_slot,omitempty"`
	EnergyLevel     string   `json:"energy_level,omitempty"`
	FocusType       string   `json:"focus_type,omitempty"`
	SuggestedDay    string   `json:"suggested_day,omitempty"`
}

// TimeBlock assigns a task to a slot in the daily schedule
type TimeBlock struct {
	Time      string `json:"time"`
	TaskID    string `json:"task_id"`
	Rationale string `json:"rationale"`
}

// Schedule is the read-only summary produced alongside extraction.
// It is discarded together with the task set
type Schedule struct {
	TotalEstimatedHours float64     `json:"total_estimated_hours"`
	WorkloadAssessment  string      `json:"workload_assessment"`
	RecommendedOrder    []string    `json:"recommended_order"`
	TimeBlocks          []TimeBlock `json:"time_blocks"`
}

// Field names an editable task field
type Field string

const (
	FieldTitle          Field = "title"
	FieldDescription    Field = "description"
	FieldPriority       Field = "priority"
	FieldEstimatedHours Field = "estimated_hours"
)

// Clock lets tests control time
type Clock func() time.Time

// Workflow is one capture/review/commit instance. The host owns exactly one
// per screen/session; nothing here is shared across users
type Workflow struct {
	mu  sync.Mutex
	now Clock

	text        string
	lastSavedAt time.Time

	phase    Phase
	tasks    []Task
	selected map[string]struct{}
	editing  string
	schedule *Schedule

	seq        uint64 // last issued extraction sequence
	applied    uint64 // highest extraction sequence applied or failed
	extracting bool
	committing bool
	savedAt    time.Time
}

// Option mutates a Workflow during New
type Option func(*Workflow)

// WithClock injects a clock, for tests
func WithClock(c Clock) Option {
	return func(w *Workflow) { w.now = c }
}

// New creates an empty workflow
func New(opts ...Option) *Workflow {
	w := &Workflow{
		now:      time.Now,
		phase:    PhaseEmpty,
		selected: map[string]struct{}{},
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Buffer operations

// TypeText replaces the buffer with a keyboard edit.
// returns true when the buffer is non-empty so the host can arm the autosave debouncer
func (w *Workflow) TypeText(s string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.text = s
	return strings.TrimSpace(s) != ""
}

// AppendTranscript appends a finalized voice segment to the buffer.
// segments are separated by a single space; blank segments are dropped
func (w *Workflow) AppendTranscript(seg string) bool {
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.text == "" {
		w.text = seg
	} else {
		w.text = strings.TrimRight(w.text, " ") + " " + seg
	}
	return true
}

// MarkSaved stamps the autosave timestamp. The host calls this from its
// debouncer; the stamp is skipped when the buffer emptied in the meantime
func (w *Workflow) MarkSaved() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if strings.TrimSpace(w.text) == "" {
		return
	}
	w.lastSavedAt = w.now()
}

// Text returns the current buffer content
func (w *Workflow) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.text
}

// LastSavedAt returns the autosave timestamp; zero means never saved
func (w *Workflow) LastSavedAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSavedAt
}

// Extraction lifecycle

// BeginExtraction snapshots the buffer and issues a new sequence number.
// The buffer itself stays editable while the request is in flight
func (w *Workflow) BeginExtraction() (seq uint64, content string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	content = w.text
	if strings.TrimSpace(content) == "" {
		return 0, "", perr.EmptyInputf("nothing to extract: the capture buffer is empty")
	}
	w.seq++
	w.extracting = true
	w.phase = PhaseExtracting
	return w.seq, content, nil
}

// ApplyExtraction installs a completed extraction. Only the response for the
// newest issued request is applied; late responses for superseded requests
// report false and change nothing. A successful apply replaces the task set
// and schedule wholesale and selects every task (opt-out model)
func (w *Workflow) ApplyExtraction(seq uint64, tasks []Task, schedule *Schedule) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stale(seq) {
		return false
	}
	w.applied = seq
	w.extracting = false

	w.tasks = append([]Task(nil), tasks...)
	w.schedule = schedule
	w.editing = ""
	w.selected = make(map[string]struct{}, len(w.tasks))
	for _, t := range w.tasks {
		w.selected[t.ID] = struct{}{}
	}
	w.phase = PhaseReviewing
	return true
}

// FailExtraction records a failed extraction. The buffer is untouched so the
// user can retry; a prior reviewable task set, if any, stays on screen
func (w *Workflow) FailExtraction(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stale(seq) {
		return false
	}
	w.applied = seq
	w.extracting = false
	if len(w.tasks) > 0 {
		w.phase = PhaseReviewing
	} else {
		w.phase = PhaseEmpty
	}
	return true
}

// stale reports whether a completion for seq must be discarded.
// Callers hold w.mu
func (w *Workflow) stale(seq uint64) bool {
	return seq < w.seq || seq <= w.applied
}

// Commit lifecycle

// Payload is the outbound commit request snapshot
type Payload struct {
	Identity string
	Tasks    []Task
	Schedule *Schedule
	Content  string
}

// BeginCommit snapshots the selected subset for submission.
// Fails when nothing is selected or no identity is available; fails with a
// conflict when a commit is already in flight (one attempt per user action)
func (w *Workflow) BeginCommit(identity string) (Payload, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if strings.TrimSpace(identity) == "" || len(w.selected) == 0 {
		return Payload{}, perr.NothingSelectedf("select at least one task before saving")
	}
	if w.committing {
		return Payload{}, perr.Conflictf("a save is already in progress")
	}
	picked := make([]Task, 0, len(w.selected))
	for _, t := range w.tasks {
		if _, ok := w.selected[t.ID]; ok {
			picked = append(picked, t)
		}
	}
	w.committing = true
	w.phase = PhaseCommitting
	return Payload{
		Identity: identity,
		Tasks:    picked,
		Schedule: w.schedule,
		Content:  w.text,
	}, nil
}

// CommitSucceeded marks the workflow saved and returns the saved-at stamp.
// The host arms the confirmation window and calls ClearReview when it elapses
func (w *Workflow) CommitSucceeded() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.committing = false
	w.phase = PhaseSaved
	w.savedAt = w.now()
	return w.savedAt
}

// CommitFailed returns to reviewing with all state intact so the user can
// retry without re-running extraction
func (w *Workflow) CommitFailed() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.committing = false
	w.phase = PhaseReviewing
}

// ClearReview empties the task set, selection and schedule after the
// confirmation window. The capture buffer is deliberately left alone.
// No-op unless the workflow is still in the saved phase
func (w *Workflow) ClearReview() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseSaved {
		return false
	}
	w.tasks = nil
	w.selected = map[string]struct{}{}
	w.schedule = nil
	w.editing = ""
	w.phase = PhaseEmpty
	return true
}

// Snapshots

// State is a JSON-friendly snapshot of the workflow
type State struct {
	Phase       Phase      `json:"phase"`
	Text        string     `json:"text"`
	LastSavedAt *time.Time `json:"last_saved_at,omitempty"`
	Tasks       []Task     `json:"tasks"`
	Selected    []string   `json:"selected"`
	Editing     string     `json:"editing,omitempty"`
	Schedule    *Schedule  `json:"schedule,omitempty"`
	SavedAt     *time.Time `json:"saved_at,omitempty"`
}

// Snapshot returns a consistent copy of the whole workflow state
func (w *Workflow) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := State{
		Phase:    w.phase,
		Text:     w.text,
		Tasks:    append([]Task(nil), w.tasks...),
		Selected: w.selectedIDsLocked(),
		Editing:  w.editing,
		Schedule: w.schedule,
	}
	st.LastSavedAt = ptime.Ptr(w.lastSavedAt)
	st.SavedAt = ptime.Ptr(w.savedAt)
	return st
}

// selectedIDsLocked returns selected ids in task order, then any strays sorted.
// Callers hold w.mu
func (w *Workflow) selectedIDsLocked() []string {
	out := make([]string, 0, len(w.selected))
	seen := make(map[string]struct{}, len(w.selected))
	for _, t := range w.tasks {
		if _, ok := w.selected[t.ID]; ok {
			out = append(out, t.ID)
			seen[t.ID] = struct{}{}
		}
	}
	var strays []string
	for id := range w.selected {
		if _, ok := seen[id]; !ok {
			strays = append(strays, id)
		}
	}
	sort.Strings(strays)
	return append(out, strays...)
}

// coerceHours parses an estimated-hours input, folding negative and
// non-numeric values to zero instead of rejecting them
func coerceHours(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
