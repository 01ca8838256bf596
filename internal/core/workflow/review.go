package workflow

import "strings"

// Toggle flips the selection state of one task. Unknown ids are ignored
// without error so a stale click after a re-extraction cannot corrupt state
func (w *Workflow) Toggle(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.hasTaskLocked(id) {
		return
	}
	if _, ok := w.selected[id]; ok {
		delete(w.selected, id)
	} else {
		w.selected[id] = struct{}{}
	}
}

// ToggleAll collapses any partial selection: if every task is selected it
// clears the selection, otherwise it selects everything
func (w *Workflow) ToggleAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.selected) == len(w.tasks) && len(w.tasks) > 0 {
		w.selected = map[string]struct{}{}
		return
	}
	w.selected = make(map[string]struct{}, len(w.tasks))
	for _, t := range w.tasks {
		w.selected[t.ID] = struct{}{}
	}
}

// Selected reports whether the task is currently selected
func (w *Workflow) IsSelected(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.selected[id]
	return ok
}

// SelectedIDs returns the selected task ids in task order
func (w *Workflow) SelectedIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedIDsLocked()
}

// Tasks returns a copy of the current task set
func (w *Workflow) Tasks() []Task {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Task(nil), w.tasks...)
}

// StartEdit opens inline editing for one task. Opening another task closes
// the first; edits made so far are kept, there is no revert path
func (w *Workflow) StartEdit(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.hasTaskLocked(id) {
		return false
	}
	w.editing = id
	return true
}

// StopEdit closes inline editing. Field edits already applied are retained
func (w *Workflow) StopEdit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.editing = ""
}

// Editing returns the id of the task currently open for editing, if any
func (w *Workflow) Editing() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editing
}

// EditField applies one inline field edit. Priority inputs fold to the enum,
// estimated hours fold to a non-negative number, and unknown fields or ids
// are rejected. Edits apply immediately; closing the editor does not undo them
func (w *Workflow) EditField(id string, f Field, value string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.tasks {
		if w.tasks[i].ID != id {
			continue
		}
		switch f {
		case FieldTitle:
			w.tasks[i].Title = value
		case FieldDescription:
			w.tasks[i].Description = value
		case FieldPriority:
			w.tasks[i].Priority = ParsePriority(value)
		case FieldEstimatedHours:
			w.tasks[i].EstimatedHours = coerceHours(value)
		default:
			return false
		}
		return true
	}
	return false
}

// hasTaskLocked reports whether id names a task in the current set.
// Callers hold w.mu
func (w *Workflow) hasTaskLocked(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	for _, t := range w.tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
