package service

import (
	"context"
	"sync"
	"time"

	perr "braindump/internal/platform/errors"

	"braindump/internal/core/voice"
	"braindump/internal/core/workflow"
)

// session is the per-user screen state: one workflow, one autosave
// debouncer, one voice adapter and the pending saved-confirmation timer
type session struct {
	mu sync.Mutex

	wf  *workflow.Workflow
	deb *workflow.Debouncer
	va  *voice.Adapter
	rec *chunkRecorder
	rz  *clientRecognizer

	clearTimer *time.Timer
}

// armClear schedules the review clear after the confirmation window.
// A newer arm supersedes a pending one
func (s *session) armClear(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearTimer = time.AfterFunc(d, func() { s.wf.ClearReview() })
}

// sessions is a tiny in-memory registry keyed by user id
type sessions struct {
	mu sync.Mutex
	m  map[string]*session
}

func newSessions() *sessions {
	return &sessions{m: map[string]*session{}}
}

// get returns the user's session, creating it on first touch
func (ss *sessions) get(userID string, create func() *session) *session {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if s, ok := ss.m[userID]; ok {
		return s
	}
	s := create()
	ss.m[userID] = s
	return s
}

// chunkRecorder implements voice.Recorder over client-uploaded audio chunks.
// Begin opens an empty buffer; End hands the buffer over and drops it, so
// the capture resources are released exactly once per session
type chunkRecorder struct {
	mu     sync.Mutex
	open   bool
	chunks []byte
}

func (c *chunkRecorder) Begin(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.chunks = nil
	return nil
}

func (c *chunkRecorder) Add(audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return perr.Conflictf("no recording in progress")
	}
	c.chunks = append(c.chunks, audio...)
	return nil
}

func (c *chunkRecorder) End(context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.chunks
	c.open = false
	c.chunks = nil
	return out, nil
}

// clientRecognizer implements voice.Recognizer for speech recognized on the
// client device. The server only relays segments into the session
type clientRecognizer struct {
	mu   sync.Mutex
	emit func(string, bool)
}

func (c *clientRecognizer) Begin(_ context.Context, emit func(string, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emit = emit
	return nil
}

func (c *clientRecognizer) End(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emit = nil
	return nil
}

// push relays one recognized segment into the open session, if any
func (c *clientRecognizer) push(segment string, final bool) {
	c.mu.Lock()
	emit := c.emit
	c.mu.Unlock()
	if emit != nil {
		emit(segment, final)
	}
}
