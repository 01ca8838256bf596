// Package service hosts the capture/review/commit workflow behind the brain
// dump screen. Each user gets one in-memory session holding the workflow,
// its autosave debouncer and the voice capture adapter
package service

import (
	"context"
	"time"

	perr "braindump/internal/platform/errors"
	"braindump/internal/platform/logger"
	"braindump/internal/platform/store"

	"braindump/internal/core/voice"
	"braindump/internal/core/workflow"
	"braindump/internal/services/api/dump/domain"
)

const (
	defaultAutosaveAfter = 2 * time.Second
	defaultClearAfter    = 3 * time.Second
)

// Options configures the Service
type Options struct {
	// Transcriber powers the remote voice path; nil disables it
	Transcriber voice.Transcriber

	// LocalRecognition enables the client-recognized fallback path
	LocalRecognition bool

	// Language passed to the transcriber
	Language string

	// AutosaveAfter is the buffer debounce interval
	AutosaveAfter time.Duration

	// ClearAfter is the saved-confirmation window before the review
	// state is cleared
	ClearAfter time.Duration
}

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	log       logger.Logger
	extractor domain.Extractor
	committer domain.Committer
	prefs     domain.PrefsReader
	ch        store.Clickhouse

	opts Options
	ss   *sessions
}

// New constructs a dump service
func New(extractor domain.Extractor, committer domain.Committer, prefs domain.PrefsReader, ch store.Clickhouse, opts Options) *Service {
	if extractor == nil {
		panic("dump.Service requires a non-nil Extractor")
	}
	if committer == nil {
		panic("dump.Service requires a non-nil Committer")
	}
	if prefs == nil {
		panic("dump.Service requires a non-nil PrefsReader")
	}
	if opts.AutosaveAfter <= 0 {
		opts.AutosaveAfter = defaultAutosaveAfter
	}
	if opts.ClearAfter <= 0 {
		opts.ClearAfter = defaultClearAfter
	}
	return &Service{
		log:       *logger.Named("dump"),
		extractor: extractor,
		committer: committer,
		prefs:     prefs,
		ch:        ch,
		opts:      opts,
		ss:        newSessions(),
	}
}

// session returns the user's session, creating workflow and voice adapter
// on first touch
func (s *Service) session(userID string) *session {
	return s.ss.get(userID, func() *session {
		sn := &session{
			wf:  workflow.New(),
			rec: &chunkRecorder{},
		}
		sn.deb = workflow.NewDebouncer(s.opts.AutosaveAfter, sn.wf.MarkSaved)
		cfg := voice.Config{
			Log:       s.log,
			Language:  s.opts.Language,
			OnSegment: func(seg string) { s.appendSegment(sn, seg) },
		}
		if s.opts.Transcriber != nil {
			cfg.Recorder = sn.rec
			cfg.Transcriber = s.opts.Transcriber
		}
		if s.opts.LocalRecognition {
			sn.rz = &clientRecognizer{}
			cfg.Recognizer = sn.rz
		}
		sn.va = voice.NewAdapter(cfg)
		return sn
	})
}

// appendSegment lands a settled voice segment in the buffer and treats it
// like any other edit for autosave purposes
func (s *Service) appendSegment(sn *session, seg string) {
	if sn.wf.AppendTranscript(seg) {
		sn.deb.Arm()
	}
}

func (s *Service) state(sn *session) domain.State {
	return domain.State{
		State: sn.wf.Snapshot(),
		Voice: domain.VoiceState{
			Active:  sn.va.Active(),
			Demoted: sn.va.Demoted(),
		},
	}
}

// State returns the current screen state
func (s *Service) State(_ context.Context, userID string) (domain.State, error) {
	return s.state(s.session(userID)), nil
}

// TypeText replaces the buffer and arms the autosave debouncer. Emptying the
// buffer disarms it; there is nothing worth stamping
func (s *Service) TypeText(_ context.Context, userID, text string) (domain.State, error) {
	sn := s.session(userID)
	if sn.wf.TypeText(text) {
		sn.deb.Arm()
	} else {
		sn.deb.Stop()
	}
	return s.state(sn), nil
}

// VoiceStart opens a capture session
func (s *Service) VoiceStart(ctx context.Context, userID string) (domain.State, error) {
	sn := s.session(userID)
	if err := sn.va.Start(ctx); err != nil {
		s.emit(userID, "voice_start_failed", perr.Root(err).Error())
		return s.state(sn), err
	}
	s.emit(userID, "voice_started", "")
	return s.state(sn), nil
}

// VoiceChunk buffers uploaded audio for the remote transcription path
func (s *Service) VoiceChunk(_ context.Context, userID string, audio []byte) error {
	return s.session(userID).rec.Add(audio)
}

// VoiceSegment relays a segment recognized on the client device. Only
// settled segments reach the buffer; interim hypotheses are dropped
func (s *Service) VoiceSegment(_ context.Context, userID, segment string, final bool) (domain.State, error) {
	sn := s.session(userID)
	if sn.rz == nil {
		return s.state(sn), perr.NoProviderf("local recognition is not enabled")
	}
	sn.rz.push(segment, final)
	return s.state(sn), nil
}

// VoiceStop closes the capture session. On the remote path the transcript
// comes back here and lands in the buffer; a transcription failure leaves
// the buffer untouched but the session is torn down either way
func (s *Service) VoiceStop(ctx context.Context, userID string) (domain.State, error) {
	sn := s.session(userID)
	text, err := sn.va.Stop(ctx)
	if err != nil {
		s.emit(userID, "voice_stop_failed", perr.Root(err).Error())
		return s.state(sn), err
	}
	if text != "" {
		s.appendSegment(sn, text)
	}
	s.emit(userID, "voice_stopped", "")
	return s.state(sn), nil
}

// Extract snapshots the buffer and runs extraction. Responses for
// superseded requests are discarded; only the newest one wins
func (s *Service) Extract(ctx context.Context, userID string) (domain.State, error) {
	sn := s.session(userID)
	seq, content, err := sn.wf.BeginExtraction()
	if err != nil {
		return s.state(sn), err
	}

	prefs, err := s.prefs.Preferences(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Msg("preferences lookup failed, extracting with defaults")
	}

	tasks, sched, err := s.extractor.Extract(ctx, content, prefs)
	if err != nil {
		sn.wf.FailExtraction(seq)
		s.emit(userID, "extract_failed", perr.Root(err).Error())
		return s.state(sn), err
	}
	if sn.wf.ApplyExtraction(seq, tasks, sched) {
		s.emit(userID, "extracted", "")
	}
	return s.state(sn), nil
}

// Toggle flips one task's selection
func (s *Service) Toggle(_ context.Context, userID, taskID string) (domain.State, error) {
	sn := s.session(userID)
	sn.wf.Toggle(taskID)
	return s.state(sn), nil
}

// ToggleAll collapses a partial selection to all, or all to none
func (s *Service) ToggleAll(_ context.Context, userID string) (domain.State, error) {
	sn := s.session(userID)
	sn.wf.ToggleAll()
	return s.state(sn), nil
}

// EditOpen opens inline editing for one task
func (s *Service) EditOpen(_ context.Context, userID, taskID string) (domain.State, error) {
	sn := s.session(userID)
	if !sn.wf.StartEdit(taskID) {
		return s.state(sn), perr.NotFoundf("no task %s in the current review set", taskID)
	}
	return s.state(sn), nil
}

// EditClose closes inline editing, keeping the edits made so far
func (s *Service) EditClose(_ context.Context, userID string) (domain.State, error) {
	sn := s.session(userID)
	sn.wf.StopEdit()
	return s.state(sn), nil
}

// EditField applies one field edit
func (s *Service) EditField(_ context.Context, userID, taskID, field, value string) (domain.State, error) {
	sn := s.session(userID)
	if !sn.wf.EditField(taskID, workflow.Field(field), value) {
		return s.state(sn), perr.NotFoundf("no task %s in the current review set", taskID)
	}
	return s.state(sn), nil
}

// Commit persists the selected subset. On success the review state is
// cleared after the confirmation window; the buffer always survives.
// On failure everything stays put for a retry
func (s *Service) Commit(ctx context.Context, userID string) (domain.CommitResult, error) {
	sn := s.session(userID)
	payload, err := sn.wf.BeginCommit(userID)
	if err != nil {
		return domain.CommitResult{}, err
	}

	dumpID, err := s.committer.Commit(ctx, payload.Identity, payload.Content, payload.Tasks, payload.Schedule)
	if err != nil {
		sn.wf.CommitFailed()
		s.emit(userID, "commit_failed", perr.Root(err).Error())
		return domain.CommitResult{}, perr.Wrapf(err, perr.ErrorCodeCommit, "save failed, your tasks are still here")
	}

	savedAt := sn.wf.CommitSucceeded()
	sn.armClear(s.opts.ClearAfter)
	s.emit(userID, "committed", dumpID)
	return domain.CommitResult{
		DumpID:  dumpID,
		SavedAt: savedAt,
		Saved:   len(payload.Tasks),
	}, nil
}
