// Package voice manages a microphone capture session with two providers: a
// remote transcription path (record audio, transcribe on stop) and a local
// recognition path (on-device, streaming segments). The remote path is
// preferred; when it fails to start the session demotes to local for the
// rest of the adapter's lifetime. Whatever happens on stop, the microphone
// is released exactly once per started session.
package voice

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	perr "braindump/internal/platform/errors"
)

// Recorder captures raw audio for remote transcription. End returns the
// captured bytes and releases the capture device; it must release even when
// it returns an error. A failed Begin must not hold the device
type Recorder interface {
	Begin(ctx context.Context) error
	End(ctx context.Context) ([]byte, error)
}

// Transcriber turns captured audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Recognizer performs on-device speech recognition, pushing hypotheses to
// emit as they form. final reports whether the segment is settled; interim
// hypotheses may be revised and must not be accumulated. End releases the
// capture device, error or not
type Recognizer interface {
	Begin(ctx context.Context, emit func(segment string, final bool)) error
	End(ctx context.Context) error
}

type mode int

const (
	modeIdle mode = iota
	modeRemote
	modeLocal
)

// Adapter is one capture session owner. It is safe for concurrent use
type Adapter struct {
	mu sync.Mutex

	log         zerolog.Logger
	recorder    Recorder
	transcriber Transcriber
	recognizer  Recognizer
	language    string

	active  mode
	demoted bool
	segment func(string)
}

// Config wires an Adapter. Recorder and Transcriber come and go together;
// Recognizer is optional. Language defaults to "en"
type Config struct {
	Log         zerolog.Logger
	Recorder    Recorder
	Transcriber Transcriber
	Recognizer  Recognizer
	Language    string

	// OnSegment receives settled local-recognition segments
	OnSegment func(segment string)
}

// NewAdapter builds an Adapter from cfg
func NewAdapter(cfg Config) *Adapter {
	lang := strings.TrimSpace(cfg.Language)
	if lang == "" {
		lang = "en"
	}
	seg := cfg.OnSegment
	if seg == nil {
		seg = func(string) {}
	}
	return &Adapter{
		log:         cfg.Log,
		recorder:    cfg.Recorder,
		transcriber: cfg.Transcriber,
		recognizer:  cfg.Recognizer,
		language:    lang,
		segment:     seg,
	}
}

// remoteReady reports whether the remote path is usable. Callers hold a.mu
func (a *Adapter) remoteReady() bool {
	return a.recorder != nil && a.transcriber != nil && !a.demoted
}

// Start opens a capture session. The remote path is tried first; if it fails
// to start, the adapter demotes to local recognition and retries once. When
// even that fails the session is left closed and the error surfaces.
// Starting an already-open session is a conflict
func (a *Adapter) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active != modeIdle {
		return perr.Conflictf("capture session already open")
	}
	if !a.remoteReady() && a.recognizer == nil {
		return perr.NoProviderf("no capture provider is configured")
	}

	if a.remoteReady() {
		err := a.recorder.Begin(ctx)
		if err == nil {
			a.active = modeRemote
			return nil
		}
		a.demoted = true
		if a.recognizer == nil {
			return perr.RecordingStartf("recording failed to start: %v", err)
		}
		a.log.Warn().Err(err).Msg("remote recorder failed to start, falling back to local recognition")
	}

	if err := a.recognizer.Begin(ctx, a.onSegment); err != nil {
		return perr.RecordingStartf("recording failed to start: %v", err)
	}
	a.active = modeLocal
	return nil
}

// onSegment forwards settled segments while a local session is open.
// Interim hypotheses and segments arriving after stop are dropped
func (a *Adapter) onSegment(seg string, final bool) {
	if !final {
		return
	}
	a.mu.Lock()
	open := a.active == modeLocal
	a.mu.Unlock()
	if open {
		a.segment(seg)
	}
}

// Stop closes the session. The provider's End runs exactly once per started
// session and always before any transcription work, so the microphone is
// released even when transcription fails. For the remote path the transcript
// comes back here; local segments were already streamed via OnSegment.
// Stopping an idle adapter is a no-op
func (a *Adapter) Stop(ctx context.Context) (string, error) {
	a.mu.Lock()
	m := a.active
	a.active = modeIdle
	a.mu.Unlock()

	switch m {
	case modeRemote:
		audio, err := a.recorder.End(ctx)
		if err != nil {
			return "", perr.RecordingStartf("recording did not stop cleanly: %v", err)
		}
		text, err := a.transcriber.Transcribe(ctx, audio, a.language)
		if err != nil {
			return "", perr.Transcriptionf("transcription failed: %v", err)
		}
		return text, nil
	case modeLocal:
		if err := a.recognizer.End(ctx); err != nil {
			return "", perr.RecordingStartf("recognition did not stop cleanly: %v", err)
		}
		return "", nil
	default:
		return "", nil
	}
}

// Active reports whether a capture session is open
func (a *Adapter) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active != modeIdle
}

// Demoted reports whether the adapter has fallen back to local recognition
func (a *Adapter) Demoted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.demoted
}
