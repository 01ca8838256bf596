package voice

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	perr "braindump/internal/platform/errors"
)

type fakeRecorder struct {
	beginErr error
	endErr   error
	audio    []byte

	begins int
	ends   int
}

func (f *fakeRecorder) Begin(context.Context) error { f.begins++; return f.beginErr }
func (f *fakeRecorder) End(context.Context) ([]byte, error) {
	f.ends++
	return f.audio, f.endErr
}

type fakeTranscriber struct {
	text string
	err  error

	calls int
	got   []byte
	lang  string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio []byte, language string) (string, error) {
	f.calls++
	f.got = audio
	f.lang = language
	return f.text, f.err
}

type fakeRecognizer struct {
	beginErr error
	endErr   error

	begins int
	ends   int
	emit   func(string, bool)
}

func (f *fakeRecognizer) Begin(_ context.Context, emit func(string, bool)) error {
	f.begins++
	f.emit = emit
	return f.beginErr
}

func (f *fakeRecognizer) End(context.Context) error { f.ends++; return f.endErr }

func TestStartNoProvider(t *testing.T) {
	t.Parallel()

	a := NewAdapter(Config{Log: zerolog.Nop()})
	if err := a.Start(context.Background()); !perr.IsCode(err, perr.ErrorCodeNoProvider) {
		t.Fatalf("want NoProvider, got %v", err)
	}
}

func TestRemoteRoundTrip(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{audio: []byte("pcm")}
	tr := &fakeTranscriber{text: "call mom"}
	a := NewAdapter(Config{Log: zerolog.Nop(), Recorder: rec, Transcriber: tr, Language: "sv"})

	ctx := context.Background()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !a.Active() {
		t.Fatal("session not active after Start")
	}
	text, err := a.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if text != "call mom" {
		t.Fatalf("transcript = %q", text)
	}
	if rec.ends != 1 {
		t.Fatalf("recorder released %d times, want 1", rec.ends)
	}
	if tr.lang != "sv" || string(tr.got) != "pcm" {
		t.Fatalf("transcriber got (%q, %q)", tr.got, tr.lang)
	}
	if a.Active() {
		t.Fatal("session still active after Stop")
	}
}

func TestTranscriptionFailureStillReleases(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{audio: []byte("pcm")}
	tr := &fakeTranscriber{err: errors.New("upstream 503")}
	a := NewAdapter(Config{Log: zerolog.Nop(), Recorder: rec, Transcriber: tr})

	ctx := context.Background()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := a.Stop(ctx); !perr.IsCode(err, perr.ErrorCodeTranscription) {
		t.Fatalf("want Transcription, got %v", err)
	}
	if rec.ends != 1 {
		t.Fatalf("recorder released %d times, want 1", rec.ends)
	}

	// a second stop must not touch the provider again
	if _, err := a.Stop(ctx); err != nil {
		t.Fatalf("idle Stop: %v", err)
	}
	if rec.ends != 1 {
		t.Fatalf("recorder released %d times after double stop, want 1", rec.ends)
	}
}

func TestFallbackDemotesForGood(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{beginErr: errors.New("mic busy")}
	tr := &fakeTranscriber{}
	rz := &fakeRecognizer{}
	a := NewAdapter(Config{Log: zerolog.Nop(), Recorder: rec, Transcriber: tr, Recognizer: rz})

	ctx := context.Background()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start with fallback: %v", err)
	}
	if !a.Demoted() {
		t.Fatal("adapter not demoted after remote failure")
	}
	if rz.begins != 1 {
		t.Fatalf("recognizer started %d times, want 1", rz.begins)
	}
	if _, err := a.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if rz.ends != 1 {
		t.Fatalf("recognizer released %d times, want 1", rz.ends)
	}

	// subsequent sessions skip the remote path entirely
	if err := a.Start(ctx); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if rec.begins != 1 {
		t.Fatalf("recorder retried after demotion: %d begins", rec.begins)
	}
}

func TestBothPathsFail(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{beginErr: errors.New("mic busy")}
	rz := &fakeRecognizer{beginErr: errors.New("no speech service")}
	a := NewAdapter(Config{Log: zerolog.Nop(), Recorder: rec, Transcriber: &fakeTranscriber{}, Recognizer: rz})

	err := a.Start(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeRecordingStart) {
		t.Fatalf("want RecordingStart, got %v", err)
	}
	if a.Active() {
		t.Fatal("session open after double failure")
	}
}

func TestLocalSegmentsOnlyFinal(t *testing.T) {
	t.Parallel()

	var got []string
	rz := &fakeRecognizer{}
	a := NewAdapter(Config{
		Log:        zerolog.Nop(),
		Recognizer: rz,
		OnSegment:  func(s string) { got = append(got, s) },
	})

	ctx := context.Background()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rz.emit("call m", false)
	rz.emit("call mom", true)
	rz.emit("pay re", false)
	rz.emit("pay rent", true)
	if _, err := a.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	// segments arriving after stop are dropped
	rz.emit("straggler", true)

	if len(got) != 2 || got[0] != "call mom" || got[1] != "pay rent" {
		t.Fatalf("segments = %v", got)
	}
}

func TestDoubleStartConflicts(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	a := NewAdapter(Config{Log: zerolog.Nop(), Recorder: rec, Transcriber: &fakeTranscriber{}})
	ctx := context.Background()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := a.Start(ctx); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("want Conflict, got %v", err)
	}
	if rec.begins != 1 {
		t.Fatalf("recorder started %d times, want 1", rec.begins)
	}
}
