package transcribe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "braindump/internal/platform/errors"
)

func TestTranscribeRoundTrip(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	var gotLang, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotLang = r.URL.Query().Get("language")
		gotCT = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"text":"  call​ mom   and pay rent "}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	text, err := c.Transcribe(context.Background(), []byte("pcm-bytes"), "en")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "call mom and pay rent" {
		t.Fatalf("transcript = %q, want normalized", text)
	}
	if string(gotBody) != "pcm-bytes" || gotLang != "en" || gotCT != "audio/webm" {
		t.Fatalf("request = (body %q, lang %q, ct %q)", gotBody, gotLang, gotCT)
	}
}

func TestTranscribeEmptyAudio(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("network hit for empty audio")
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	text, err := c.Transcribe(context.Background(), nil, "en")
	if err != nil || text != "" {
		t.Fatalf("got (%q, %v), want empty success", text, err)
	}
}

func TestTranscribeUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	_, err := c.Transcribe(context.Background(), []byte("pcm"), "en")
	if !perr.IsCode(err, perr.ErrorCodeTranscription) {
		t.Fatalf("want Transcription, got %v", err)
	}
}
