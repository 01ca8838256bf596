package module

import (
	"time"

	"braindump/internal/platform/config"
)

// Options configure the dump module collaborators
type Options struct {
	ExtractBaseURL string
	ExtractAPIKey  string

	TranscribeBaseURL string
	TranscribeAPIKey  string

	Language         string
	LocalRecognition bool

	AutosaveAfter time.Duration
	ClearAfter    time.Duration
}

// FromConfig reads the module options from the DUMP_ config namespace.
// The extraction endpoint is required; transcription is optional and its
// absence simply disables the remote voice path
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DUMP_")
	return Options{
		ExtractBaseURL:    c.MustString("EXTRACT_URL"),
		ExtractAPIKey:     c.MayString("EXTRACT_API_KEY", ""),
		TranscribeBaseURL: c.MayString("TRANSCRIBE_URL", ""),
		TranscribeAPIKey:  c.MayString("TRANSCRIBE_API_KEY", ""),
		Language:          c.MayString("LANGUAGE", "en"),
		LocalRecognition:  c.MayBool("LOCAL_RECOGNITION", true),
		AutosaveAfter:     c.MayDuration("AUTOSAVE_AFTER", 2*time.Second),
		ClearAfter:        c.MayDuration("CLEAR_AFTER", 3*time.Second),
	}
}
