// Package module wires the brain dump screen into HTTP via modkit
package module

import (
	"context"
	"net/http"

	"braindump/internal/modkit"
	"braindump/internal/modkit/httpkit"

	"braindump/internal/adapters/extract"
	"braindump/internal/adapters/transcribe"
	"braindump/internal/core/voice"

	"braindump/internal/services/api/dump/domain"
	dumphttp "braindump/internal/services/api/dump/http"
	"braindump/internal/services/api/dump/service"

	prefsdomain "braindump/internal/services/api/prefs/domain"
)

// Ports exposes the service port plus the collaborators injected by the
// api wiring
type Ports struct {
	Service domain.ServicePort

	// Committer comes from the tasks module
	Committer domain.Committer

	// Prefs comes from the prefs module
	Prefs prefsdomain.ServicePort
}

// Module implements the dump module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Service
}

// New constructs the dump module. The Committer and Prefs ports must be
// injected via modkit.WithPorts
func New(deps modkit.Deps, opts Options, mopts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dump"), modkit.WithPrefix("/dump")}, mopts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Committer == nil || ports.Prefs == nil {
		panic("dump module requires Committer and Prefs ports")
	}

	extractor := extract.NewClient(extract.Options{
		BaseURL: opts.ExtractBaseURL,
		APIKey:  opts.ExtractAPIKey,
	})

	var transcriber voice.Transcriber
	if opts.TranscribeBaseURL != "" {
		transcriber = transcribe.NewClient(transcribe.Options{
			BaseURL: opts.TranscribeBaseURL,
			APIKey:  opts.TranscribeAPIKey,
		})
	}

	svc := service.New(extractor, ports.Committer, prefsReader{ports.Prefs}, deps.CH, service.Options{
		Transcriber:      transcriber,
		LocalRecognition: opts.LocalRecognition,
		Language:         opts.Language,
		AutosaveAfter:    opts.AutosaveAfter,
		ClearAfter:       opts.ClearAfter,
	})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Service: svc, Committer: ports.Committer, Prefs: ports.Prefs}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dumphttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// prefsReader adapts the prefs service port to the extraction preferences shape
type prefsReader struct {
	svc prefsdomain.ServicePort
}

func (p prefsReader) Preferences(ctx context.Context, userID string) (extract.Preferences, error) {
	got, err := p.svc.Get(ctx, userID)
	if err != nil {
		d := prefsdomain.Defaults(userID)
		return toExtractPrefs(d), err
	}
	return toExtractPrefs(got), nil
}

func toExtractPrefs(p prefsdomain.Preferences) extract.Preferences {
	focus := make([]extract.TimeRange, 0, len(p.FocusHours))
	for _, f := range p.FocusHours {
		focus = append(focus, extract.TimeRange{Start: f.Start, End: f.End})
	}
	return extract.Preferences{
		WorkStartTime:    p.WorkStartTime,
		WorkEndTime:      p.WorkEndTime,
		FocusHours:       focus,
		BreakDuration:    p.BreakDuration,
		BreakTime:        p.BreakTime,
		MaxTasksPerDay:   p.MaxTasksPerDay,
		PrioritizeUrgent: p.PrioritizeUrgent,
		SchedulingStyle:  p.SchedulingStyle,
		Timezone:         p.Timezone,
	}
}
