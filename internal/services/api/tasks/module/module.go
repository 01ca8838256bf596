// Package module wires the committed tasks API into HTTP via modkit
package module

import (
	"net/http"

	"braindump/internal/modkit"
	"braindump/internal/modkit/httpkit"
	"braindump/internal/services/api/tasks/domain"

	taskshttp "braindump/internal/services/api/tasks/http"
	"braindump/internal/services/api/tasks/repo"
	"braindump/internal/services/api/tasks/service"
)

// Ports exposes the service port for cross-module lookups.
// the dump module commits through this port
type Ports struct {
	Service domain.ServicePort
}

// Module implements the tasks module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Service
}

// New constructs the tasks module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("tasks"), modkit.WithPrefix("/tasks")}, opts...)...)

	svc := service.New(deps.PG, repo.NewPG())

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		taskshttp.Register(r, m.svc)
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
