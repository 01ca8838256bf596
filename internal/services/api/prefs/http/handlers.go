// Package http provides HTTP transport for the preferences API
package http

import (
	stdhttp "net/http"

	"braindump/internal/modkit/httpkit"
	"braindump/internal/services/api/prefs/domain"
)

// Register mounts preferences endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.get)
	httpkit.PutJSON[domain.UpdateInput](r, "/", h.update)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.MustUser(r))
}

func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.MustUser(r), in)
}
