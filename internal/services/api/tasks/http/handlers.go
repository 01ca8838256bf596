// Package http provides HTTP transport for the committed tasks API
package http

import (
	stdhttp "net/http"
	"strconv"

	"braindump/internal/modkit/httpkit"
	"braindump/internal/services/api/tasks/domain"
)

// Register mounts task endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/dumps", h.listDumps)
	httpkit.Get(r, "/dumps/{id}", h.getDump)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) listDumps(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return h.svc.ListDumps(r.Context(), httpkit.MustUser(r), limit)
}

func (h *handlers) getDump(r *stdhttp.Request) (any, error) {
	return h.svc.GetDump(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id"))
}
