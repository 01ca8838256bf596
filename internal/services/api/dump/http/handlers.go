// Package http provides HTTP transport for the brain dump screen
package http

import (
	"io"
	stdhttp "net/http"

	"braindump/internal/modkit/httpkit"
	perr "braindump/internal/platform/errors"
	"braindump/internal/services/api/dump/domain"
)

// maxChunkBytes caps one uploaded audio chunk
const maxChunkBytes = 4 << 20

// Register mounts dump endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/state", h.state)
	httpkit.PostJSON[domain.TextInput](r, "/text", h.text)

	httpkit.Post(r, "/voice/start", h.voiceStart)
	r.Post("/voice/chunk", httpkit.Handle(h.voiceChunk))
	httpkit.PostJSON[domain.SegmentInput](r, "/voice/segment", h.voiceSegment)
	httpkit.Post(r, "/voice/stop", h.voiceStop)

	httpkit.Post(r, "/extract", h.extract)

	httpkit.PostJSON[domain.ToggleInput](r, "/review/toggle", h.toggle)
	httpkit.Post(r, "/review/toggle-all", h.toggleAll)
	httpkit.PostJSON[domain.EditOpenInput](r, "/review/edit/open", h.editOpen)
	httpkit.Post(r, "/review/edit/close", h.editClose)
	httpkit.PostJSON[domain.EditFieldInput](r, "/review/edit/field", h.editField)

	httpkit.Post(r, "/commit", h.commit)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) state(r *stdhttp.Request) (any, error) {
	return h.svc.State(r.Context(), httpkit.MustUser(r))
}

func (h *handlers) text(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.TypeText(r.Context(), httpkit.MustUser(r), in.Text)
}

func (h *handlers) voiceStart(r *stdhttp.Request) (any, error) {
	return h.svc.VoiceStart(r.Context(), httpkit.MustUser(r))
}

// voiceChunk takes the raw audio body as-is, no JSON envelope on the way in
func (h *handlers) voiceChunk(r *stdhttp.Request) httpkit.Response {
	audio, err := io.ReadAll(io.LimitReader(r.Body, maxChunkBytes))
	if err != nil {
		return httpkit.Error(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "reading audio chunk failed"))
	}
	if err := h.svc.VoiceChunk(r.Context(), httpkit.MustUser(r), audio); err != nil {
		return httpkit.Error(err)
	}
	return httpkit.NoContent()
}

func (h *handlers) voiceSegment(r *stdhttp.Request, in domain.SegmentInput) (any, error) {
	return h.svc.VoiceSegment(r.Context(), httpkit.MustUser(r), in.Segment, in.Final)
}

func (h *handlers) voiceStop(r *stdhttp.Request) (any, error) {
	return h.svc.VoiceStop(r.Context(), httpkit.MustUser(r))
}

func (h *handlers) extract(r *stdhttp.Request) (any, error) {
	return h.svc.Extract(r.Context(), httpkit.MustUser(r))
}

func (h *handlers) toggle(r *stdhttp.Request, in domain.ToggleInput) (any, error) {
	return h.svc.Toggle(r.Context(), httpkit.MustUser(r), in.TaskID)
}

func (h *handlers) toggleAll(r *stdhttp.Request) (any, error) {
	return h.svc.ToggleAll(r.Context(), httpkit.MustUser(r))
}

func (h *handlers) editOpen(r *stdhttp.Request, in domain.EditOpenInput) (any, error) {
	return h.svc.EditOpen(r.Context(), httpkit.MustUser(r), in.TaskID)
}

func (h *handlers) editClose(r *stdhttp.Request) (any, error) {
	return h.svc.EditClose(r.Context(), httpkit.MustUser(r))
}

func (h *handlers) editField(r *stdhttp.Request, in domain.EditFieldInput) (any, error) {
	return h.svc.EditField(r.Context(), httpkit.MustUser(r), in.TaskID, in.Field, in.Value)
}

func (h *handlers) commit(r *stdhttp.Request) (any, error) {
	return h.svc.Commit(r.Context(), httpkit.MustUser(r))
}
