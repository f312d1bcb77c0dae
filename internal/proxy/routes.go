package proxy

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the forwarder under both route names the
// original clients used. The duplicate name was never reconciled
// upstream, so both stay valid and hit the same handler.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/chat", h.Forward)
	r.Post("/api/ai/test", h.Forward)
}
