package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/voctools/voc-console/internal/voc"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// HandleChat serves the console's chat route. The mode comes from the
// X-Task-Mode header, with the body field as fallback. Ticket replies
// go out as JSON, plain replies as text, so the caller can decode by
// content type alone.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var payload Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(payload.Content) == "" {
		http.Error(w, "missing content", http.StatusBadRequest)
		return
	}

	rawMode := r.Header.Get("X-Task-Mode")
	if rawMode == "" {
		rawMode = payload.Mode
	}
	mode := voc.ParseMode(rawMode)

	reply, err := h.svc.Handle(r.Context(), mode, payload.Content, payload.Prompt)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	switch reply.Kind {
	case voc.ReplyTicketList, voc.ReplyTicket:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply.Items)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(reply.Text))
	}
}
