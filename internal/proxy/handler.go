package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	upstream *Upstream
	log      zerolog.Logger
}

func NewHandler(upstream *Upstream, log zerolog.Logger) *Handler {
	return &Handler{upstream: upstream, log: log}
}

// Forward relays the request body to the AI upstream and the upstream
// answer back to the caller, status code included. The body passes
// through untouched; only the content type is resniffed so that a
// JSON-shaped answer is served as JSON even when the upstream labels
// it as text.
func (h *Handler) Forward(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	result, err := h.upstream.Forward(r.Context(), body)
	if err != nil {
		h.log.Error().
			Str("request_id", requestID).
			Str("path", r.URL.Path).
			Err(err).
			Msg("upstream unreachable")
		writeError(w, http.StatusBadGateway, "upstream unreachable: "+err.Error())
		return
	}

	h.log.Info().
		Str("request_id", requestID).
		Str("path", r.URL.Path).
		Int("upstream_status", result.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("forwarded")

	contentType := result.ContentType
	if json.Valid(result.Body) {
		contentType = "application/json"
	} else if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(result.StatusCode)
	w.Write(result.Body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
