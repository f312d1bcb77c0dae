package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProxyServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()

	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	h := NewHandler(NewUpstream(up.URL, "svc-user", "svc-pass", 5*time.Second), zerolog.Nop())
	r := chi.NewRouter()
	RegisterRoutes(r, h)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestForward_RelaysBodyAndStatus(t *testing.T) {
	srv := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "svc-user", user)
		assert.Equal(t, "svc-pass", pass)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"answer": "ok"}`))
	})

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{"q": 1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer": "ok"}`, string(body))
}

func TestForward_BothRouteNames(t *testing.T) {
	srv := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": true}`))
	})

	for _, path := range []string{"/api/chat", "/api/ai/test"} {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(`{}`))
		require.NoError(t, err, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestForward_SniffsJSONContentType(t *testing.T) {
	// Upstream labels a JSON body as text; the relay serves it as JSON.
	srv := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"parsed": true}`))
	})

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

func TestForward_RawTextPassthrough(t *testing.T) {
	srv := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("plain answer, not json"))
	})

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestForward_UpstreamUnreachable(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	up.Close() // Nothing listens here anymore.

	h := NewHandler(NewUpstream(up.URL, "u", "p", time.Second), zerolog.Nop())
	r := chi.NewRouter()
	RegisterRoutes(r, h)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}
