package console

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voctools/voc-console/internal/voc"
)

func newChatClient(t *testing.T, handler http.HandlerFunc) *ChatClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChatClient(srv.URL+"/api/voc/chat", 5*time.Second)
}

func TestChatClient_SendsModeHeaderAndBody(t *testing.T) {
	c := newChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "QUERY_LIST", r.Header.Get("X-Task-Mode"))

		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "최근 VOC", req.Content)
		assert.Equal(t, "QUERY_LIST", req.Mode)
		assert.NotEmpty(t, req.Prompt)

		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	_, err := c.Send(context.Background(), voc.ModeQueryList, "최근 VOC", "system prompt")
	require.NoError(t, err)
}

func TestChatClient_JSONReplyIsClassified(t *testing.T) {
	c := newChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"voc_id": 1, "title": "t"}, {"voc_id": 2, "title": "u"}]`))
	})

	reply, err := c.Send(context.Background(), voc.ModeQueryList, "q", "p")

	require.NoError(t, err)
	assert.Equal(t, voc.ReplyTicketList, reply.Kind)
	assert.Len(t, reply.Items, 2)
}

func TestChatClient_TextReply(t *testing.T) {
	c := newChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("그냥 답변"))
	})

	reply, err := c.Send(context.Background(), voc.ModeGeneral, "q", "p")

	require.NoError(t, err)
	assert.Equal(t, voc.ReplyText, reply.Kind)
	assert.Equal(t, "그냥 답변", reply.Text)
}

func TestChatClient_ErrorStatus(t *testing.T) {
	c := newChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "plan rejected", http.StatusBadGateway)
	})

	_, err := c.Send(context.Background(), voc.ModeQueryList, "q", "p")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "plan rejected")
}
