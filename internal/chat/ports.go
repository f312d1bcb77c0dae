package chat

import (
	"context"

	"github.com/voctools/voc-console/internal/voc"
)

// Request is the chat route body posted by the console.
type Request struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
	Prompt  string `json:"prompt"`
}

// Querier runs validated ticket queries against the VoC backend.
type Querier interface {
	List(ctx context.Context, params map[string]string) ([]voc.Item, error)
}

// Service turns a chat request into a reply: a plain completion for
// GENERAL mode, a planned-and-executed ticket query for the others.
type Service interface {
	Handle(ctx context.Context, mode voc.Mode, content, prompt string) (voc.Reply, error)
}
