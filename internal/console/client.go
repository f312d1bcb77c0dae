package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/voctools/voc-console/internal/voc"
)

// ChatClient posts console messages to the chat route.
type ChatClient struct {
	url  string
	rest *resty.Client
}

func NewChatClient(url string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		url: url,
		rest: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
	}
}

type chatRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
	Prompt  string `json:"prompt"`
}

// Send posts one message and classifies the answer. The response
// content type decides the decoding: JSON bodies go through the shape
// classifier, anything else is plain text.
func (c *ChatClient) Send(ctx context.Context, mode voc.Mode, content, systemPrompt string) (voc.Reply, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Task-Mode", string(mode)).
		SetBody(chatRequest{Content: content, Mode: string(mode), Prompt: systemPrompt}).
		Post(c.url)
	if err != nil {
		return voc.Reply{}, fmt.Errorf("chat request: %w", err)
	}

	if resp.IsError() {
		return voc.Reply{}, fmt.Errorf("chat api error: %s body=%s",
			resp.Status(), short(resp.String()))
	}

	if strings.Contains(resp.Header().Get("Content-Type"), "application/json") {
		return voc.Classify(resp.Body(), mode), nil
	}
	return voc.Reply{Kind: voc.ReplyText, Text: resp.String()}, nil
}

func short(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
