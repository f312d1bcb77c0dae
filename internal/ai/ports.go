package ai

import "context"

// AI is the completion backend for the chat service. It knows nothing
// about VoC tickets or the console.
type AI interface {
	GetReply(
		ctx context.Context,
		systemPrompt string,
		userContent string,
	) (string, error)
}
