package llm

import "context"

// Message is one {role, content} pair of a replayed conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	// Complete sends the full conversation and returns the generated reply,
	// already trimmed of boilerplate.
	Complete(ctx context.Context, messages []Message) (string, error)
}
