package ai

import "context"

// Chat roles as the completion API expects them.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is a chat-completion backend. Implementations must return a
// non-empty reply or an error; callers treat both failure cases the same
// way (they fall back to the canned responder).
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
