package chat

import "github.com/google/uuid"

// NewSessionID returns an opaque chat session identifier. Callers thread it
// back on subsequent turns to keep history in one conversation.
func NewSessionID() string {
	return uuid.NewString()
}
