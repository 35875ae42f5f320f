package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// ChatMessage is one turn of a model's conversation. Turns are append-only and
// scoped to a single model; only a recent window is ever read back.
type ChatMessage struct {
	ID        uuid.UUID
	Role      string
	Content   string
	Timestamp time.Time
}

func NewChatMessage(role, content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
