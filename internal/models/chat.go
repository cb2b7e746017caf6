package models

import "github.com/google/uuid"

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage represents a single turn in a conversation. Messages are never
// edited after creation; transcript order is conversation order.
type ChatMessage struct {
	ID   string   `json:"id"`
	Role ChatRole `json:"role"` // "user" or "model"
	Text string   `json:"text"`
}

// NewChatMessage stamps a fresh unique ID so transcripts can key on it.
func NewChatMessage(role ChatRole, text string) ChatMessage {
	return ChatMessage{
		ID:   uuid.NewString(),
		Role: role,
		Text: text,
	}
}
