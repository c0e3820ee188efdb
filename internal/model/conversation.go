package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConversationStore defines persistence operations for chat conversations.
type ConversationStore interface {
	Create(ctx context.Context, conversation Conversation) (Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Conversation, error)
	AppendMessages(ctx context.Context, id uuid.UUID, messages []Message) error
}

// Message is one turn in a conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a chat history between one user and the assistant.
// Anonymous conversations carry the nil UUID as owner.
type Conversation struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}
