package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maaylex/maaylex-server/internal/model"
)

var _ model.ConversationStore = (*ConversationRepository)(nil)

type ConversationRepository struct {
	db *Connection
}

func NewConversationRepository(db *Connection) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func scanConversation(row pgx.Row) (model.Conversation, error) {
	var c model.Conversation
	var raw []byte
	if err := row.Scan(&c.ID, &c.UserID, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Conversation{}, err
	}
	if err := json.Unmarshal(raw, &c.Messages); err != nil {
		return model.Conversation{}, fmt.Errorf("failed to decode messages: %w", err)
	}
	return c, nil
}

func (r *ConversationRepository) Create(ctx context.Context, conversation model.Conversation) (model.Conversation, error) {
	messages := conversation.Messages
	if messages == nil {
		messages = []model.Message{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to encode messages: %w", err)
	}

	const query = `INSERT INTO conversations (id, user_id, messages, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_id, messages, created_at, updated_at`

	saved, err := scanConversation(r.db.QueryRow(ctx, query,
		conversation.ID, conversation.UserID, raw, conversation.CreatedAt, conversation.UpdatedAt,
	))
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
	}

	return saved, nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Conversation, error) {
	const query = `SELECT id, user_id, messages, created_at, updated_at FROM conversations WHERE id = $1`

	conversation, err := scanConversation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Conversation{}, model.ErrNotFound
		}
		return model.Conversation{}, fmt.Errorf("failed to get conversation by id: %w", err)
	}

	return conversation, nil
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Conversation, error) {
	const query = `SELECT id, user_id, messages, created_at, updated_at
			  FROM conversations WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []model.Conversation
	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return conversations, nil
}

func (r *ConversationRepository) AppendMessages(ctx context.Context, id uuid.UUID, messages []model.Message) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	const query = `UPDATE conversations SET messages = messages || $2::jsonb, updated_at = now() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, raw)
	if err != nil {
		return fmt.Errorf("failed to append messages: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
