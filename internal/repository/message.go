package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"renthub/internal/domain"
	"renthub/pkg/logger"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error)
	ExistsParticipant(ctx context.Context, conversationID string, userID uuid.UUID) (bool, error)
	MarkRead(ctx context.Context, receiverID uuid.UUID, messageIDs []uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type messageRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewMessageRepository(db *pgxpool.Pool, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, receiver_id, property_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ID, message.ConversationID, message.SenderID, message.ReceiverID,
		message.PropertyID, message.Content, message.IsRead, message.CreatedAt,
	).Scan(&message.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create message", "error", err)
		return err
	}

	return nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error) {
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.receiver_id, m.property_id,
		       m.content, m.is_read, m.created_at,
		       u.first_name, u.last_name
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message := &domain.Message{}
		sender := &domain.UserProfile{}
		err := rows.Scan(
			&message.ID, &message.ConversationID, &message.SenderID, &message.ReceiverID,
			&message.PropertyID, &message.Content, &message.IsRead, &message.CreatedAt,
			&sender.FirstName, &sender.LastName,
		)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		sender.ID = message.SenderID
		message.Sender = sender
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (r *messageRepository) ExistsParticipant(ctx context.Context, conversationID string, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM messages
			WHERE conversation_id = $1 AND (sender_id = $2 OR receiver_id = $2)
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, conversationID, userID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check conversation membership", "error", err)
		return false, err
	}

	return exists, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID uuid.UUID, messageIDs []uuid.UUID) (int64, error) {
	query := `
		UPDATE messages
		SET is_read = TRUE
		WHERE id = ANY($2) AND receiver_id = $1 AND is_read = FALSE
	`

	tag, err := r.db.Exec(ctx, query, receiverID, messageIDs)
	if err != nil {
		r.log.Error("Failed to mark messages read", "error", err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *messageRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM messages
		WHERE receiver_id = $1 AND is_read = FALSE
	`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count unread messages", "error", err)
		return 0, err
	}

	return count, nil
}
