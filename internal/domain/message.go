package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable after creation except for the IsRead flag, which
// only the receiver's read action may flip.
type Message struct {
	ID             uuid.UUID    `json:"id"`
	ConversationID string       `json:"conversation_id"`
	SenderID       uuid.UUID    `json:"sender_id"`
	ReceiverID     uuid.UUID    `json:"receiver_id"`
	PropertyID     uuid.UUID    `json:"property_id"`
	Content        string       `json:"content"`
	IsRead         bool         `json:"is_read"`
	CreatedAt      time.Time    `json:"created_at"`
	Sender         *UserProfile `json:"sender,omitempty"`
}
