package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
	"renthub/internal/domain"
)

// Client -> server events.
const (
	EventJoinConversation  = "join_conversation"
	EventLeaveConversation = "leave_conversation"
	EventNewMessage        = "new_message"
	EventTyping            = "typing"
	EventStopTyping        = "stop_typing"
	EventMessageRead       = "message_read"
)

// Server -> client events.
const (
	EventUserTyping               = "user_typing"
	EventUserStopTyping           = "user_stop_typing"
	EventMessagesRead             = "messages_read"
	EventNewMessageNotification   = "new_message_notification"
	EventMessagesReadNotification = "messages_read_notification"
	EventError                    = "error"
)

// Envelope is the wire frame: an event name plus a JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type ConversationPayload struct {
	ConversationID string `json:"conversationId"`
}

type NewMessagePayload struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	PropertyID     string `json:"propertyId,omitempty"`
}

type MessageReadPayload struct {
	MessageIDs     []uuid.UUID `json:"messageIds"`
	ConversationID string      `json:"conversationId"`
}

type TypingPayload struct {
	UserID         uuid.UUID          `json:"userId"`
	User           domain.UserProfile `json:"user"`
	ConversationID string             `json:"conversationId"`
}

type MessagesReadPayload struct {
	MessageIDs     []uuid.UUID `json:"messageIds"`
	ReadBy         uuid.UUID   `json:"readBy"`
	ConversationID string      `json:"conversationId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
