package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"renthub/internal/service"
	apperrors "renthub/pkg/errors"
	"renthub/pkg/logger"
)

// Router validates room membership and multiplexes conversation events. It is
// the single EventHandler behind every connection.
type Router struct {
	hub      *Hub
	messages service.MessageService
	log      logger.Logger
}

func NewRouter(hub *Hub, messages service.MessageService, log logger.Logger) *Router {
	return &Router{
		hub:      hub,
		messages: messages,
		log:      log,
	}
}

func (r *Router) HandleEvent(c *Client, env Envelope) {
	switch env.Event {
	case EventJoinConversation:
		r.handleJoin(c, env.Data)
	case EventLeaveConversation:
		r.handleLeave(c, env.Data)
	case EventNewMessage:
		r.handleNewMessage(c, env.Data)
	case EventTyping:
		r.handleTyping(c, env.Data, true)
	case EventStopTyping:
		r.handleTyping(c, env.Data, false)
	case EventMessageRead:
		r.handleMessageRead(c, env.Data)
	default:
		c.SendError("unknown event: " + env.Event)
	}
}

// handleJoin admits a client into an existing conversation room. Membership
// requires at least one persisted message with the user as a participant, so
// a brand-new thread is entered through the send path, not through join.
func (r *Router) handleJoin(c *Client, data json.RawMessage) {
	var payload ConversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		c.SendError("conversationId is required")
		return
	}

	member, err := r.messages.IsParticipant(context.Background(), c.user.ID, payload.ConversationID)
	if err != nil {
		r.log.Error("Membership check failed", "error", err, "conversation_id", payload.ConversationID)
		c.SendError("failed to join conversation")
		return
	}
	if !member {
		c.SendError(apperrors.ErrAccessDenied.Error())
		return
	}

	r.hub.JoinRoom(c, payload.ConversationID)
}

func (r *Router) handleLeave(c *Client, data json.RawMessage) {
	var payload ConversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		return
	}
	r.hub.LeaveRoom(c, payload.ConversationID)
}

func (r *Router) handleNewMessage(c *Client, data json.RawMessage) {
	var payload NewMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		c.SendError("conversationId and content are required")
		return
	}

	receiverID, propertyID, err := r.counterpart(c.user.ID, payload.ConversationID)
	if err != nil {
		c.SendError(err.Error())
		return
	}

	// The conversation id is authoritative; an explicit propertyId must agree
	// with the property baked into it.
	if payload.PropertyID != "" && payload.PropertyID != propertyID.String() {
		c.SendError("propertyId does not match the conversation")
		return
	}

	if _, err := r.messages.SendMessage(context.Background(), c.user.ID, receiverID, propertyID, payload.Content, c.id); err != nil {
		c.SendError(err.Error())
	}
}

func (r *Router) handleTyping(c *Client, data json.RawMessage, isTyping bool) {
	var payload ConversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		return
	}

	event := EventUserTyping
	if !isTyping {
		event = EventUserStopTyping
	}

	r.hub.EmitToRoom(payload.ConversationID, event, TypingPayload{
		UserID:         c.user.ID,
		User:           c.user,
		ConversationID: payload.ConversationID,
	}, c.id)
}

func (r *Router) handleMessageRead(c *Client, data json.RawMessage) {
	var payload MessageReadPayload
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.MessageIDs) == 0 {
		return
	}

	count, err := r.messages.MarkAsRead(context.Background(), c.user.ID, payload.MessageIDs)
	if err != nil {
		r.log.Error("Failed to mark messages read", "error", err, "user_id", c.user.ID)
		c.SendError("failed to mark messages as read")
		return
	}
	if count == 0 {
		return
	}

	read := MessagesReadPayload{
		MessageIDs:     payload.MessageIDs,
		ReadBy:         c.user.ID,
		ConversationID: payload.ConversationID,
	}

	r.hub.EmitToRoom(payload.ConversationID, EventMessagesRead, read, c.id)

	// The counterpart may not have the room open; the personal room keeps
	// their unread badges in sync.
	if senderID, _, err := r.counterpart(c.user.ID, payload.ConversationID); err == nil {
		r.hub.EmitToUser(senderID, EventMessagesReadNotification, read)
	}
}

// counterpart resolves the other participant and the property anchor from a
// conversation id, rejecting callers that are not part of it.
func (r *Router) counterpart(userID uuid.UUID, conversationID string) (uuid.UUID, uuid.UUID, error) {
	a, b, propertyID, err := service.ParseConversationID(conversationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	switch userID {
	case a:
		return b, propertyID, nil
	case b:
		return a, propertyID, nil
	default:
		return uuid.Nil, uuid.Nil, apperrors.ErrAccessDenied
	}
}
