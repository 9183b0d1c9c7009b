package realtime

import (
	"sync"

	"github.com/google/uuid"
	"renthub/internal/domain"
	"renthub/pkg/logger"
)

// Hub is the process-local presence registry and room table. It is built once
// at startup and shared by every connection handler; it holds no durable
// state and is intentionally lost on restart.
type Hub struct {
	mu    sync.RWMutex
	users map[uuid.UUID]map[*Client]struct{}
	rooms map[string]map[*Client]struct{}
	log   logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		users: make(map[uuid.UUID]map[*Client]struct{}),
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

// UserRoom names the personal room every authenticated connection joins.
func UserRoom(userID uuid.UUID) string {
	return "user_" + userID.String()
}

// Register binds an authenticated connection into the presence map and its
// personal notification room.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := c.user.ID
	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[*Client]struct{})
	}
	h.users[userID][c] = struct{}{}

	h.joinRoomLocked(c, UserRoom(userID))
	h.log.Debug("Connection registered", "user_id", userID, "conn_id", c.id)
}

// Unregister removes a connection from presence and every room it joined.
// Unregistering a connection that is not present is a no-op; duplicate
// disconnect events are expected.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := c.user.ID
	if conns, ok := h.users[userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.users, userID)
		}
	}

	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) JoinRoom(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinRoomLocked(c, room)
}

func (h *Hub) joinRoomLocked(c *Client, room string) {
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

// LeaveRoom is unconditional; removing a non-member is a no-op.
func (h *Hub) LeaveRoom(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}

func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.users))
	for userID := range h.users {
		users = append(users, userID)
	}
	return users
}

// roomMembers snapshots a room under the read lock so delivery happens
// without holding it (copy-on-broadcast).
func (h *Hub) roomMembers(room string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	return members
}

// EmitToRoom delivers an event to every member of a room except the client
// whose connection id matches excludeConnID (senders never get their own
// echo). An empty excludeConnID excludes nobody.
func (h *Hub) EmitToRoom(room, event string, payload any, excludeConnID string) {
	for _, c := range h.roomMembers(room) {
		if excludeConnID != "" && c.id == excludeConnID {
			continue
		}
		c.SendEvent(event, payload)
	}
}

// EmitToUser delivers point-to-point through the personal room, reaching
// every live connection of that user.
func (h *Hub) EmitToUser(userID uuid.UUID, event string, payload any) {
	h.EmitToRoom(UserRoom(userID), event, payload, "")
}

// BroadcastNewMessage and NotifyNewMessage satisfy the message pipeline's
// publisher contract.
func (h *Hub) BroadcastNewMessage(conversationID string, message *domain.Message, excludeConnID string) {
	h.EmitToRoom(conversationID, EventNewMessage, message, excludeConnID)
}

func (h *Hub) NotifyNewMessage(userID uuid.UUID, message *domain.Message) {
	h.EmitToUser(userID, EventNewMessageNotification, message)
}
