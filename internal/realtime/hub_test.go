package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"renthub/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Fatal(msg string, args ...any) {}

// testClient builds a client with no live socket; events pile up in the send
// buffer where the test can drain them.
func testClient(hub *Hub, userID uuid.UUID) *Client {
	return NewClient(hub, nil, domain.UserProfile{ID: userID, FirstName: "Test"}, nil, nopLogger{})
}

func drainEvents(c *Client) []Envelope {
	var events []Envelope
	for {
		select {
		case frame := <-c.send:
			var env Envelope
			if err := json.Unmarshal(frame, &env); err == nil {
				events = append(events, env)
			}
		default:
			return events
		}
	}
}

func TestRegisterMarksOnline(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	c := testClient(hub, userID)

	assert.False(t, hub.IsOnline(userID))
	hub.Register(c)
	assert.True(t, hub.IsOnline(userID))
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	c := testClient(hub, userID)

	hub.Register(c)
	hub.Unregister(c)
	assert.False(t, hub.IsOnline(userID))

	// A duplicate disconnect changes nothing.
	assert.NotPanics(t, func() { hub.Unregister(c) })
	assert.False(t, hub.IsOnline(userID))
}

func TestUserStaysOnlineWhileAnyConnectionRemains(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	c1 := testClient(hub, userID)
	c2 := testClient(hub, userID)

	hub.Register(c1)
	hub.Register(c2)

	hub.Unregister(c1)
	assert.True(t, hub.IsOnline(userID))

	hub.Unregister(c2)
	assert.False(t, hub.IsOnline(userID))
}

func TestOnlineUsers(t *testing.T) {
	hub := NewHub(nopLogger{})
	u1 := uuid.New()
	u2 := uuid.New()

	hub.Register(testClient(hub, u1))
	hub.Register(testClient(hub, u2))

	assert.ElementsMatch(t, []uuid.UUID{u1, u2}, hub.OnlineUsers())
}

func TestEmitToRoomExcludesOrigin(t *testing.T) {
	hub := NewHub(nopLogger{})
	sender := testClient(hub, uuid.New())
	other := testClient(hub, uuid.New())

	hub.Register(sender)
	hub.Register(other)
	hub.JoinRoom(sender, "room-1")
	hub.JoinRoom(other, "room-1")

	hub.EmitToRoom("room-1", EventUserTyping, TypingPayload{UserID: sender.user.ID, ConversationID: "room-1"}, sender.ID())

	assert.Empty(t, drainEvents(sender))

	events := drainEvents(other)
	require.Len(t, events, 1)
	assert.Equal(t, EventUserTyping, events[0].Event)
}

func TestEmitToRoomEmptyExclusionReachesEveryone(t *testing.T) {
	hub := NewHub(nopLogger{})
	c1 := testClient(hub, uuid.New())
	c2 := testClient(hub, uuid.New())

	hub.Register(c1)
	hub.Register(c2)
	hub.JoinRoom(c1, "room-1")
	hub.JoinRoom(c2, "room-1")

	hub.EmitToRoom("room-1", EventMessagesRead, nil, "")

	assert.Len(t, drainEvents(c1), 1)
	assert.Len(t, drainEvents(c2), 1)
}

func TestEmitToUserReachesAllConnections(t *testing.T) {
	hub := NewHub(nopLogger{})
	userID := uuid.New()
	c1 := testClient(hub, userID)
	c2 := testClient(hub, userID)
	stranger := testClient(hub, uuid.New())

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(stranger)

	hub.EmitToUser(userID, EventNewMessageNotification, &domain.Message{ID: uuid.New()})

	assert.Len(t, drainEvents(c1), 1)
	assert.Len(t, drainEvents(c2), 1)
	assert.Empty(t, drainEvents(stranger))
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	hub := NewHub(nopLogger{})
	c := testClient(hub, uuid.New())

	hub.Register(c)
	hub.JoinRoom(c, "room-1")
	hub.LeaveRoom(c, "room-1")

	hub.EmitToRoom("room-1", EventUserTyping, nil, "")
	assert.Empty(t, drainEvents(c))

	// Leaving a room never joined is a no-op.
	assert.NotPanics(t, func() { hub.LeaveRoom(c, "never-joined") })
}

func TestUnregisterRemovesFromRooms(t *testing.T) {
	hub := NewHub(nopLogger{})
	gone := testClient(hub, uuid.New())
	stays := testClient(hub, uuid.New())

	hub.Register(gone)
	hub.Register(stays)
	hub.JoinRoom(gone, "room-1")
	hub.JoinRoom(stays, "room-1")

	hub.Unregister(gone)
	hub.EmitToRoom("room-1", EventUserTyping, nil, "")

	assert.Empty(t, drainEvents(gone))
	assert.Len(t, drainEvents(stays), 1)
}

func TestBroadcastNewMessage(t *testing.T) {
	hub := NewHub(nopLogger{})
	sender := testClient(hub, uuid.New())
	receiver := testClient(hub, uuid.New())

	hub.Register(sender)
	hub.Register(receiver)
	hub.JoinRoom(sender, "conv-1")
	hub.JoinRoom(receiver, "conv-1")

	msg := &domain.Message{ID: uuid.New(), ConversationID: "conv-1", Content: "hello"}
	hub.BroadcastNewMessage("conv-1", msg, sender.ID())

	assert.Empty(t, drainEvents(sender))

	events := drainEvents(receiver)
	require.Len(t, events, 1)
	assert.Equal(t, EventNewMessage, events[0].Event)

	var got domain.Message
	require.NoError(t, json.Unmarshal(events[0].Data, &got))
	assert.Equal(t, msg.ID, got.ID)
	assert.Equal(t, "hello", got.Content)
}
