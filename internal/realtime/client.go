package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"renthub/internal/domain"
	"renthub/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 8192
	sendBufferSize = 64
)

// EventHandler receives every decoded client event. Handling one event must
// never block another connection's pump.
type EventHandler interface {
	HandleEvent(c *Client, env Envelope)
}

// Client wraps one live authenticated connection. The bound user profile is
// set during the handshake and never changes afterwards.
type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	user    domain.UserProfile
	handler EventHandler
	log     logger.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, user domain.UserProfile, handler EventHandler, log logger.Logger) *Client {
	return &Client{
		id:      uuid.NewString(),
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		user:    user,
		handler: handler,
		log:     log,
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) User() domain.UserProfile {
	return c.user
}

// SendEvent queues an envelope for the write pump. A client that cannot keep
// up has its frames dropped rather than stalling the broadcaster.
func (c *Client) SendEvent(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("Failed to marshal event payload", "event", event, "error", err)
		return
	}

	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		c.log.Error("Failed to marshal event envelope", "event", event, "error", err)
		return
	}

	select {
	case c.send <- frame:
	default:
		c.log.Warn("Send buffer full, dropping frame", "event", event, "user_id", c.user.ID)
	}
}

func (c *Client) SendError(message string) {
	c.SendEvent(EventError, ErrorPayload{Message: message})
}

// ReadPump consumes client frames until the connection drops, then tears the
// client out of presence and every room immediately.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("Unexpected connection close", "user_id", c.user.ID, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			c.SendError("malformed event")
			continue
		}

		c.handler.HandleEvent(c, env)
	}
}

// WritePump drains the send queue and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
