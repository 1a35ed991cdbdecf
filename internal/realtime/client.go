package realtime

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size allowed from peer
	maxMessageSize = 4096

	// Outbound buffer size per connection; when full, delivery to this
	// connection is skipped (best-effort, at-most-once)
	sendBufferSize = 256
)

// Application close codes in the private range (4000-4999)
const (
	// CloseSuperseded is sent to a connection displaced by a newer
	// authentication for the same user
	CloseSuperseded = 4000

	// CloseAuthMismatch is sent when the claimed user ID does not match
	// the transport-level session identity
	CloseAuthMismatch = 4001

	// CloseUserNotFound is sent when no session identity exists and the
	// claimed user ID is unknown to the user store
	CloseUserNotFound = 4002
)

// Client wraps one live WebSocket connection. The transport layer that
// created it owns the underlying conn; the hub holds a non-owning
// reference that can be overwritten or removed without destroying the
// transport.
type Client struct {
	id     string
	userID atomic.Uint64 // set at bind time, read by the write pump's logs
	conn   *websocket.Conn
	send   chan []byte

	closed     int32 // atomic; set once the connection is going away
	sendClosed int32 // atomic; guards close(send)

	logger *slog.Logger
}

func NewClient(conn *websocket.Conn, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

func (c *Client) ID() string {
	return c.id
}

// UserID returns the bound user, or 0 while unauthenticated
func (c *Client) UserID() uint {
	return uint(c.userID.Load())
}

func (c *Client) setUserID(userID uint) {
	c.userID.Store(uint64(userID))
}

func (c *Client) isClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// TrySend queues data for delivery without blocking. It reports false
// when the client is closed or its buffer is full; the frame is dropped
// in that case, never queued or retried.
func (c *Client) TrySend(data []byte) bool {
	if c.isClosed() {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		c.logger.Warn("send buffer full, dropping frame", "clientID", c.id, "userID", c.UserID())
		return false
	}
}

// SendEvent marshals and queues a single event for this connection
func (c *Client) SendEvent(ev *Event) bool {
	data, err := marshalEvent(ev)
	if err != nil {
		c.logger.Error("failed to marshal event", "type", ev.Type, "error", err)
		return false
	}
	return c.TrySend(data)
}

// close marks the client closed and shuts the send channel so the write
// pump drains and exits. Idempotent.
func (c *Client) close() {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return
	}
	if atomic.CompareAndSwapInt32(&c.sendClosed, 0, 1) {
		close(c.send)
	}
}

// CloseWithCode writes a close control frame with the given application
// code, then tears the connection down. May run on any goroutine:
// WriteControl is the only write method safe to call concurrently with
// the write pump, and it carries its own deadline.
func (c *Client) CloseWithCode(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		c.logger.Debug("error writing close frame", "clientID", c.id, "error", err)
	}
	c.close()
	c.conn.Close()
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings. One writePump per connection; it is the
// only goroutine allowed to write to the conn after startup.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write failed", "clientID", c.id, "userID", c.UserID(), "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("ping failed", "clientID", c.id, "userID", c.UserID(), "error", err)
				return
			}
		}
	}
}
