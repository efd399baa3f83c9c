// Package ws adapts gorilla websocket connections to the realtime core.
package ws

import (
	"chat-sync/contract"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var _ contract.Channel = (*Connection)(nil)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 * 1024
)

// Connection is the outbox of one websocket.
// Send only enqueues; a single writer goroutine owns every write to the socket.
type Connection struct {
	log       *slog.Logger
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewConnection(log *slog.Logger, conn *websocket.Conn, bufferSize int) *Connection {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Connection{
		log:  log,
		conn: conn,
		send: make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}
}

// Send never blocks: a full outbox or a closed connection drops the payload.
func (c *Connection) Send(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		c.log.Debug("Outbox full, payload dropped")
		return false
	}
}

// Close stops the writer. Payloads already queued are flushed first.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// Done is closed once the connection has been closed.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// writeLoop drains the outbox and keeps the peer alive with pings.
func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			if err := c.write(websocket.TextMessage, payload); err != nil {
				c.log.Debug("Websocket write failed", "error", err)
				_ = c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		case <-c.done:
			c.flush()
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Connection) flush() {
	for {
		select {
		case payload := <-c.send:
			if err := c.write(websocket.TextMessage, payload); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, payload)
}

// readLoop hands every text frame to handle until the peer goes away
// or the connection is closed locally.
func (c *Connection) readLoop(handle func(raw []byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("Websocket closed unexpectedly", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		handle(raw)
	}
}
