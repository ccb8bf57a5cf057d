package websocket

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	// writeWait bounds a single frame write to a viewer.
	writeWait = 10 * time.Second
	// sendBuffer is how many fragments may queue for a slow viewer.
	sendBuffer = 32
)

// Client is one connected board viewer.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
	mu   sync.RWMutex
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{ID: id, conn: conn, send: make(chan []byte, sendBuffer)}
}

// SendMessage queues msg for the client. It never blocks; a full queue drops
// the message.
func (c *Client) SendMessage(msg []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.send == nil {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		slog.Warn("Viewer send channel full, dropping message", "clientID", c.ID)
		return false
	}
}

// Close closes the send queue, which ends the write pump.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.send != nil {
		close(c.send)
		c.send = nil
	}
}

// readPump drains the connection until the viewer goes away. Viewers never
// send anything the server acts on.
func (c *Client) readPump(ctx context.Context, done func()) {
	defer done()
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			status := websocket.CloseStatus(err)
			switch {
			case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
				slog.Debug("Viewer closed the connection", "clientID", c.ID)
			case errors.Is(err, context.Canceled):
			default:
				slog.Debug("Viewer read ended", "clientID", c.ID, "error", err)
			}
			return
		}
	}
}

// writePump copies queued fragments to the connection.
func (c *Client) writePump(send <-chan []byte) {
	defer c.conn.Close(websocket.StatusNormalClosure, "board feed closed")

	for message := range send {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			slog.Warn("Viewer write failed", "clientID", c.ID, "error", err)
			return
		}
	}
}
