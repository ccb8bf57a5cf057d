// Package websocket pushes rendered board fragments to connected browsers.
package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Greeter renders the fragment a viewer receives right after connecting.
type Greeter func(ctx context.Context) ([]byte, error)

// Bridge tracks connected viewers and fans broadcast fragments out to them.
type Bridge struct {
	greet Greeter

	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu sync.RWMutex
}

// NewBridge creates a bridge. greet may be nil.
func NewBridge(greet Greeter) *Bridge {
	return &Bridge{
		greet:      greet,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// Run routes registrations and broadcasts until ctx is canceled, then
// disconnects every viewer.
func (b *Bridge) Run(ctx context.Context) {
	slog.Info("Board feed bridge started")
	defer close(b.done)

	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for id, client := range b.clients {
				client.Close()
				delete(b.clients, id)
			}
			b.mu.Unlock()
			slog.Info("Board feed bridge stopped")
			return

		case client := <-b.register:
			b.mu.Lock()
			b.clients[client.ID] = client
			b.mu.Unlock()
			slog.Debug("Viewer registered", "clientID", client.ID)

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client.ID]; ok {
				delete(b.clients, client.ID)
				client.Close()
				slog.Debug("Viewer unregistered", "clientID", client.ID)
			}
			b.mu.Unlock()

		case payload := <-b.broadcast:
			b.mu.RLock()
			for _, client := range b.clients {
				client.SendMessage(payload)
			}
			b.mu.RUnlock()
		}
	}
}

// Broadcast queues payload for every connected viewer. It is dropped once
// the bridge has stopped.
func (b *Bridge) Broadcast(payload []byte) {
	select {
	case b.broadcast <- payload:
	case <-b.done:
	}
}

// ClientCount reports how many viewers are connected.
func (b *Bridge) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Handler upgrades the request and attaches the viewer to the feed.
func (b *Bridge) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			slog.Error("Failed to upgrade connection to WebSocket", "error", err)
			return err
		}

		client := newClient(uuid.NewString(), conn)
		if b.greet != nil {
			if payload, err := b.greet(c.Request().Context()); err != nil {
				slog.Warn("Could not render greeting for viewer", "clientID", client.ID, "error", err)
			} else {
				client.SendMessage(payload)
			}
		}

		send := client.send
		select {
		case b.register <- client:
		case <-b.done:
			conn.Close(websocket.StatusGoingAway, "board feed stopped")
			return nil
		}

		go client.writePump(send)
		go client.readPump(context.Background(), func() {
			select {
			case b.unregister <- client:
			case <-b.done:
			}
		})
		return nil
	}
}
