package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"studymatch/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // must fit a 10k-char message plus JSON framing
)

// WebSocketClient implements the Client interface over gorilla/websocket.
// The hub closes a connection it drops while the read pump may still be
// queuing a reply, so every send into Send and the close itself go through
// the same mutex.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Router *EventRouter
	Send   chan models.ServerEvent

	mu     sync.Mutex
	closed bool
}

func (c *WebSocketClient) GetUserID() string { return c.UserID }

// TrySend queues an event for this connection without blocking. A full
// buffer or a closed connection reports false; the event is dropped.
func (c *WebSocketClient) TrySend(evt models.ServerEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- evt:
		return true
	default:
		return false
	}
}

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the Send channel, which stops the write pump. The read pump
// stops on its own once the connection closes. Idempotent.
func (c *WebSocketClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// readPump reads frames from the socket and hands each decoded event to
// the router, sequentially. One event's handler finishes before the next
// frame is processed, which preserves per-connection ordering; other
// connections run their own pumps and are unaffected.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read error for user %s: %v", c.UserID, err)
			}
			break
		}

		var evt models.ClientEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			c.reply(models.ServerEvent{
				Event: models.EventError,
				Data:  models.ErrorNotice{Message: "Invalid payload"},
			})
			continue
		}

		c.Router.Dispatch(c, evt)
	}
}

// reply queues an event for this connection only, dropping it if the write
// buffer is full or the hub has already dropped the connection.
func (c *WebSocketClient) reply(evt models.ServerEvent) {
	c.TrySend(evt)
}

// writePump drains the Send channel onto the socket and keeps the
// connection alive with periodic pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(evt); err != nil {
				log.Printf("ws: write error for user %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
