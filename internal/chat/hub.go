// Package chat fans group chat messages out to connected websocket clients.
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/store"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Event is the JSON frame pushed to clients.
type Event struct {
	Type    string            `json:"type"`
	Message store.ChatMessage `json:"message"`
}

// InboundFunc handles text a client sends over its socket.
type InboundFunc func(text string)

// Hub tracks live clients per group. Delivery is best effort: a client
// whose buffer is full is disconnected.
type Hub struct {
	log *zap.Logger

	mu     sync.Mutex
	groups map[int]map[*client]struct{}
	closed bool
}

// NewHub returns an empty hub. Run must be called to tie it to a lifetime.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{log: log, groups: make(map[int]map[*client]struct{})}
}

// Run blocks until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for gid, members := range h.groups {
		for c := range members {
			close(c.send)
		}
		delete(h.groups, gid)
	}
	h.log.Debug("chat hub stopped")
	return nil
}

// Publish delivers msg to every client subscribed to groupID.
func (h *Hub) Publish(groupID int, msg store.ChatMessage) {
	frame, err := json.Marshal(Event{Type: "message", Message: msg})
	if err != nil {
		h.log.Error("encode chat event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.groups[groupID] {
		select {
		case c.send <- frame:
		default:
			h.log.Warn("dropping slow chat client", zap.Int("group_id", groupID))
			h.removeLocked(c)
		}
	}
}

// Clients reports the number of live clients in groupID.
func (h *Hub) Clients(groupID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[groupID])
}

// Serve attaches conn to groupID and blocks until the connection ends.
// Text frames from the client are passed to onText when it is non-nil.
func (h *Hub) Serve(conn *websocket.Conn, groupID int, onText InboundFunc) {
	c := &client{hub: h, conn: conn, groupID: groupID, send: make(chan []byte, sendBuffer)}
	if !h.add(c) {
		conn.Close()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writePump()
	}()
	c.readPump(onText)
	h.remove(c)
	<-done
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	members := h.groups[c.groupID]
	if members == nil {
		members = make(map[*client]struct{})
		h.groups[c.groupID] = members
	}
	members[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	members := h.groups[c.groupID]
	if _, ok := members[c]; !ok {
		return
	}
	delete(members, c)
	close(c.send)
	if len(members) == 0 {
		delete(h.groups, c.groupID)
	}
}

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	groupID int
	send    chan []byte
}

func (c *client) readPump(onText InboundFunc) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("chat client read", zap.Error(err))
			}
			return
		}
		if kind == websocket.TextMessage && onText != nil {
			onText(string(data))
		}
	}
}

// writePump owns all writes to the connection and closes it when the send
// channel is closed.
func (c *client) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
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
