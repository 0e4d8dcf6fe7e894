package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
)

// MessageType defines the type of WebSocket message.
type MessageType string

const (
	// Inbound from the candidate's client.
	MsgUtterance MessageType = "utterance"

	// Outbound directives to the client's generation/speech stack.
	MsgSpeak  MessageType = "speak"
	MsgClosed MessageType = "closed"
	MsgError  MessageType = "error"
)

// Message is the WebSocket envelope format.
type Message struct {
	Type MessageType `json:"type"`
	Text string      `json:"text,omitempty"`
}

// ErrRoomBusy is returned when a second connection attaches to a room
// whose session is already running.
var ErrRoomBusy = errors.New("room already has an active session")

// Hub tracks the one active connection per room. Sessions are
// single-candidate: a room never has more than one attached client.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Conn
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*Conn),
	}
}

// Attach claims the room for conn.
func (h *Hub) Attach(room string, conn *Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[room]; ok {
		return ErrRoomBusy
	}
	h.rooms[room] = conn
	slog.Info("candidate attached", "room", room)
	return nil
}

// Detach releases the room if conn still owns it.
func (h *Hub) Detach(room string, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.rooms[room]; ok && existing == conn {
		delete(h.rooms, room)
		conn.closeOnce.Do(func() { close(conn.closed) })
		slog.Info("candidate detached", "room", room)
	}
}

// ActiveRooms returns the number of rooms with a live session.
func (h *Hub) ActiveRooms() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// Conn is one candidate's connection. It implements the dialogue
// engine's Speaker boundary: Speak queues a directive for the write
// pump, Close signals the end of the session.
type Conn struct {
	room string
	send chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(room string) *Conn {
	return &Conn{
		room:   room,
		send:   make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

// Speak queues one speak directive for delivery to the client.
func (c *Conn) Speak(ctx context.Context, instructions string) error {
	return c.enqueue(ctx, &Message{Type: MsgSpeak, Text: instructions})
}

// Close tells the client the session is over and stops accepting
// further directives.
func (c *Conn) Close(ctx context.Context) error {
	err := c.enqueue(ctx, &Message{Type: MsgClosed})
	c.closeOnce.Do(func() { close(c.closed) })
	return err
}

func (c *Conn) enqueue(ctx context.Context, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	// The send channel is buffered, so a bare select could still pick
	// the send case after close; rule that out before blocking.
	select {
	case <-c.closed:
		return errors.New("connection closed")
	default:
	}
	select {
	case <-c.closed:
		return errors.New("connection closed")
	case c.send <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
