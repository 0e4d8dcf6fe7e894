package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"intervox/internal/cache"
	"intervox/internal/dialogue"
	"intervox/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler attaches candidates to their interview session. Each accepted
// connection gets its own dialogue engine; the read pump delivers
// utterances to the engine one at a time, which is what serializes
// event handling per session.
type Handler struct {
	hub       *Hub
	tokens    *service.TokenService
	sessions  cache.SessionCache
	evaluator *service.EvaluatorService
	engineCfg dialogue.Config
	log       *slog.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, tokens *service.TokenService, sessions cache.SessionCache, evaluator *service.EvaluatorService, engineCfg dialogue.Config) *Handler {
	return &Handler{
		hub:       hub,
		tokens:    tokens,
		sessions:  sessions,
		evaluator: evaluator,
		engineCfg: engineCfg,
		log:       slog.With("component", "ws"),
	}
}

// RoomWS handles GET /v1/ws/rooms/{room}
func (h *Handler) RoomWS(w http.ResponseWriter, r *http.Request) {
	room := mux.Vars(r)["room"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.ValidateRoomToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.Room != room {
		http.Error(w, "token not valid for this room", http.StatusForbidden)
		return
	}

	meta, err := h.sessions.Get(r.Context(), room)
	if err != nil {
		http.Error(w, "failed to resolve session", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		http.Error(w, "unknown or expired session", http.StatusNotFound)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "room", room, "error", err)
		return
	}

	conn := newConn(room)
	if err := h.hub.Attach(room, conn); err != nil {
		wsConn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		wsConn.Close()
		return
	}

	sink := service.NewSinkService(meta.BackendHost)
	engine := dialogue.NewEngine(meta, conn, h.evaluator, sink, h.engineCfg)

	h.log.Info("session starting", "room", room, "identity", claims.Identity, "role", meta.Role)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn, engine)
}

// readPump drives the dialogue. Utterances are handled inline, so a new
// utterance is never delivered while the previous handler is running.
func (h *Handler) readPump(wsConn *websocket.Conn, conn *Conn, engine *dialogue.Engine) {
	defer func() {
		h.hub.Detach(conn.room, conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ctx := context.Background()
	if err := engine.Start(ctx); err != nil {
		h.log.Warn("failed to start session", "room", conn.room, "error", err)
		return
	}

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read error", "room", conn.room, "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug("dropping malformed message", "room", conn.room, "error", err)
			continue
		}
		if msg.Type != MsgUtterance {
			h.log.Debug("dropping unexpected message type", "room", conn.room, "type", msg.Type)
			continue
		}

		// A missing text field is treated as empty input, not an error.
		if err := engine.HandleUtterance(ctx, msg.Text); err != nil {
			h.log.Warn("turn handling failed", "room", conn.room, "error", err)
			return
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message := <-conn.send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-conn.closed:
			// Flush anything still queued, then close the socket.
			for {
				select {
				case message := <-conn.send:
					wsConn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
						return
					}
				default:
					wsConn.SetWriteDeadline(time.Now().Add(writeWait))
					wsConn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
