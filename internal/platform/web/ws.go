package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is what a browser sends over the socket.
type clientMessage struct {
	Type      string `json:"type"` // "move", "continue" or "reset"
	Direction string `json:"direction,omitempty"`
}

// socketClient is one WebSocket connection bound to a session.
type socketClient struct {
	conn      *websocket.Conn
	svc       *Service
	sessionID string
	logger    *log.Logger
}

// socket upgrades the request and streams session events until either
// side goes away.
func (h *handlers) socket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.svc.Get(id)
	if err != nil {
		h.fail(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		conn.Close()
		return
	}
	defer unsubscribe()

	c := &socketClient{conn: conn, svc: h.svc, sessionID: id, logger: h.logger.With("session", id)}
	c.logger.Debug("socket connected")

	go c.readPump(cancel)
	c.writePump(ctx, Event{Type: "state", Session: &view}, events)
	c.logger.Debug("socket closed")
}

// readPump applies client messages to the session. Anything that is not a
// known message with a valid direction is ignored.
func (c *socketClient) readPump(cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket error", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "move":
			_, err = c.svc.Move(c.sessionID, msg.Direction)
		case "continue":
			_, err = c.svc.Continue(c.sessionID)
		case "reset":
			_, err = c.svc.Reset(c.sessionID)
		default:
			continue
		}
		if err != nil {
			c.logger.Debug("ignored socket message", "type", msg.Type, "error", err)
		}
	}
}

// writePump sends the initial state, then session events and pings.
func (c *socketClient) writePump(ctx context.Context, first Event, events <-chan Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	if err := c.write(first); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case ev, ok := <-events:
			if !ok {
				// Dropped as a slow subscriber or the session was deleted.
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
				return
			}
			if err := c.write(ev); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *socketClient) write(ev Event) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(ev)
}
