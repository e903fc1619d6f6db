package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// ErrHubClosed is returned by HandleEvent once Run has returned.
var ErrHubClosed = errors.New("notification hub is closed")

// maxInboundMessageSize caps frames read from clients, which are not
// expected to send anything but control frames.
const maxInboundMessageSize = 512

// Hub fans task events out to websocket clients. Run owns the client set;
// all other methods communicate with it over channels.
type Hub struct {
	cfg      config.NotifierConfig
	upgrader websocket.Upgrader
	logger   *slog.Logger

	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}

	clientCount atomic.Int64
}

var _ events.EventHandler = (*Hub)(nil)

// NewHub creates a hub. Call Run before serving connections.
func NewHub(cfg config.NotifierConfig, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		cfg:        cfg,
		logger:     logger.With("component", "notification_hub"),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Any origin may subscribe; the API has no cross-origin policy.
		CheckOrigin: func(*http.Request) bool { return true },
		Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			shared.RespondWithErrorAndLog(w, r, status, "Websocket upgrade required", reason)
		},
	}
	return h
}

// ClientCount reports the number of registered clients.
func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client. It must be called exactly once.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*client]struct{})

	defer func() {
		for c := range clients {
			close(c.send)
		}
		h.clientCount.Store(0)
		close(h.done)
		h.logger.Info("notification hub stopped", "disconnected_clients", len(clients))
	}()

	h.logger.Info("notification hub started")
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			clients[c] = struct{}{}
			h.clientCount.Store(int64(len(clients)))
			h.logger.Debug("client connected", "client_id", c.id, "client_count", len(clients))

		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
				h.clientCount.Store(int64(len(clients)))
				h.logger.Debug("client disconnected", "client_id", c.id, "client_count", len(clients))
			}

		case msg := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					delete(clients, c)
					close(c.send)
					h.logger.Warn("dropping slow client", "client_id", c.id)
				}
			}
			h.clientCount.Store(int64(len(clients)))
		}
	}
}

// HandleEvent implements events.EventHandler by broadcasting the event as a
// JSON frame. It returns once Run has queued the frame for every client.
func (h *Hub) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	frame, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Name, err)
	}

	select {
	case h.broadcast <- frame:
		logger.FromContextOrDefault(ctx, h.logger).Debug("broadcast task event",
			"event_id", event.ID,
			"event_name", event.Name)
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeWS upgrades the request to a websocket and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Notifications are unavailable")
		return
	default:
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error response.
		return
	}

	c := &client{
		id:   uuid.New().String(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.cfg.SendBuffer),
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// client is one websocket connection.
type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump discards inbound messages and keeps the read deadline fresh with
// pongs. It unregisters the client when the connection fails.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	pongWait := c.hub.cfg.PingInterval + c.hub.cfg.WriteTimeout
	c.conn.SetReadLimit(maxInboundMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read failed", "client_id", c.id, "error", err)
			}
			return
		}
	}
}

// writePump delivers queued frames and periodic pings. A closed send
// channel means the hub has dropped the client.
func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
