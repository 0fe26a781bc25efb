package messaging

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/autofill"
)

const (
	clientBuffer = 16
	writeTimeout = 5 * time.Second
)

// Hub streams run outcomes to WebSocket subscribers. Delivery is
// best-effort: a subscriber that falls behind loses messages.
type Hub struct {
	logger   *zap.Logger
	origins  Origins
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

var _ autofill.Reporter = (*Hub)(nil)

// NewHub returns an empty Hub accepting subscribers from origins.
func NewHub(log *zap.Logger, origins Origins) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		logger:  log,
		origins: origins,
		upgrader: websocket.Upgrader{
			CheckOrigin: origins.Allowed,
		},
		clients: make(map[*client]struct{}),
	}
}

// Origins returns the browser origins the hub accepts.
func (h *Hub) Origins() Origins {
	return h.origins
}

// ServeHTTP upgrades the request and keeps the subscriber until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("upgrading subscriber failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan Message, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("subscriber connected", zap.String("remote", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)
}

// Publish queues msg for every subscriber.
func (h *Hub) Publish(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("subscriber too slow, dropping message", zap.String("action", string(msg.Action)))
		}
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
}

func (h *Hub) Completed(url string, stats autofill.Stats, _ time.Duration) {
	h.Publish(Complete(url, stats))
}

func (h *Hub) Failed(url string, err error) {
	h.Publish(Failure(url, err))
}

// Rejected is not forwarded: the rejected caller already got the error.
func (h *Hub) Rejected(string) {}

// readLoop drains the connection so close frames are seen.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	_ = c.conn.Close()
	h.logger.Debug("subscriber disconnected")
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			h.logger.Debug("writing to subscriber failed", zap.Error(err))
			_ = c.conn.Close()
			return
		}
	}
}
