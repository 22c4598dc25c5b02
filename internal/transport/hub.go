// Package transport carries messages between the server and game clients
// over websockets.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/metrics"
	"github.com/osse101/realmkeeper/internal/naming"
)

// Handler receives connection lifecycle callbacks and inbound frames.
// Connect must not block. Disconnect is called exactly once for every Connect.
type Handler interface {
	Connect(ctx context.Context, playerID, name string)
	Command(playerID string, payload []byte)
	Disconnect(playerID string)
}

// Config holds hub settings
type Config struct {
	SendBuffer     int
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	// AllowedOrigins restricts browser origins; empty allows any
	AllowedOrigins []string
}

func (c *Config) applyDefaults() {
	if c.SendBuffer <= 0 {
		c.SendBuffer = DefaultSendBuffer
	}
	if c.WriteWait <= 0 {
		c.WriteWait = DefaultWriteWait
	}
	if c.PongWait <= 0 {
		c.PongWait = DefaultPongWait
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
}

// Hub tracks live connections and implements messaging.Messenger
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn

	// active counts connections whose Disconnect has not returned
	active sync.WaitGroup

	handler  Handler
	config   Config
	upgrader websocket.Upgrader
}

// NewHub creates a hub. SetHandler must be called before serving.
func NewHub(config Config) *Hub {
	config.applyDefaults()
	h := &Hub{
		conns:  make(map[string]*conn),
		config: config,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// SetHandler wires the game side of the hub
func (h *Hub) SetHandler(handler Handler) {
	h.handler = handler
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.config.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.config.AllowedOrigins, r.Header.Get("Origin"))
}

// ServeHTTP upgrades the request and runs the connection pumps
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	name := r.URL.Query().Get(QueryName)
	if err := naming.ValidateName(name); err != nil {
		log.Warn(LogMsgInvalidName, "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn(LogMsgUpgradeFailed, "error", err)
		return
	}

	c := newConn(uuid.NewString(), name, ws, h.config.SendBuffer)
	h.active.Add(1)
	h.add(c)

	ctx := logger.WithSessionID(context.WithoutCancel(r.Context()), c.id)
	logger.FromContext(ctx).Info(LogMsgConnected, "name", name, "remote_addr", r.RemoteAddr)

	go c.writePump(h.config.WriteWait, h.config.PongWait*9/10)
	h.handler.Connect(ctx, c.id, name)
	go func() {
		c.readPump(h.config.MaxMessageSize, h.config.PongWait, func(payload []byte) {
			h.handler.Command(c.id, payload)
		})
		h.remove(c.id)
		logger.FromContext(ctx).Info(LogMsgDisconnected, "name", name)
		h.handler.Disconnect(c.id)
		h.active.Done()
	}()
}

func (h *Hub) add(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.id] = c
	metrics.WebsocketConnections.Inc()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[id]; ok {
		delete(h.conns, id)
		metrics.WebsocketConnections.Dec()
	}
}

// Close terminates the connection of playerID. The handler still receives
// Disconnect once the read side notices.
func (h *Hub) Close(playerID string) {
	h.mu.RLock()
	c, ok := h.conns[playerID]
	h.mu.RUnlock()
	if ok {
		c.close()
	}
}

// CloseAll terminates every connection
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.conns {
		c.close()
	}
}

// Drain closes every connection and waits until each Disconnect has been
// delivered to the handler
func (h *Hub) Drain(ctx context.Context) error {
	h.CloseAll()

	done := make(chan struct{})
	go func() {
		h.active.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Count is the number of live connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func encode(msg messaging.Message) ([]byte, bool) {
	b, err := json.Marshal(messaging.Encode(msg))
	if err != nil {
		logger.Error(LogMsgEncodeFailed, "type", msg.Type(), "error", err)
		return nil, false
	}
	return b, true
}

func (h *Hub) ToPlayer(playerID string, msg messaging.Message) {
	h.mu.RLock()
	c, ok := h.conns[playerID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	b, ok := encode(msg)
	if !ok {
		return
	}
	if !c.enqueue(b) {
		logger.Debug(LogMsgDropped, "player_id", playerID, "type", msg.Type())
		return
	}
	if msg.Type() == messaging.TypeWelcome {
		c.welcomed.Store(true)
	}
}

// Broadcast sends msg to every welcomed player, the source included.
// Connections still bootstrapping see nothing until their welcome payload.
func (h *Hub) Broadcast(sourceID string, msg messaging.Message) {
	b, ok := encode(msg)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.conns {
		if c.welcomed.Load() {
			c.enqueue(b)
		}
	}
}
