package transport

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/realmkeeper/internal/metrics"
)

// conn is one client connection. Writes go through a bounded queue drained
// by writePump so senders never wait on the network.
type conn struct {
	id   string
	name string
	ws   *websocket.Conn
	send chan []byte
	// welcomed is set once the welcome payload is queued
	welcomed atomic.Bool

	done      chan struct{}
	closeOnce sync.Once
}

func newConn(id, name string, ws *websocket.Conn, buffer int) *conn {
	return &conn{
		id:   id,
		name: name,
		ws:   ws,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// enqueue reports false when the message was dropped
func (c *conn) enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- b:
		return true
	default:
		metrics.WebsocketDropped.Inc()
		return false
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

func (c *conn) writePump(writeWait, pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump delivers inbound frames to onMessage until the connection fails
func (c *conn) readPump(maxSize int64, pongWait time.Duration, onMessage func([]byte)) {
	defer c.close()

	c.ws.SetReadLimit(maxSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		onMessage(payload)
	}
}
