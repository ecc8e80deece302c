// Package stream broadcasts engine change events to websocket clients, so a
// renderer can follow a run live. Clients only listen; anything they send is
// discarded.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

const (
	defaultBuffer = 1024
	writeWait     = 5 * time.Second
	readWait      = 60 * time.Second
)

// Hub fans events out to connected clients. Notify never blocks the engine:
// a client whose buffer is full misses the frame and the drop is counted.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader
	buffer   int

	mu      sync.Mutex
	clients map[uint64]*client
	closed  bool

	nextID  atomic.Uint64
	dropped atomic.Uint64
	wg      sync.WaitGroup
}

type client struct {
	id   uint64
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) stop() { c.once.Do(func() { close(c.done) }) }

var _ wfc.Listener = (*Hub)(nil)

// Option configures a Hub.
type Option func(*Hub)

// WithBuffer sets the per-client frame buffer. Panics if n < 1.
func WithBuffer(n int) Option {
	if n < 1 {
		panic("stream: WithBuffer(n < 1)")
	}
	return func(h *Hub) { h.buffer = n }
}

// NewHub returns an empty hub logging to logger.
func NewHub(logger *slog.Logger, opts ...Option) *Hub {
	if logger == nil {
		panic("stream: NewHub(nil logger)")
	}
	h := &Hub{
		log:    logger,
		buffer: defaultBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: make(map[uint64]*client),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Notify encodes ev once and queues it for every client.
func (h *Hub) Notify(ev wfc.Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("stream: marshal event", "seq", ev.Seq, "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, c := range h.clients {
		select {
		case c.out <- b:
		default:
			h.dropped.Add(1)
		}
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped counts frames not delivered because a client lagged.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Handler upgrades the request and streams events until the client leaves
// or the hub closes.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		c, ok := h.register()
		if !ok {
			http.Error(rw, "closed", http.StatusServiceUnavailable)
			return
		}
		defer h.wg.Done()
		defer h.unregister(c)

		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.Debug("stream: upgrade failed", "err", err)
			return
		}
		defer conn.Close()
		h.log.Info("stream client connected", "id", c.id, "remote", r.RemoteAddr)

		writeErr := make(chan error, 1)
		go func() {
			for {
				select {
				case <-c.done:
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye"),
						time.Now().Add(time.Second))
					_ = conn.Close()
					writeErr <- nil
					return
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						writeErr <- err
						_ = conn.Close()
						return
					}
				}
			}
		}()

		// Reader loop: only notices the peer going away.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readWait))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		c.stop()
		if err := <-writeErr; err != nil {
			h.log.Debug("stream: write failed", "id", c.id, "err", err)
		}
		h.log.Info("stream client left", "id", c.id)
	}
}

func (h *Hub) register() (*client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	c := &client{
		id:   h.nextID.Add(1),
		out:  make(chan []byte, h.buffer),
		done: make(chan struct{}),
	}
	h.clients[c.id] = c
	h.wg.Add(1)
	return c, true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
}

// Close disconnects every client and waits for their handlers to return.
// Later connections are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for _, c := range h.clients {
		c.stop()
	}
	h.mu.Unlock()
	h.wg.Wait()
}
