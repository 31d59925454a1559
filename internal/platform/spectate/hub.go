// Package spectate streams session snapshots to read-only viewers over websockets.
package spectate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/websocket"
)

const (
	// DefaultBuffer is how many frames a viewer may fall behind before it is dropped.
	DefaultBuffer = 8
	// DefaultWriteTimeout bounds a single websocket write.
	DefaultWriteTimeout = 2 * time.Second
)

// Hub fans published frames out to connected viewers.
// Publish never blocks: a viewer whose queue is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*viewer]struct{}
	latest  []byte
	closed  bool

	buffer       int
	writeTimeout time.Duration
	logger       *log.Logger
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Option configures a Hub.
type Option func(*Hub)

// WithBuffer sets the per-viewer queue length.
func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithWriteTimeout sets the deadline for each frame write.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithLogger sets the hub logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients:      make(map[*viewer]struct{}),
		buffer:       DefaultBuffer,
		writeTimeout: DefaultWriteTimeout,
		logger:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish queues frame for every viewer and remembers it for late joiners.
// The frame must not be modified afterwards.
func (h *Hub) Publish(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.latest = frame
	for v := range h.clients {
		select {
		case v.send <- frame:
		default:
			h.logger.Info("dropping slow viewer", "remote", remoteAddr(v.conn))
			h.dropLocked(v)
		}
	}
}

// Latest returns the most recently published frame, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for v := range h.clients {
		h.dropLocked(v)
	}
}

func (h *Hub) add(conn *websocket.Conn) (*viewer, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false
	}
	v := &viewer{conn: conn, send: make(chan []byte, h.buffer)}
	if h.latest != nil {
		v.send <- h.latest
	}
	h.clients[v] = struct{}{}
	return v, true
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(v)
}

func (h *Hub) dropLocked(v *viewer) {
	if _, ok := h.clients[v]; !ok {
		return
	}
	delete(h.clients, v)
	close(v.send)
}

// serve runs one viewer connection until it closes or is dropped.
func (h *Hub) serve(conn *websocket.Conn) {
	v, ok := h.add(conn)
	if !ok {
		conn.Close()
		return
	}
	h.logger.Debug("viewer connected", "remote", remoteAddr(conn))
	defer func() {
		h.remove(v)
		conn.Close()
		h.logger.Debug("viewer disconnected", "remote", remoteAddr(conn))
	}()

	// Viewers are read-only; reading only detects the close.
	go func() {
		var discard string
		for websocket.Message.Receive(conn, &discard) == nil {
		}
		h.remove(v)
	}()

	for frame := range v.send {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := websocket.Message.Send(conn, string(frame)); err != nil {
			h.logger.Debug("viewer write failed", "err", err)
			return
		}
	}
}

// Handler returns the mux serving /watch (websocket) and /snapshot (latest frame).
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/watch", websocket.Handler(h.serve))
	mux.HandleFunc("/snapshot", h.handleSnapshot)
	return mux
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	frame := h.Latest()
	if frame == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(frame)
}

// Serve listens on addr until ctx is cancelled, then closes the hub.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		h.logger.Info("spectator feed listening", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		h.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func remoteAddr(conn *websocket.Conn) string {
	if conn == nil || conn.Request() == nil {
		return ""
	}
	return conn.Request().RemoteAddr
}
