package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	wsReadLimit    = 1 << 12
	wsPongWait     = 60 * time.Second
	wsPingPeriod   = 25 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WSListener accepts remote controllers over websocket. Each text message
// is one JSON Command.
type WSListener struct {
	addr     string
	queue    *Queue
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewWSListener creates a listener for addr (host:port) feeding q.
func NewWSListener(addr string, q *Queue, logger *log.Logger) *WSListener {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WSListener{
		addr:   addr,
		queue:  q,
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// Accept any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (l *WSListener) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", l.serveWS)
	return mux
}

// Run serves until ctx is done.
func (l *WSListener) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              l.addr,
		Handler:           l.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	// Shutdown does not touch hijacked connections.
	srv.RegisterOnShutdown(l.CloseConns)

	errCh := make(chan error, 1)
	go func() {
		l.logger.Info("listening for remote controllers", "addr", l.addr, "endpoint", "/ws")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// CloseConns drops every connected controller.
func (l *WSListener) CloseConns() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for conn := range l.conns {
		_ = conn.Close()
		delete(l.conns, conn)
	}
}

func (l *WSListener) track(conn *websocket.Conn) {
	l.mu.Lock()
	l.conns[conn] = struct{}{}
	l.mu.Unlock()
}

func (l *WSListener) untrack(conn *websocket.Conn) {
	l.mu.Lock()
	delete(l.conns, conn)
	l.mu.Unlock()
	_ = conn.Close()
}

func (l *WSListener) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	l.track(conn)
	defer l.untrack(conn)

	l.logger.Info("remote controller connected", "remote", r.RemoteAddr)

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deadline := time.Now().Add(wsWriteTimeout)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.logger.Warn("remote controller dropped", "remote", r.RemoteAddr, "error", err)
			}
			return
		}

		c, err := Decode(msg)
		if err != nil {
			l.logger.Debug("ignoring malformed command", "remote", r.RemoteAddr, "error", err)
			continue
		}
		l.queue.Push(c)
	}
}
