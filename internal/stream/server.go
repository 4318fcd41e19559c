package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-stash/internal/commands"
	"github.com/pixil98/go-stash/internal/game"
	"github.com/pixil98/go-stash/internal/messaging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Broker relays messages between websocket clients and the message bus.
type Broker interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
	Publish(subject string, data []byte) error
}

// Server streams inventory events to websocket clients and forwards the
// requests they send to the world.
type Server struct {
	addr           string
	broker         Broker
	eventSubject   string
	requestSubject string
	pingPeriod     time.Duration
	parser         *commands.Parser
	upgrader       websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewServer(addr string, broker Broker, opts ...ServerOpt) *Server {
	s := &Server{
		addr:           addr,
		broker:         broker,
		eventSubject:   messaging.EventWildcard,
		requestSubject: game.RequestSubject,
		pingPeriod:     (pongWait * 9) / 10,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the http handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handle)
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: writeWait,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	slog.InfoContext(ctx, "event stream listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("serving event stream: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	// Shutdown does not wait for hijacked websocket connections.
	s.closeConns()
	if err != nil {
		return fmt.Errorf("shutting down event stream: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer func() { _ = conn.Close() }()
	s.track(conn)
	defer s.untrack(conn)

	done := make(chan struct{})
	send := make(chan []byte, sendBuffer)

	unsub, err := s.broker.Subscribe(s.eventSubject, func(data []byte) {
		select {
		case send <- data:
		case <-done:
		default:
			slog.Warn("dropping event for slow client", "remote", r.RemoteAddr)
		}
	})
	if err != nil {
		slog.Error("subscribing client to events", "remote", r.RemoteAddr, "error", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "events unavailable")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		return
	}
	defer unsub()

	slog.Debug("stream client connected", "remote", r.RemoteAddr)
	go s.readPump(conn, r.RemoteAddr, done)
	s.writePump(conn, send, done)
	slog.Debug("stream client disconnected", "remote", r.RemoteAddr)
}

// readPump forwards client requests until the connection fails, then closes
// done.
func (s *Server) readPump(conn *websocket.Conn, remote string, done chan struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		req, err := s.decode(payload)
		if err != nil {
			slog.Warn("discarding client request", "remote", remote, "error", err)
			continue
		}
		data, err := json.Marshal(req)
		if err != nil {
			slog.Error("marshalling client request", "remote", remote, "error", err)
			continue
		}
		if err := s.broker.Publish(s.requestSubject, data); err != nil {
			slog.Warn("forwarding client request", "remote", remote, "error", err)
		}
	}
}

// decode accepts a JSON request or, when a parser is set, a text command.
func (s *Server) decode(payload []byte) (game.Request, error) {
	var req game.Request
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return req, fmt.Errorf("decoding request: %w", err)
		}
		return req, nil
	}
	if s.parser == nil {
		return req, fmt.Errorf("text commands are disabled")
	}
	return s.parser.Parse(string(trimmed))
}

func (s *Server) writePump(conn *websocket.Conn, send <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(s.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) track(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// closeConns tells every connected client the server is going away and
// drops the connection.
func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
	}
	slog.Debug("closed stream clients", "count", len(s.conns))
}
