// Package server exposes a composer session over a websocket. Every client
// shares the same controller; each state change is broadcast as a snapshot.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/launcher"
	"github.com/grovetools/deck/ticker"
	"github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// Server serves one controller to any number of websocket clients.
type Server struct {
	ctrl     *engine.Controller
	board    *ticker.Board
	logger   *logrus.Entry
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	unsub   func()
}

type client struct {
	conn *websocket.Conn
	send chan Outgoing

	mu      sync.Mutex
	pending *engine.Proposal // launch awaiting confirm_launch
}

// New creates a server over ctrl. board may be nil when the ticker is off.
func New(ctrl *engine.Controller, board *ticker.Board, logger *logrus.Entry) *Server {
	if logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		logger = logrus.NewEntry(quiet)
	}
	s := &Server{
		ctrl:   ctrl,
		board:  board,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
	s.unsub = ctrl.Subscribe(func(engine.State) { s.Broadcast() })
	return s
}

// Handler returns the HTTP routes: /ws for the session, /api/snapshot for a
// one-shot JSON snapshot and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleConnection)
	mux.HandleFunc("/api/snapshot", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.snapshot()); err != nil {
			s.logger.WithError(err).Debug("Failed to write snapshot")
		}
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.WithField("addr", addr).Info("Listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		s.Close()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close disconnects every client and stops listening to the controller.
func (s *Server) Close() {
	s.unsub()
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

// HandleConnection upgrades the request and serves one client until it
// disconnects.
func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan Outgoing, sendBuffer)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)
	s.reply(c, s.snapshot())

	s.logger.WithField("remote", r.RemoteAddr).Debug("Client connected")
	defer func() {
		s.drop(c)
		s.logger.WithField("remote", r.RemoteAddr).Debug("Client disconnected")
	}()

	for {
		var in Incoming
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).Debug("WebSocket read error")
			}
			return
		}
		s.handle(c, in)
	}
}

func (s *Server) handle(c *client, in Incoming) {
	switch in.Type {
	case TypeAction:
		s.ctrl.Dispatch(in.Action)

	case TypeLaunch:
		mode, err := launcher.ParseMode(in.Mode)
		if err != nil {
			s.reply(c, errorMessage(err.Error()))
			return
		}
		s.propose(c, mode)

	case TypeConfirmLaunch:
		c.mu.Lock()
		p := c.pending
		c.pending = nil
		c.mu.Unlock()
		if p == nil || (in.Mode != "" && in.Mode != string(p.Mode)) {
			s.reply(c, errorMessage("no launch awaiting confirmation"))
			return
		}
		if !in.Accept {
			return
		}
		batch, current := s.ctrl.StartProposal(*p)
		if !current {
			s.logger.WithField("mode", p.Mode).Debug("Workspace changed before confirmation, asking again")
			s.propose(c, p.Mode)
			return
		}
		s.logger.WithFields(logrus.Fields{"mode": p.Mode, "opens": batch.Len()}).Info("Launch started")

	default:
		s.reply(c, errorMessage("unknown message type: "+in.Type))
	}
}

// propose asks c to confirm launching the current workspace in mode.
func (s *Server) propose(c *client, mode launcher.Mode) {
	p, ok := s.ctrl.ProposeLaunch(mode)
	if !ok {
		s.reply(c, errorMessage("workspace is empty"))
		return
	}
	c.mu.Lock()
	c.pending = &p
	c.mu.Unlock()
	s.reply(c, Outgoing{Type: TypeConfirm, Mode: string(mode), Message: p.Message})
}

// Broadcast sends the current snapshot to every client.
func (s *Server) Broadcast() {
	msg := s.snapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			s.logger.Debug("Client too slow, dropping")
			delete(s.clients, c)
			close(c.send)
		}
	}
}

func (s *Server) snapshot() Outgoing {
	snap := s.ctrl.Snapshot()
	out := Outgoing{Type: TypeSnapshot, Snapshot: &snap}
	if s.board != nil {
		out.Quotes = s.board.Quotes()
	}
	return out
}

func (s *Server) reply(c *client, msg Outgoing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
	c.conn.Close()
}

func (s *Server) writeLoop(c *client) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			s.logger.WithError(err).Debug("WebSocket write error")
			c.conn.Close()
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
