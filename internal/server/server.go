// Package server hosts a single game over WebSocket. Clients connect to /ws
// and either join one of the remote seats or watch. Seated clients receive a
// turn_request whenever their colour is to move and answer with a move; every
// connection that joined or watches receives the public game events.
package server

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pursuit/internal/game"
)

// Server represents the WebSocket server
type Server struct {
	upgrader    websocket.Upgrader
	game        *game.Game
	gameID      string
	agents      map[game.Colour]*NetworkAgent
	connections map[*Connection]bool
	seats       map[game.Colour]*Connection
	register    chan *Connection
	unregister  chan *Connection
	formatter   *game.EventFormatter
	logger      *log.Logger
	clock       quartz.Clock
	turnTimeout time.Duration
	view        game.View
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	seatsFilled chan struct{}
	fillOnce    sync.Once
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for turn timeouts and message timestamps
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithTurnTimeout bounds how long a remote seat may take to answer. Zero waits forever.
func WithTurnTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.turnTimeout = d
	}
}

// NewServer creates a server hosting g, with the given colours played by
// remote clients. The server registers itself as a spectator of g.
func NewServer(g *game.Game, remote []game.Colour, logger *log.Logger, opts ...Option) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		game:        g,
		gameID:      g.ID(),
		agents:      make(map[game.Colour]*NetworkAgent),
		connections: make(map[*Connection]bool),
		seats:       make(map[game.Colour]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		formatter:   game.NewEventFormatter(game.FormattingOptions{}),
		logger:      logger.WithPrefix("server").With("game", g.ID()),
		clock:       quartz.NewReal(),
		view:        g.View(),
		ctx:         ctx,
		cancel:      cancel,
		seatsFilled: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	players := g.Players()
	for _, colour := range remote {
		if !slices.Contains(players, colour) {
			cancel()
			return nil, fmt.Errorf("remote seat %s is not a player in this game", colour)
		}
		if _, dup := s.agents[colour]; dup {
			cancel()
			return nil, fmt.Errorf("remote seat %s listed twice", colour)
		}
		s.agents[colour] = NewNetworkAgent(colour, s, logger, s.turnTimeout, s.clock)
	}
	if len(s.agents) == 0 {
		s.fillOnce.Do(func() { close(s.seatsFilled) })
	}

	if err := g.RegisterSpectator(s); err != nil {
		cancel()
		return nil, err
	}

	go s.run()
	return s, nil
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Starting WebSocket server", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop closes every connection and stops the connection loop
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			var freed *NetworkAgent
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				if colour, seated := conn.Seat(); seated && s.seats[colour] == conn {
					delete(s.seats, colour)
					freed = s.agents[colour]
				}
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()

			if freed != nil {
				s.logger.Warn("Seat vacated", "colour", freed.colour)
				freed.Disconnect()
			}
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.logger)
	select {
	case s.register <- client:
	case <-s.ctx.Done():
		_ = client.Close()
		return
	}
	client.Start()

	go func() {
		<-client.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// OnEvent implements game.Spectator by broadcasting the event to every
// joined or watching connection.
func (s *Server) OnEvent(event game.Event) {
	view := s.game.View()
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	msg, err := NewMessage(MessageTypeEvent, EventDataFromGame(event, s.formatter), event.Timestamp())
	if err != nil {
		s.logger.Error("Failed to create event message", "error", err)
		return
	}
	s.broadcast(msg)
}

// View returns the latest public board snapshot
func (s *Server) View() game.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Agents returns the agents for the remote seats, for use with game.NewEngine
func (s *Server) Agents() map[game.Colour]game.Agent {
	agents := make(map[game.Colour]game.Agent, len(s.agents))
	for colour, agent := range s.agents {
		agents[colour] = agent
	}
	return agents
}

// OpenSeats returns the remote colours nobody has joined yet
func (s *Server) OpenSeats() []game.Colour {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var open []game.Colour
	for _, colour := range slices.Sorted(maps.Keys(s.agents)) {
		if _, taken := s.seats[colour]; !taken {
			open = append(open, colour)
		}
	}
	return open
}

// WaitForSeats blocks until every remote seat has been joined
func (s *Server) WaitForSeats(ctx context.Context) error {
	select {
	case <-s.seatsFilled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Play waits for every remote seat to be filled and then plays the game to
// the end, with local supplying the agents for the other colours.
func (s *Server) Play(ctx context.Context, local map[game.Colour]game.Agent) (*game.Result, error) {
	s.logger.Info("Waiting for players", "seats", s.OpenSeats())
	if err := s.WaitForSeats(ctx); err != nil {
		return nil, err
	}

	agents := s.Agents()
	for colour, agent := range local {
		if _, remote := agents[colour]; remote {
			return nil, fmt.Errorf("%s is both a remote and a local seat", colour)
		}
		agents[colour] = agent
	}

	return game.NewEngine(s.game, agents, s.logger).Run(ctx)
}

func (s *Server) join(conn *Connection, colour game.Colour) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, remote := s.agents[colour]; !remote {
		return fmt.Errorf("%s is not an open seat", colour)
	}
	if _, taken := s.seats[colour]; taken {
		return fmt.Errorf("%s is already taken", colour)
	}
	s.seats[colour] = conn
	conn.setSeat(colour)
	s.logger.Info("Seat joined", "colour", colour)
	return nil
}

// seatTaken starts the game once the last remote seat is filled. Seats
// vacated later do not reopen the wait.
func (s *Server) seatTaken() {
	s.mu.RLock()
	full := len(s.seats) == len(s.agents)
	s.mu.RUnlock()
	if full {
		s.fillOnce.Do(func() { close(s.seatsFilled) })
	}
}

func (s *Server) sendToSeat(colour game.Colour, msg *Message) error {
	s.mu.RLock()
	conn, ok := s.seats[colour]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", colour, ErrSeatDisconnected)
	}
	return conn.SendMessage(msg)
}

func (s *Server) broadcast(msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for conn := range s.connections {
		if !conn.Subscribed() {
			continue
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Debug("Failed to send message to client", "error", err)
		} else {
			count++
		}
	}

	s.logger.Debug("Broadcasted message", "type", msg.Type, "recipients", count)
}
