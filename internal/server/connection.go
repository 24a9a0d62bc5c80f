package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pursuit/internal/game"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	seat      *game.Colour
	watching  bool
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		server: server,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Done is closed once the connection has been closed
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// Seat returns the colour this connection plays, if any
func (c *Connection) Seat() (game.Colour, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.seat == nil {
		return 0, false
	}
	return *c.seat, true
}

func (c *Connection) setSeat(colour game.Colour) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seat = &colour
}

// Subscribed reports whether the connection receives game events
func (c *Connection) Subscribed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.watching || c.seat != nil
}

func (c *Connection) setWatching() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watching = true
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = errors.New("connection closed")
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(ErrorCodeInvalidMessage, "Failed to parse join data")
			return
		}
		c.handleJoin(data)

	case MessageTypeWatch:
		c.handleWatch()

	case MessageTypeMove:
		var data MoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(ErrorCodeInvalidMessage, "Failed to parse move data")
			return
		}
		c.handleMove(data)

	default:
		c.sendError(ErrorCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	}, c.server.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

func (c *Connection) handleJoin(data JoinData) {
	c.logger.Info("Join request", "colour", data.Colour)

	colour, err := game.ParseColour(data.Colour)
	if err != nil {
		c.sendError(ErrorCodeJoinFailed, err.Error())
		return
	}
	if _, seated := c.Seat(); seated {
		c.sendError(ErrorCodeJoinFailed, "connection already holds a seat")
		return
	}
	if err := c.server.join(c, colour); err != nil {
		c.sendError(ErrorCodeJoinFailed, err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeJoined, JoinedData{
		GameID: c.server.gameID,
		Colour: colour,
		Board:  c.server.View(),
	}, c.server.clock.Now())
	_ = c.SendMessage(response)

	c.server.seatTaken()
}

func (c *Connection) handleWatch() {
	c.logger.Info("Watch request")
	c.setWatching()

	response, _ := NewMessage(MessageTypeWatching, WatchingData{
		GameID: c.server.gameID,
		Board:  c.server.View(),
	}, c.server.clock.Now())
	_ = c.SendMessage(response)
}

func (c *Connection) handleMove(data MoveData) {
	colour, seated := c.Seat()
	if !seated {
		c.sendError(ErrorCodeNotSeated, "Must join a seat before moving")
		return
	}
	c.logger.Info("Move", "colour", colour, "turn", data.Turn, "move", data.Move)

	agent := c.server.agents[colour]
	if err := agent.HandleMove(data); err != nil {
		c.sendError(ErrorCodeMoveRejected, err.Error())
		return
	}

	// No response needed - the game will publish events
}
