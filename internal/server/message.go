package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pursuit/internal/game"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeJoin  MessageType = "join"
	MessageTypeWatch MessageType = "watch"
	MessageTypeMove  MessageType = "move"

	// Server to client messages
	MessageTypeJoined      MessageType = "joined"
	MessageTypeWatching    MessageType = "watching"
	MessageTypeTurnRequest MessageType = "turn_request"
	MessageTypeTurnTimeout MessageType = "turn_timeout"
	MessageTypeEvent       MessageType = "event"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes sent in ErrorData
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeUnknownType    = "unknown_message_type"
	ErrorCodeJoinFailed     = "join_failed"
	ErrorCodeNotSeated      = "not_seated"
	ErrorCodeMoveRejected   = "move_rejected"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with at
func NewMessage(messageType MessageType, data any, at time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: at,
	}, nil
}

// Client → Server Messages

type JoinData struct {
	Colour string `json:"colour"`
}

// MoveData answers a turn request. Move uses the notation accepted by
// game.ParseMove, e.g. "taxi:12" or "taxi:12,bus:5".
type MoveData struct {
	Turn int    `json:"turn"`
	Move string `json:"move"`
}

// Server → Client Messages

type JoinedData struct {
	GameID string      `json:"gameId"`
	Colour game.Colour `json:"colour"`
	Board  game.View   `json:"board"`
}

type WatchingData struct {
	GameID string    `json:"gameId"`
	Board  game.View `json:"board"`
}

type TurnRequestData struct {
	GameID         string      `json:"gameId"`
	Turn           int         `json:"turn"`
	Colour         game.Colour `json:"colour"`
	Location       int         `json:"location"`
	Moves          []string    `json:"moves"`
	Board          game.View   `json:"board"`
	TimeoutSeconds int         `json:"timeoutSeconds,omitempty"`
}

type TurnTimeoutData struct {
	Turn   int         `json:"turn"`
	Colour game.Colour `json:"colour"`
}

// EventData carries one game event. Only the fields relevant to Event are set.
type EventData struct {
	Event   game.EventType `json:"event"`
	Round   int            `json:"round,omitempty"`
	Colour  *game.Colour   `json:"colour,omitempty"`
	Move    string         `json:"move,omitempty"`
	Winners []game.Colour  `json:"winners,omitempty"`
	Reasons []game.Reason  `json:"reasons,omitempty"`
	Text    string         `json:"text"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EventDataFromGame converts a game event into its wire form
func EventDataFromGame(event game.Event, formatter *game.EventFormatter) EventData {
	data := EventData{
		Event: event.EventType(),
		Text:  formatter.Format(event),
	}
	switch e := event.(type) {
	case game.RoundStartedEvent:
		data.Round = e.Round
	case game.MoveMadeEvent:
		colour := e.Move.Colour
		data.Colour = &colour
		data.Move = e.Move.Notation()
	case game.GameOverEvent:
		data.Winners = e.Winners
		data.Reasons = e.Reasons
	}
	return data
}

// MoveNotations converts legal moves into the strings a client sends back
func MoveNotations(moves []game.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}
