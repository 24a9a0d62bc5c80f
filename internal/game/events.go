package game

import (
	"fmt"
	"reflect"
	"slices"
	"time"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStarted     EventType = "round_started"
	EventTypeMoveMade         EventType = "move_made"
	EventTypeRotationComplete EventType = "rotation_complete"
	EventTypeGameOver         EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything broadcast to spectators
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartedEvent is published when an evader move enters a new round
type RoundStartedEvent struct {
	Round     int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartedEvent creates a new round started event
func NewRoundStartedEvent(round int, at time.Time) RoundStartedEvent {
	return RoundStartedEvent{Round: round, timestamp: at}
}

// MoveMadeEvent is published for every applied move. Evader moves carry the
// public version of the move, with hidden destinations replaced by the last
// revealed location.
type MoveMadeEvent struct {
	Move      Move
	timestamp time.Time
}

func (e MoveMadeEvent) EventType() EventType { return EventTypeMoveMade }
func (e MoveMadeEvent) Timestamp() time.Time { return e.timestamp }

// NewMoveMadeEvent creates a new move made event
func NewMoveMadeEvent(move Move, at time.Time) MoveMadeEvent {
	return MoveMadeEvent{Move: move, timestamp: at}
}

// RotationCompleteEvent is published when every player has moved once and the game continues
type RotationCompleteEvent struct {
	timestamp time.Time
}

func (e RotationCompleteEvent) EventType() EventType { return EventTypeRotationComplete }
func (e RotationCompleteEvent) Timestamp() time.Time { return e.timestamp }

// NewRotationCompleteEvent creates a new rotation complete event
func NewRotationCompleteEvent(at time.Time) RotationCompleteEvent {
	return RotationCompleteEvent{timestamp: at}
}

// GameOverEvent is published once, at the end of the rotation in which the game was won
type GameOverEvent struct {
	Winners   []Colour
	Reasons   []Reason
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// NewGameOverEvent creates a new game over event
func NewGameOverEvent(v Verdict, at time.Time) GameOverEvent {
	return GameOverEvent{
		Winners:   slices.Clone(v.Winners),
		Reasons:   slices.Clone(v.Reasons),
		timestamp: at,
	}
}

// Spectator receives game events synchronously, in the order they happen
type Spectator interface {
	OnEvent(event Event)
}

// Spectators is an ordered registry of spectators. Each spectator may be
// registered at most once. Spectators are matched with ==, so their dynamic
// type must be comparable; use a pointer receiver for spectators that hold
// slices or maps.
type Spectators struct {
	list []Spectator
}

// Register adds a spectator to the end of the delivery order
func (s *Spectators) Register(spectator Spectator) error {
	if spectator == nil {
		return fmt.Errorf("%w: nil spectator", ErrSpectatorState)
	}
	if !isComparable(spectator) {
		return fmt.Errorf("%w: spectator type %T is not comparable", ErrSpectatorState, spectator)
	}
	if slices.Contains(s.list, spectator) {
		return fmt.Errorf("%w: spectator already registered", ErrSpectatorState)
	}
	s.list = append(s.list, spectator)
	return nil
}

// Unregister removes a previously registered spectator
func (s *Spectators) Unregister(spectator Spectator) error {
	if spectator == nil || !isComparable(spectator) {
		return fmt.Errorf("%w: spectator was not registered", ErrSpectatorState)
	}
	i := slices.Index(s.list, spectator)
	if i < 0 {
		return fmt.Errorf("%w: spectator was not registered", ErrSpectatorState)
	}
	s.list = slices.Delete(s.list, i, i+1)
	return nil
}

func isComparable(spectator Spectator) bool {
	return reflect.TypeOf(spectator).Comparable()
}

// All returns the registered spectators in delivery order
func (s *Spectators) All() []Spectator {
	return slices.Clone(s.list)
}

// Publish delivers event to every spectator in registration order
func (s *Spectators) Publish(event Event) {
	for _, spectator := range s.All() {
		spectator.OnEvent(event)
	}
}
