package server

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pursuit/internal/game"
)

// ErrSeatDisconnected is returned when the client holding a seat goes away mid-turn
var ErrSeatDisconnected = errors.New("seat disconnected")

type reply struct {
	turn int
	move game.Move
	err  error
}

// NetworkAgent is a server-side agent that proxies turn requests to the
// remote client holding its colour.
type NetworkAgent struct {
	colour  game.Colour
	server  *Server
	logger  *log.Logger
	clock   quartz.Clock
	timeout time.Duration
	replies chan reply

	mu      sync.Mutex
	pending *game.TurnView
}

// NewNetworkAgent creates a new network agent for a remote seat
func NewNetworkAgent(colour game.Colour, server *Server, logger *log.Logger, timeout time.Duration, clock quartz.Clock) *NetworkAgent {
	return &NetworkAgent{
		colour:  colour,
		server:  server,
		logger:  logger.WithPrefix("network-agent").With("colour", colour),
		clock:   clock,
		timeout: timeout,
		replies: make(chan reply, 1),
	}
}

// ChooseMove implements game.Agent by sending a turn request to the seat and
// waiting for its answer, the turn timeout or ctx, whichever comes first.
func (na *NetworkAgent) ChooseMove(ctx context.Context, view game.TurnView) (game.Move, error) {
	na.setPending(&view)
	defer na.setPending(nil)

	na.logger.Info("Requesting move from remote player", "turn", view.Turn, "moves", len(view.Moves))

	var timeoutFired chan struct{}
	if na.timeout > 0 {
		fired := make(chan struct{})
		timer := na.clock.AfterFunc(na.timeout, func() {
			close(fired)
		}, "network-agent", "turn")
		defer timer.Stop()
		timeoutFired = fired
	}

	msg, err := NewMessage(MessageTypeTurnRequest, TurnRequestData{
		GameID:         view.GameID,
		Turn:           view.Turn,
		Colour:         view.Colour,
		Location:       view.Location,
		Moves:          MoveNotations(view.Moves),
		Board:          view.Board,
		TimeoutSeconds: int(na.timeout / time.Second),
	}, na.clock.Now())
	if err != nil {
		return game.Move{}, fmt.Errorf("failed to create turn request: %w", err)
	}
	if err := na.server.sendToSeat(na.colour, msg); err != nil {
		return game.Move{}, err
	}

	for {
		select {
		case r := <-na.replies:
			if r.err != nil {
				return game.Move{}, r.err
			}
			if r.turn != view.Turn {
				na.logger.Debug("Dropping stale move", "turn", r.turn, "want", view.Turn)
				continue
			}
			na.logger.Info("Received move from remote player", "turn", view.Turn, "move", r.move.Notation())
			return r.move, nil

		case <-timeoutFired:
			na.logger.Warn("Move timeout", "turn", view.Turn)
			timeoutMsg, err := NewMessage(MessageTypeTurnTimeout, TurnTimeoutData{
				Turn:   view.Turn,
				Colour: na.colour,
			}, na.clock.Now())
			if err == nil {
				na.server.broadcast(timeoutMsg)
			}
			return game.Move{}, fmt.Errorf("%s turn %d: %w", na.colour, view.Turn, game.ErrAgentTimeout)

		case <-ctx.Done():
			return game.Move{}, ctx.Err()
		}
	}
}

// HandleMove processes a move received from the remote client. Moves that
// are not legal for the pending turn are rejected and the turn stays open.
func (na *NetworkAgent) HandleMove(data MoveData) error {
	na.mu.Lock()
	pending := na.pending
	na.mu.Unlock()

	if pending == nil {
		return fmt.Errorf("%w: no turn requested for %s", game.ErrNoPendingTurn, na.colour)
	}
	if data.Turn != 0 && data.Turn != pending.Turn {
		return fmt.Errorf("move is for turn %d, current turn is %d", data.Turn, pending.Turn)
	}

	move, err := game.ParseMove(na.colour, data.Move)
	if err != nil {
		return err
	}
	if !slices.Contains(pending.Moves, move) {
		return fmt.Errorf("%w: %s", game.ErrIllegalMove, move)
	}

	select {
	case na.replies <- reply{turn: pending.Turn, move: move}:
		return nil
	default:
		return fmt.Errorf("move already submitted for turn %d", pending.Turn)
	}
}

// Disconnect aborts a pending turn because the seat's client went away
func (na *NetworkAgent) Disconnect() {
	na.mu.Lock()
	pending := na.pending
	na.mu.Unlock()
	if pending == nil {
		return
	}

	select {
	case na.replies <- reply{turn: pending.Turn, err: fmt.Errorf("%s: %w", na.colour, ErrSeatDisconnected)}:
	default:
	}
}

func (na *NetworkAgent) setPending(view *game.TurnView) {
	na.mu.Lock()
	defer na.mu.Unlock()
	na.pending = view
	if view != nil {
		// drop answers left over from an earlier turn
		select {
		case <-na.replies:
		default:
		}
	}
}
