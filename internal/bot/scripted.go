package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lox/pursuit/internal/game"
)

// ErrScriptExhausted is returned when a scripted bot is asked for more moves than it has
var ErrScriptExhausted = errors.New("script exhausted")

// ScriptedBot plays a fixed sequence of moves, one per turn
type ScriptedBot struct {
	mu    sync.Mutex
	moves []game.Move
	next  int
}

// NewScriptedBot creates a bot playing moves in order
func NewScriptedBot(moves ...game.Move) *ScriptedBot {
	return &ScriptedBot{moves: moves}
}

// ParseScript builds a scripted bot from moves in notation form
func ParseScript(colour game.Colour, script []string) (*ScriptedBot, error) {
	moves := make([]game.Move, 0, len(script))
	for i, s := range script {
		m, err := game.ParseMove(colour, s)
		if err != nil {
			return nil, fmt.Errorf("script entry %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	return NewScriptedBot(moves...), nil
}

// ChooseMove implements game.Agent
func (s *ScriptedBot) ChooseMove(ctx context.Context, view game.TurnView) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.moves) {
		return game.Move{}, fmt.Errorf("%s turn %d: %w", view.Colour, view.Turn, ErrScriptExhausted)
	}
	move := s.moves[s.next]
	s.next++
	return move, nil
}

// Remaining returns how many moves are left to play
func (s *ScriptedBot) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.moves) - s.next
}
