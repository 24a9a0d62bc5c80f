package game

import "context"

// TurnView is everything an agent is shown when asked to move
type TurnView struct {
	GameID   string
	Turn     int
	Colour   Colour
	Location int    // the mover's own true location
	Moves    []Move // legal moves in stable order, never empty
	Board    View
}

// Agent represents any entity (bot or remote client) that picks moves for a player.
// The returned move must be one of view.Moves. Implementations should return
// promptly once ctx is done.
type Agent interface {
	ChooseMove(ctx context.Context, view TurnView) (Move, error)
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(ctx context.Context, view TurnView) (Move, error)

// ChooseMove implements Agent
func (f AgentFunc) ChooseMove(ctx context.Context, view TurnView) (Move, error) {
	return f(ctx, view)
}
