package game

import "errors"

var (
	// ErrInvalidSetup is returned when a game cannot be built from its configuration
	ErrInvalidSetup = errors.New("invalid setup")
	// ErrIllegalMove is returned when a move is not in the pending legal set
	ErrIllegalMove = errors.New("illegal move")
	// ErrSpectatorState is returned for duplicate or unknown spectator registrations
	ErrSpectatorState = errors.New("spectator state")
	// ErrGameOver is returned when a rotation is started after the game has ended
	ErrGameOver = errors.New("game already over")
	// ErrNoPendingTurn is returned when a move is supplied with no outstanding request
	ErrNoPendingTurn = errors.New("no pending turn")
	// ErrTurnPending is returned when a rotation is started while a request is outstanding
	ErrTurnPending = errors.New("turn already pending")
	// ErrAgentTimeout is returned when an agent does not answer within the turn timeout
	ErrAgentTimeout = errors.New("agent timed out")
	ErrUnknownColour = errors.New("unknown colour")
)
