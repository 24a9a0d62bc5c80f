package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pursuit/internal/game"
)

// FirstBot always plays the first legal move in canonical order, which makes
// games fully reproducible without a seed.
type FirstBot struct {
	logger *log.Logger
}

// NewFirstBot creates a new FirstBot instance
func NewFirstBot(logger *log.Logger) *FirstBot {
	return &FirstBot{logger: logger.WithPrefix("first-bot")}
}

// ChooseMove implements game.Agent
func (f *FirstBot) ChooseMove(ctx context.Context, view game.TurnView) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	f.logger.Debug("Chose move", "colour", view.Colour, "move", view.Moves[0])
	return view.Moves[0], nil
}
