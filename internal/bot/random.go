package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pursuit/internal/game"
	"github.com/lox/pursuit/internal/randutil"
)

// RandomBot picks a uniformly random legal move
type RandomBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a new RandomBot instance
func NewRandomBot(rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{rng: rng, logger: logger.WithPrefix("random-bot")}
}

// ChooseMove implements game.Agent
func (r *RandomBot) ChooseMove(ctx context.Context, view game.TurnView) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	move := randutil.Pick(r.rng, view.Moves)
	r.logger.Debug("Chose move", "colour", view.Colour, "move", move, "options", len(view.Moves))
	return move, nil
}
