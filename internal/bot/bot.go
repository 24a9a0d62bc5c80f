// Package bot provides simple built-in agents. They pick among legal moves
// without any strategy and exist to drive simulations, fill empty seats on the
// server and replay scripted games.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pursuit/internal/game"
)

// Built-in bot names
const (
	Random = "random"
	First  = "first"
)

// Names returns the names accepted by New
func Names() []string {
	return []string{First, Random}
}

// New creates a built-in bot by name
func New(name string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch name {
	case Random:
		if rng == nil {
			return nil, fmt.Errorf("bot %q needs a random source", name)
		}
		return NewRandomBot(rng, logger), nil
	case First:
		return NewFirstBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", name, Names())
	}
}

// IsBuiltin reports whether name is a bot New can create
func IsBuiltin(name string) bool {
	return slices.Contains(Names(), name)
}
