package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// GameOption configures a Game during creation.
type GameOption func(*gameConfig)

type gameConfig struct {
	id         string
	clock      quartz.Clock
	logger     *log.Logger
	spectators []Spectator
}

// WithID sets the game id. By default a random UUID is used.
func WithID(id string) GameOption {
	return func(cfg *gameConfig) {
		cfg.id = id
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) GameOption {
	return func(cfg *gameConfig) {
		cfg.clock = clock
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *log.Logger) GameOption {
	return func(cfg *gameConfig) {
		cfg.logger = logger
	}
}

// WithSpectators registers spectators before the first event can be published
func WithSpectators(spectators ...Spectator) GameOption {
	return func(cfg *gameConfig) {
		cfg.spectators = append(cfg.spectators, spectators...)
	}
}

func newGameConfig(opts []GameOption) *gameConfig {
	cfg := &gameConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}
