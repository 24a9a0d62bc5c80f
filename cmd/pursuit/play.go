package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/pursuit/internal/game"
	"github.com/lox/pursuit/internal/randutil"
)

// PlayCmd plays one game locally
type PlayCmd struct {
	Config      string        `arg:"" optional:"" type:"existingfile" help:"Game file (HCL); the built-in game is used when omitted"`
	Seed        *int64        `help:"Seed for the bots (random when omitted)"`
	TurnTimeout time.Duration `name:"turn-timeout" default:"0s" help:"Per-move limit for agents, 0 for none"`
	Timestamps  bool          `help:"Prefix event lines with their time"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	logger := setupLogger(os.Stderr, globals)

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	applyLogLevel(logger, cfg, globals)

	remote, err := cfg.RemoteSeats()
	if err != nil {
		return err
	}
	if len(remote) > 0 {
		return fmt.Errorf("seats %v are remote; use serve to host them", remote)
	}

	seed := randutil.TimeSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}

	setup, err := cfg.Setup()
	if err != nil {
		return err
	}

	formatter := game.NewEventFormatter(game.FormattingOptions{ShowTimestamps: c.Timestamps})
	g, err := game.NewGame(setup,
		game.WithLogger(logger),
		game.WithSpectators(game.NewEventLogger(logger.WithPrefix("event"), formatter)),
	)
	if err != nil {
		return err
	}

	agents, err := cfg.Agents(seed, logger)
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	logger.Info("Playing game", "game", g.ID(), "seed", seed)
	result, err := game.NewEngine(g, agents, logger, game.WithTurnTimeout(c.TurnTimeout)).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderResult(result))
	return nil
}
