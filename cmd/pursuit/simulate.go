package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pursuit/internal/fileutil"
	"github.com/lox/pursuit/internal/game"
	"github.com/lox/pursuit/internal/randutil"
	"github.com/lox/pursuit/internal/simulator"
)

// SimulateCmd plays many games with the bots named in the game file
type SimulateCmd struct {
	Config      string        `arg:"" optional:"" type:"existingfile" help:"Game file (HCL); the built-in game is used when omitted"`
	Games       int           `short:"n" default:"1000" help:"Number of games to play"`
	Seed        *int64        `help:"Base seed; each game derives its own (random when omitted)"`
	Concurrency int           `short:"j" default:"0" help:"Games played at once, 0 for one per CPU"`
	TurnTimeout time.Duration `name:"turn-timeout" default:"0s" help:"Per-move limit, 0 for none"`
	GameTimeout time.Duration `name:"game-timeout" default:"30s" help:"Whole-game limit, 0 for none"`
	Output      string        `short:"o" type:"path" help:"Also write the report as JSON to this file"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	logger := setupLogger(os.Stderr, globals)
	if !globals.Debug {
		logger.SetLevel(log.WarnLevel)
	}

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	remote, err := cfg.RemoteSeats()
	if err != nil {
		return err
	}
	if len(remote) > 0 {
		return fmt.Errorf("seats %v are remote; simulations need a bot for every seat", remote)
	}

	setup, err := cfg.Setup()
	if err != nil {
		return err
	}

	seed := randutil.TimeSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}

	sim, err := simulator.New(simulator.Config{
		Setup: setup,
		Agents: func(seed int64, logger *log.Logger) (map[game.Colour]game.Agent, error) {
			return cfg.Agents(seed, logger)
		},
		Games:       c.Games,
		Seed:        seed,
		Concurrency: c.Concurrency,
		TurnTimeout: c.TurnTimeout,
		GameTimeout: c.GameTimeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderStatistics(stats, seed))
	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, stats.Report(seed), 0o644); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	fmt.Printf("%s %s\n", okStyle.Render("Completed in"), time.Since(start).Round(time.Millisecond))
	return nil
}
