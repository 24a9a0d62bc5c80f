package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pursuit/internal/game"
	"github.com/lox/pursuit/internal/randutil"
	"github.com/lox/pursuit/internal/server"
)

// ServeCmd hosts one game for remote players
type ServeCmd struct {
	Config string `arg:"" optional:"" type:"existingfile" help:"Game file (HCL); the built-in game is used when omitted"`
	Addr   string `help:"Listen address, overriding the game file's server block"`
	Seed   *int64 `help:"Seed for the local bots (random when omitted)"`
}

func (c *ServeCmd) Run(globals *Globals) error {
	logger := setupLogger(os.Stderr, globals)

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	applyLogLevel(logger, cfg, globals)

	addr := cfg.Address()
	if c.Addr != "" {
		addr = c.Addr
	}
	timeout, err := cfg.TurnTimeout()
	if err != nil {
		return err
	}
	remote, err := cfg.RemoteSeats()
	if err != nil {
		return err
	}

	seed := randutil.TimeSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}

	setup, err := cfg.Setup()
	if err != nil {
		return err
	}
	g, err := game.NewGame(setup,
		game.WithLogger(logger),
		game.WithSpectators(game.NewEventLogger(logger.WithPrefix("event"), nil)),
	)
	if err != nil {
		return err
	}

	local, err := cfg.Agents(seed, logger)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(g, remote, logger, server.WithTurnTimeout(timeout))
	if err != nil {
		return err
	}
	defer func() { _ = srv.Stop() }()

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	logger.Info("Hosting game", "game", g.ID(), "addr", addr, "remote", remote, "turnTimeout", timeout)

	var result *game.Result
	eg, ctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(ctx)
	eg.Go(func() error {
		return srv.ListenAndServe(serveCtx, addr)
	})
	eg.Go(func() error {
		defer stopServing()
		var err error
		result, err = srv.Play(ctx, local)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	fmt.Println(renderResult(result))
	return nil
}
