package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/pursuit/internal/config"
	"github.com/lox/pursuit/internal/game"
)

// CheckCmd validates a game file without playing it
type CheckCmd struct {
	Config string `arg:"" type:"existingfile" help:"Game file (HCL)"`
}

func (c *CheckCmd) Run(globals *Globals) error {
	setupLogger(os.Stderr, globals)
	return checkGameFile(os.Stdout, c.Config)
}

// checkGameFile loads path, builds the game it describes and writes a short
// summary to w.
func checkGameFile(w io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	setup, err := cfg.Setup()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	g, err := game.NewGame(setup)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	seats, err := cfg.Seats()
	if err != nil {
		return err
	}
	agents := make([]string, len(seats))
	for i, s := range seats {
		agents[i] = fmt.Sprintf("%s=%s", s.Colour, s.Agent)
	}

	reveals := 0
	for _, reveal := range g.Rounds() {
		if reveal {
			reveals++
		}
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", okStyle.Render("OK"), path)
	_, _ = fmt.Fprintf(w, "  nodes:   %d\n", g.Network().Len())
	_, _ = fmt.Fprintf(w, "  rounds:  %d (%d reveals)\n", len(g.Rounds()), reveals)
	_, _ = fmt.Fprintf(w, "  players: %s\n", strings.Join(agents, ", "))
	return nil
}
