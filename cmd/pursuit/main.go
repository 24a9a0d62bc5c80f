package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Debug   bool `help:"Enable debug logging"`
	NoColor bool `name:"no-color" help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play one game with built-in bots and log every event"`
	Simulate SimulateCmd      `cmd:"" help:"Play many seeded games and report win rates"`
	Serve    ServeCmd         `cmd:"" help:"Host a game over WebSocket for remote players"`
	Check    CheckCmd         `cmd:"" help:"Validate a game file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pursuit"),
		kong.Description("Rules engine for a concealed-evader pursuit board game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
