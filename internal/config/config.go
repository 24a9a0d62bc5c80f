// Package config loads game definitions written in HCL.
//
// A file describes the transport map, the reveal schedule, every player's
// starting location and wallet, and which agent plays each colour:
//
//	game {
//	  rounds        = 12
//	  reveal_rounds = [3, 6, 9, 12]
//	}
//
//	map {
//	  taxi = [[1, 2], [2, 3]]
//	  bus  = [[1, 3]]
//	}
//
//	evader {
//	  location = 1
//	  agent    = "random"
//	}
//
//	seeker "blue" {
//	  location = 3
//	  tickets {
//	    taxi = 10
//	    bus  = 8
//	  }
//	}
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Agent kinds that are not built-in bots
const (
	AgentScript = "script" // plays the moves listed in script
	AgentRemote = "remote" // seat filled by a websocket client
)

// Config represents a complete game definition
type Config struct {
	Server  *ServerSettings `hcl:"server,block"`
	Game    *GameSettings   `hcl:"game,block"`
	Map     MapConfig       `hcl:"map,block"`
	Evader  PlayerConfig    `hcl:"evader,block"`
	Seekers []SeekerConfig  `hcl:"seeker,block"`
}

// ServerSettings contains settings used when the game is hosted
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	TurnTimeout string `hcl:"turn_timeout,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// GameSettings describes the reveal schedule. Either schedule is given
// explicitly or it is built from rounds and reveal_rounds (1-based).
type GameSettings struct {
	Rounds       int    `hcl:"rounds,optional"`
	RevealRounds []int  `hcl:"reveal_rounds,optional"`
	Schedule     []bool `hcl:"schedule,optional"`
}

// MapConfig lists the connections of each transport as node pairs
type MapConfig struct {
	Nodes       int     `hcl:"nodes,optional"` // adds isolated nodes 1..nodes
	Taxi        [][]int `hcl:"taxi,optional"`
	Bus         [][]int `hcl:"bus,optional"`
	Underground [][]int `hcl:"underground,optional"`
	Ferry       [][]int `hcl:"ferry,optional"`
}

// PlayerConfig describes one player's seat
type PlayerConfig struct {
	Location int            `hcl:"location"`
	Agent    string         `hcl:"agent,optional"`
	Script   []string       `hcl:"script,optional"`
	Tickets  *TicketsConfig `hcl:"tickets,block"`
}

// SeekerConfig is a PlayerConfig labelled with the seeker's colour
type SeekerConfig struct {
	Colour   string         `hcl:"colour,label"`
	Location int            `hcl:"location"`
	Agent    string         `hcl:"agent,optional"`
	Script   []string       `hcl:"script,optional"`
	Tickets  *TicketsConfig `hcl:"tickets,block"`
}

// TicketsConfig is a wallet; omitted kinds hold zero
type TicketsConfig struct {
	Taxi        int `hcl:"taxi,optional"`
	Bus         int `hcl:"bus,optional"`
	Underground int `hcl:"underground,optional"`
	Double      int `hcl:"double,optional"`
	Secret      int `hcl:"secret,optional"`
}

// DefaultServerSettings returns the settings used when a file has no server block
func DefaultServerSettings() *ServerSettings {
	return &ServerSettings{
		Address:     "localhost",
		Port:        8080,
		TurnTimeout: "30s",
		LogLevel:    "info",
	}
}

// DefaultEvaderTickets returns the evader's wallet when none is configured
func DefaultEvaderTickets() *TicketsConfig {
	return &TicketsConfig{Taxi: 4, Bus: 3, Underground: 3, Double: 2, Secret: 3}
}

// DefaultSeekerTickets returns a seeker's wallet when none is configured
func DefaultSeekerTickets() *TicketsConfig {
	return &TicketsConfig{Taxi: 10, Bus: 8, Underground: 4}
}

// DefaultConfig returns a small twelve node game with two seekers, playable
// without any file.
func DefaultConfig() *Config {
	cfg := &Config{
		Game: &GameSettings{
			Rounds:       12,
			RevealRounds: []int{3, 6, 9, 12},
		},
		Map: MapConfig{
			Taxi: [][]int{
				{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7},
				{7, 8}, {8, 9}, {9, 10}, {10, 11}, {11, 12}, {12, 1},
				{2, 9}, {5, 12},
			},
			Bus:         [][]int{{1, 4}, {4, 7}, {7, 10}, {10, 1}},
			Underground: [][]int{{1, 7}, {4, 10}},
			Ferry:       [][]int{{3, 9}},
		},
		Evader: PlayerConfig{Location: 6, Agent: "random"},
		Seekers: []SeekerConfig{
			{Colour: "blue", Location: 1, Agent: "random"},
			{Colour: "green", Location: 9, Agent: "random"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads a game definition from an HCL file
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes a game definition from HCL source and fills in defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultServerSettings()
	if c.Server == nil {
		c.Server = defaults
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Port
	}
	if c.Server.TurnTimeout == "" {
		c.Server.TurnTimeout = defaults.TurnTimeout
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaults.LogLevel
	}

	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.Rounds == 0 && len(c.Game.Schedule) == 0 {
		c.Game.Rounds = 24
		if c.Game.RevealRounds == nil {
			c.Game.RevealRounds = []int{3, 8, 13, 18, 24}
		}
	}

	if c.Evader.Agent == "" {
		c.Evader.Agent = "random"
	}
	if c.Evader.Tickets == nil {
		c.Evader.Tickets = DefaultEvaderTickets()
	}
	for i := range c.Seekers {
		if c.Seekers[i].Agent == "" {
			c.Seekers[i].Agent = "random"
		}
		if c.Seekers[i].Tickets == nil {
			c.Seekers[i].Tickets = DefaultSeekerTickets()
		}
	}
}

// TurnTimeout returns the parsed per-turn timeout for hosted games
func (c *Config) TurnTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.TurnTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid turn_timeout %q: %w", c.Server.TurnTimeout, err)
	}
	return d, nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
