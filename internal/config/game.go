package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pursuit/internal/bot"
	"github.com/lox/pursuit/internal/game"
	"github.com/lox/pursuit/internal/network"
	"github.com/lox/pursuit/internal/randutil"
)

// Validate checks the settings that the game rules do not cover. The rules
// themselves are checked again by game.NewGame when the setup is used.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := c.TurnTimeout(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.Server.LogLevel)
	}

	if len(c.Game.Schedule) == 0 {
		if c.Game.Rounds < 1 {
			return fmt.Errorf("rounds must be positive, got %d", c.Game.Rounds)
		}
		for _, r := range c.Game.RevealRounds {
			if r < 1 || r > c.Game.Rounds {
				return fmt.Errorf("reveal round %d outside 1..%d", r, c.Game.Rounds)
			}
		}
	}

	graph, err := c.Graph()
	if err != nil {
		return err
	}
	if !graph.HasNode(c.Evader.Location) {
		return fmt.Errorf("evader location %d is not on the map", c.Evader.Location)
	}
	if err := validateAgent("evader", c.Evader.Agent, c.Evader.Script); err != nil {
		return err
	}

	if len(c.Seekers) == 0 {
		return errors.New("at least one seeker is required")
	}
	for _, s := range c.Seekers {
		colour, err := game.ParseColour(s.Colour)
		if err != nil {
			return fmt.Errorf("seeker %q: %w", s.Colour, err)
		}
		if colour.IsEvader() {
			return fmt.Errorf("seeker %q: colour is reserved for the evader", s.Colour)
		}
		if !graph.HasNode(s.Location) {
			return fmt.Errorf("seeker %q location %d is not on the map", s.Colour, s.Location)
		}
		if err := validateAgent("seeker "+s.Colour, s.Agent, s.Script); err != nil {
			return err
		}
	}
	return nil
}

func validateAgent(seat, agent string, script []string) error {
	switch {
	case agent == AgentScript:
		if len(script) == 0 {
			return fmt.Errorf("%s: script agent needs a script", seat)
		}
	case agent == AgentRemote, bot.IsBuiltin(agent):
	default:
		return fmt.Errorf("%s: unknown agent %q", seat, agent)
	}
	return nil
}

// Graph builds the transport map
func (c *Config) Graph() (*network.Graph, error) {
	g := network.NewGraph()
	for n := 1; n <= c.Map.Nodes; n++ {
		g.AddNode(n)
	}

	layers := []struct {
		transport network.Transport
		pairs     [][]int
	}{
		{network.Taxi, c.Map.Taxi},
		{network.Bus, c.Map.Bus},
		{network.Underground, c.Map.Underground},
		{network.Ferry, c.Map.Ferry},
	}
	for _, layer := range layers {
		for i, pair := range layer.pairs {
			if len(pair) != 2 {
				return nil, fmt.Errorf("map %s connection %d: expected two nodes, got %d", layer.transport, i+1, len(pair))
			}
			// 0 stands for "never revealed" in public views
			if pair[0] < 1 || pair[1] < 1 {
				return nil, fmt.Errorf("map %s connection %d: node ids start at 1, got %v", layer.transport, i+1, pair)
			}
			if err := g.AddEdge(pair[0], pair[1], layer.transport); err != nil {
				return nil, fmt.Errorf("map %s connection %d: %w", layer.transport, i+1, err)
			}
		}
	}

	if g.Len() == 0 {
		return nil, errors.New("map has no nodes")
	}
	return g, nil
}

// Schedule returns the reveal schedule, one entry per round
func (c *Config) Schedule() []bool {
	if len(c.Game.Schedule) > 0 {
		return slices.Clone(c.Game.Schedule)
	}
	schedule := make([]bool, c.Game.Rounds)
	for _, r := range c.Game.RevealRounds {
		if r >= 1 && r <= len(schedule) {
			schedule[r-1] = true
		}
	}
	return schedule
}

// Setup converts the definition into a game setup
func (c *Config) Setup() (game.Setup, error) {
	graph, err := c.Graph()
	if err != nil {
		return game.Setup{}, err
	}

	setup := game.Setup{
		Schedule: c.Schedule(),
		Network:  graph,
		Evader: game.PlayerConfig{
			Colour:   game.Black,
			Location: c.Evader.Location,
			Tickets:  c.Evader.Tickets.wallet(),
		},
	}
	for _, s := range c.Seekers {
		colour, err := game.ParseColour(s.Colour)
		if err != nil {
			return game.Setup{}, fmt.Errorf("seeker %q: %w", s.Colour, err)
		}
		setup.Seekers = append(setup.Seekers, game.PlayerConfig{
			Colour:   colour,
			Location: s.Location,
			Tickets:  s.Tickets.wallet(),
		})
	}
	return setup, nil
}

func (t *TicketsConfig) wallet() game.Tickets {
	if t == nil {
		return game.Tickets{game.Taxi: 0, game.Bus: 0, game.Underground: 0, game.Double: 0, game.Secret: 0}
	}
	return game.Tickets{
		game.Taxi:        t.Taxi,
		game.Bus:         t.Bus,
		game.Underground: t.Underground,
		game.Double:      t.Double,
		game.Secret:      t.Secret,
	}
}

// Seat pairs a colour with the agent configured for it
type Seat struct {
	Colour game.Colour
	Agent  string
	Script []string
}

// Seats lists every player's seat, evader first
func (c *Config) Seats() ([]Seat, error) {
	seats := []Seat{{Colour: game.Black, Agent: c.Evader.Agent, Script: c.Evader.Script}}
	for _, s := range c.Seekers {
		colour, err := game.ParseColour(s.Colour)
		if err != nil {
			return nil, fmt.Errorf("seeker %q: %w", s.Colour, err)
		}
		seats = append(seats, Seat{Colour: colour, Agent: s.Agent, Script: s.Script})
	}
	return seats, nil
}

// RemoteSeats returns the colours that must be filled by network clients
func (c *Config) RemoteSeats() ([]game.Colour, error) {
	seats, err := c.Seats()
	if err != nil {
		return nil, err
	}
	var remote []game.Colour
	for _, s := range seats {
		if s.Agent == AgentRemote {
			remote = append(remote, s.Colour)
		}
	}
	return remote, nil
}

// Agents creates the local agent for every seat that is not remote. Each
// random bot gets its own stream derived from seed so runs are reproducible.
func (c *Config) Agents(seed int64, logger *log.Logger) (map[game.Colour]game.Agent, error) {
	seats, err := c.Seats()
	if err != nil {
		return nil, err
	}

	agents := make(map[game.Colour]game.Agent, len(seats))
	for i, s := range seats {
		botLogger := logger.With("colour", s.Colour)
		switch s.Agent {
		case AgentRemote:
			continue
		case AgentScript:
			scripted, err := bot.ParseScript(s.Colour, s.Script)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Colour, err)
			}
			agents[s.Colour] = scripted
		default:
			agent, err := bot.New(s.Agent, randutil.New(randutil.Derive(seed, i)), botLogger)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Colour, err)
			}
			agents[s.Colour] = agent
		}
	}
	return agents, nil
}
