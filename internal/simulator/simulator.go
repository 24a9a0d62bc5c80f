// Package simulator plays many bot-driven games from one setup and collects
// their outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pursuit/internal/game"
	"github.com/lox/pursuit/internal/randutil"
	"github.com/lox/pursuit/internal/statistics"
)

// AgentFactory builds a fresh set of agents for one game. Agents must not be
// shared between games because games run concurrently.
type AgentFactory func(seed int64, logger *log.Logger) (map[game.Colour]game.Agent, error)

// Config holds configuration for running simulations
type Config struct {
	Setup       game.Setup
	Agents      AgentFactory
	Games       int
	Seed        int64
	Concurrency int           // games played at once; defaults to GOMAXPROCS
	TurnTimeout time.Duration // per-move limit, zero for none
	GameTimeout time.Duration // whole-game limit, zero for none
	Logger      *log.Logger
}

// Simulator runs game simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	if config.Agents == nil {
		return nil, errors.New("agent factory is required")
	}
	if err := config.Setup.Validate(); err != nil {
		return nil, err
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Logger = config.Logger.WithPrefix("simulator")
	return &Simulator{config: config}, nil
}

// Run plays every game and returns the aggregated results. Game i uses the
// i-th stream derived from the configured seed, so a run is reproducible
// regardless of concurrency. The first failing game cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	s.config.Logger.Info("Starting simulation", "games", s.config.Games, "seed", s.config.Seed, "concurrency", s.config.Concurrency)

	for i := range s.config.Games {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"games", stats.Games,
		"evaderWinRate", fmt.Sprintf("%.3f", stats.EvaderWinRate()),
		"meanRounds", fmt.Sprintf("%.2f", stats.MeanRounds()))
	return stats, nil
}

// playGame plays a single game with its own agents
func (s *Simulator) playGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	if s.config.GameTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.GameTimeout)
		defer cancel()
	}

	logger := s.config.Logger.With("seed", seed)
	g, err := game.NewGame(s.config.Setup, game.WithLogger(logger))
	if err != nil {
		return statistics.GameResult{}, err
	}

	agents, err := s.config.Agents(seed, logger)
	if err != nil {
		return statistics.GameResult{}, err
	}

	var opts []game.EngineOption
	if s.config.TurnTimeout > 0 {
		opts = append(opts, game.WithTurnTimeout(s.config.TurnTimeout))
	}
	result, err := game.NewEngine(g, agents, logger, opts...).Run(ctx)
	if err != nil {
		return statistics.GameResult{}, err
	}

	return statistics.GameResult{
		Seed:    seed,
		Winners: result.Winners,
		Reasons: result.Reasons,
		Rounds:  result.Rounds,
		Turns:   result.Turns,
	}, nil
}
