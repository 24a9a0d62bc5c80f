package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Engine handles the game loop shared between interactive play, simulation
// and the server: it asks each player's agent for a move until the game ends.
type Engine struct {
	game        *Game
	agents      map[Colour]Agent
	logger      *log.Logger
	clock       quartz.Clock
	turnTimeout time.Duration
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithTurnTimeout bounds how long an agent may take to choose a move. Zero
// means agents may take as long as the context allows.
func WithTurnTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.turnTimeout = d
	}
}

// WithEngineClock sets the clock used for turn timeouts. It defaults to the game's clock.
func WithEngineClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates an engine driving g with one agent per colour
func NewEngine(g *Game, agents map[Colour]Agent, logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		game:   g,
		agents: agents,
		logger: logger.WithPrefix("engine").With("game", g.ID()),
		clock:  g.clock,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result summarises a finished game
type Result struct {
	GameID   string
	Winners  []Colour
	Reasons  []Reason
	Rounds   int
	Turns    int
	Duration time.Duration
}

// EvaderWon reports whether the evader is among the winners
func (r *Result) EvaderWon() bool {
	return Verdict{Winners: r.Winners}.EvaderWon()
}

// SeekersWon reports whether the seekers are among the winners
func (r *Result) SeekersWon() bool {
	return Verdict{Winners: r.Winners}.SeekersWon()
}

// Run plays rotations until the game is over. An agent error, timeout or
// cancelled context stops the game with the current request left pending; a
// later Run resumes from that request.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := e.clock.Now()
	for _, colour := range e.game.Players() {
		if _, ok := e.agents[colour]; !ok {
			return nil, fmt.Errorf("no agent for %s", colour)
		}
	}

	e.logger.Info("Starting game", "players", e.game.Players(), "rounds", len(e.game.Rounds()))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, resuming := e.game.Pending(); !resuming {
			if _, err := e.game.StartRotate(); err != nil {
				if errors.Is(err, ErrGameOver) {
					return e.result(start), nil
				}
				return nil, err
			}
		}

		for {
			req, ok := e.game.Pending()
			if !ok {
				break
			}
			move, err := e.decide(ctx, req)
			if err != nil {
				return nil, err
			}
			if err := e.game.ApplyMove(move); err != nil {
				return nil, fmt.Errorf("%s: %w", req.Colour, err)
			}
		}
	}
}

// Step plays a single turn, starting a rotation if none is in progress. It
// returns ErrGameOver once there is nothing left to play.
func (e *Engine) Step(ctx context.Context) error {
	req, ok := e.game.Pending()
	if !ok {
		var err error
		if req, err = e.game.StartRotate(); err != nil {
			return err
		}
	}
	move, err := e.decide(ctx, req)
	if err != nil {
		return err
	}
	if err := e.game.ApplyMove(move); err != nil {
		return fmt.Errorf("%s: %w", req.Colour, err)
	}
	return nil
}

func (e *Engine) decide(ctx context.Context, req TurnRequest) (Move, error) {
	agent, ok := e.agents[req.Colour]
	if !ok {
		return Move{}, fmt.Errorf("no agent for %s", req.Colour)
	}
	view := e.game.TurnView(req)

	if e.turnTimeout <= 0 {
		move, err := agent.ChooseMove(ctx, view)
		if err != nil {
			return Move{}, fmt.Errorf("%s: %w", req.Colour, err)
		}
		return move, nil
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	timer := e.clock.AfterFunc(e.turnTimeout, func() {
		cancel(ErrAgentTimeout)
	}, "engine", "turn")
	defer timer.Stop()

	type decision struct {
		move Move
		err  error
	}
	done := make(chan decision, 1)
	go func() {
		move, err := agent.ChooseMove(ctx, view)
		done <- decision{move: move, err: err}
	}()

	select {
	case d := <-done:
		if d.err != nil {
			if errors.Is(context.Cause(ctx), ErrAgentTimeout) {
				return Move{}, e.timedOut(req)
			}
			return Move{}, fmt.Errorf("%s: %w", req.Colour, d.err)
		}
		return d.move, nil
	case <-ctx.Done():
		if errors.Is(context.Cause(ctx), ErrAgentTimeout) {
			return Move{}, e.timedOut(req)
		}
		return Move{}, context.Cause(ctx)
	}
}

func (e *Engine) timedOut(req TurnRequest) error {
	e.logger.Warn("Agent timed out", "colour", req.Colour, "turn", req.Turn, "timeout", e.turnTimeout)
	return fmt.Errorf("%s after %s: %w", req.Colour, e.turnTimeout, ErrAgentTimeout)
}

func (e *Engine) result(start time.Time) *Result {
	v := e.game.Verdict()
	r := &Result{
		GameID:   e.game.ID(),
		Winners:  v.Winners,
		Reasons:  v.Reasons,
		Rounds:   e.game.CurrentRound(),
		Turns:    e.game.Turns(),
		Duration: e.clock.Since(start),
	}
	e.logger.Info("Game finished", "winners", r.Winners, "reasons", r.Reasons, "rounds", r.Rounds, "turns", r.Turns)
	return r
}
