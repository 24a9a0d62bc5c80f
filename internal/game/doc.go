// Package game implements the rules engine for a pursuit board game played
// between one concealed evader and one or more seekers on a transport network.
//
// The main type is Game, which owns the Board and drives turn rotation, the
// evader's reveal schedule, the ticket economy and win evaluation.
//
// # Basic Usage
//
// Build a game from a validated Setup and drive it turn by turn:
//
//	g, err := game.NewGame(setup)
//	if err != nil {
//	    return err
//	}
//	req, err := g.StartRotate()
//	// pick a move from req.Moves...
//	err = g.ApplyMove(move)
//
// Or let an Engine ask an Agent for every move until the game ends:
//
//	engine := game.NewEngine(g, agents, logger, game.WithTurnTimeout(5*time.Second))
//	result, err := engine.Run(ctx)
//
// # Concealment
//
// The evader's true location is only published on reveal rounds. Between
// reveals every evader move is broadcast with its destination replaced by the
// last revealed location, and PlayerLocation reports that same value. Agents
// and spectators see the board through View, which applies the same masking.
//
// # Architecture
//
//   - LegalMoves: pure move generation for a player against a Board
//   - Evaluate: pure win evaluation, latched once by Game as a terminal Verdict
//   - Spectators: ordered, synchronous event delivery
//   - Engine: synchronous agent loop with a per-turn timeout on a quartz clock
//
// A Game is not safe for concurrent use.
package game
