package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pursuit/internal/network"
)

// TurnRequest is an outstanding request for the current player to move
type TurnRequest struct {
	Turn     int // sequence number, starting at 1
	Colour   Colour
	Location int // the mover's true location
	Moves    MoveSet
}

func (r TurnRequest) clone() TurnRequest {
	r.Moves = r.Moves.Clone()
	return r
}

// Game drives one game from setup to a verdict. The evader moves first in
// every rotation, followed by each seeker in setup order.
type Game struct {
	id         string
	board      *Board
	spectators Spectators
	clock      quartz.Clock
	logger     *log.Logger

	pending *TurnRequest
	turns   int
	verdict *Verdict // set once, when the game is found to be over
}

// NewGame validates setup and creates a game ready for its first rotation
func NewGame(setup Setup, opts ...GameOption) (*Game, error) {
	board, err := NewBoard(setup)
	if err != nil {
		return nil, err
	}

	cfg := newGameConfig(opts)
	g := &Game{
		id:     cfg.id,
		board:  board,
		clock:  cfg.clock,
		logger: cfg.logger.WithPrefix("game").With("game", cfg.id),
	}
	for _, s := range cfg.spectators {
		if err := g.spectators.Register(s); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ID returns the game id
func (g *Game) ID() string {
	return g.id
}

// StartRotate requests the current player's move. It fails with ErrGameOver
// once a verdict exists and with ErrTurnPending while a request is unanswered.
func (g *Game) StartRotate() (TurnRequest, error) {
	if g.verdict != nil {
		return TurnRequest{}, fmt.Errorf("%w: %s", ErrGameOver, g.verdict)
	}
	// Mid-rotation the board is only judged once the rotation wraps.
	if g.pending != nil {
		return TurnRequest{}, fmt.Errorf("%w: %s to move", ErrTurnPending, g.pending.Colour)
	}
	if v := Evaluate(g.board); v.Over() {
		g.finish(v)
		return TurnRequest{}, fmt.Errorf("%w: %s", ErrGameOver, g.verdict)
	}
	return g.requestTurn(), nil
}

// Pending returns the outstanding turn request, if any
func (g *Game) Pending() (TurnRequest, bool) {
	if g.pending == nil {
		return TurnRequest{}, false
	}
	return g.pending.clone(), true
}

// ApplyMove plays move for the pending request. When the rotation has not
// wrapped back to the evader the next player's request is opened immediately;
// otherwise the game either ends or waits for the next StartRotate. Once the
// verdict is recorded every move fails with ErrGameOver.
func (g *Game) ApplyMove(move Move) error {
	if g.verdict != nil {
		return fmt.Errorf("%w: %s", ErrGameOver, g.verdict)
	}
	if g.pending == nil {
		return ErrNoPendingTurn
	}
	if !g.pending.Moves.Contains(move) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}
	g.pending = nil

	previous, wrapped := g.board.advance()
	mover := g.board.players[previous]
	g.logger.Debug("Applying move", "move", move, "round", g.board.round)

	switch move.Kind {
	case KindPass:
		if mover.IsEvader() {
			g.board.round++
			g.publish(NewRoundStartedEvent(g.board.round, g.clock.Now()))
		}
		g.publish(NewMoveMadeEvent(move, g.clock.Now()))
	case KindSingle:
		g.applySingle(mover, move.First)
	case KindDouble:
		g.applyDouble(mover, move)
	default:
		panic(fmt.Sprintf("unhandled move kind %s", move.Kind))
	}

	if !wrapped {
		g.requestTurn()
		return nil
	}

	if v := Evaluate(g.board); v.Over() {
		g.finish(v)
		g.publish(NewGameOverEvent(v, g.clock.Now()))
		return nil
	}
	g.publish(NewRotationCompleteEvent(g.clock.Now()))
	return nil
}

func (g *Game) applySingle(mover *Player, leg Leg) {
	mover.Location = leg.Destination

	if mover.IsSeeker() {
		mover.removeTicket(leg.Ticket)
		g.board.evader().addTicket(leg.Ticket)
		g.publish(NewMoveMadeEvent(TicketMove(mover.Colour, leg.Ticket, leg.Destination), g.clock.Now()))
		return
	}

	mover.removeTicket(leg.Ticket)
	reveal := g.board.isRevealRound(g.board.round)
	g.board.round++

	public := leg
	if reveal {
		g.board.lastRevealed = leg.Destination
	} else {
		public.Destination = g.board.lastRevealed
	}
	g.publish(NewRoundStartedEvent(g.board.round, g.clock.Now()))
	g.publish(NewMoveMadeEvent(TicketMove(mover.Colour, public.Ticket, public.Destination), g.clock.Now()))
}

func (g *Game) applyDouble(mover *Player, move Move) {
	first, second := move.First, move.Second
	revealFirst := g.board.isRevealRound(g.board.round)
	revealSecond := g.board.isRevealRound(g.board.round + 1)

	switch {
	case revealFirst && !revealSecond:
		second.Destination = first.Destination
	case !revealFirst && revealSecond:
		first.Destination = g.board.lastRevealed
	case !revealFirst && !revealSecond:
		first.Destination = g.board.lastRevealed
		second.Destination = g.board.lastRevealed
	}

	mover.removeTicket(Double)
	g.publish(NewMoveMadeEvent(DoubleMove(mover.Colour, first, second), g.clock.Now()))
	g.applySingle(mover, move.First)
	g.applySingle(mover, move.Second)
}

func (g *Game) requestTurn() TurnRequest {
	p := g.board.players[g.board.current]
	g.turns++
	req := TurnRequest{
		Turn:     g.turns,
		Colour:   p.Colour,
		Location: p.Location,
		Moves:    legalMoves(g.board, p),
	}
	g.pending = &req
	g.logger.Debug("Turn requested", "colour", p.Colour, "turn", req.Turn, "moves", req.Moves.Len())
	return req.clone()
}

func (g *Game) finish(v Verdict) {
	if g.verdict != nil {
		return
	}
	snapshot := v.clone()
	g.verdict = &snapshot
	g.logger.Info("Game over", "winners", v.Winners, "reasons", v.Reasons, "round", g.board.round)
}

func (g *Game) publish(event Event) {
	g.spectators.Publish(event)
}

// RegisterSpectator adds a spectator
func (g *Game) RegisterSpectator(s Spectator) error {
	return g.spectators.Register(s)
}

// UnregisterSpectator removes a spectator
func (g *Game) UnregisterSpectator(s Spectator) error {
	return g.spectators.Unregister(s)
}

// Spectators returns the registered spectators in delivery order
func (g *Game) Spectators() []Spectator {
	return g.spectators.All()
}

// Players returns the player colours in turn order
func (g *Game) Players() []Colour {
	return g.board.Colours()
}

// CurrentPlayer returns the colour of the player to move
func (g *Game) CurrentPlayer() Colour {
	return g.board.Current()
}

// CurrentRound returns the number of rounds entered so far
func (g *Game) CurrentRound() int {
	return g.board.round
}

// Rounds returns a copy of the reveal schedule
func (g *Game) Rounds() []bool {
	return g.board.Schedule()
}

// Network returns the network the game is played on
func (g *Game) Network() network.Network {
	return g.board.network
}

// Turns returns how many turn requests have been issued
func (g *Game) Turns() int {
	return g.turns
}

// PlayerLocation returns the public location of colour. For the evader this is
// the last revealed location, 0 before the first reveal.
func (g *Game) PlayerLocation(colour Colour) (int, bool) {
	p, ok := g.board.player(colour)
	if !ok {
		return 0, false
	}
	if p.IsEvader() {
		return g.board.lastRevealed, true
	}
	return p.Location, true
}

// PlayerTickets returns how many tickets of kind ticket colour holds
func (g *Game) PlayerTickets(colour Colour, ticket Ticket) (int, bool) {
	p, ok := g.board.player(colour)
	if !ok {
		return 0, false
	}
	return p.Tickets.Count(ticket), true
}

// Verdict returns the terminal verdict, or an empty verdict while play
// continues. Positions inside a rotation are not judged.
func (g *Game) Verdict() Verdict {
	if g.verdict != nil {
		return g.verdict.clone()
	}
	return Verdict{}
}

// WinningPlayers returns the colours that have won, empty while play continues
func (g *Game) WinningPlayers() []Colour {
	return g.Verdict().Winners
}

// IsGameOver reports whether anyone has won
func (g *Game) IsGameOver() bool {
	return g.Verdict().Over()
}

// Finished reports whether the terminal verdict has been recorded
func (g *Game) Finished() bool {
	return g.verdict != nil
}

// View returns the public state of the board
func (g *Game) View() View {
	return newView(g.board)
}

// TurnView bundles what an agent needs to answer req
func (g *Game) TurnView(req TurnRequest) TurnView {
	return TurnView{
		GameID:   g.id,
		Turn:     req.Turn,
		Colour:   req.Colour,
		Location: req.Location,
		Moves:    req.Moves.Slice(),
		Board:    g.View(),
	}
}
