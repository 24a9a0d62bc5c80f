package game

import (
	"slices"

	"github.com/lox/pursuit/internal/network"
)

// Board is the mutable state of one game: player positions and wallets, whose
// turn it is, the round counter and the evader's last revealed location.
type Board struct {
	network      network.Network
	players      []*Player // evader first, then seekers in setup order
	current      int
	schedule     []bool
	round        int
	lastRevealed int // 0 until the first reveal
}

// NewBoard validates setup and lays out the players
func NewBoard(setup Setup) (*Board, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}

	players := make([]*Player, 0, len(setup.Seekers)+1)
	players = append(players, newPlayer(setup.Evader))
	for _, cfg := range setup.Seekers {
		players = append(players, newPlayer(cfg))
	}

	return &Board{
		network:  setup.Network,
		players:  players,
		schedule: slices.Clone(setup.Schedule),
	}, nil
}

// Network returns the network the game is played on
func (b *Board) Network() network.Network {
	return b.network
}

// Round returns the number of rounds the evader has entered so far
func (b *Board) Round() int {
	return b.round
}

// Schedule returns a copy of the reveal schedule
func (b *Board) Schedule() []bool {
	return slices.Clone(b.schedule)
}

// LastRevealed returns the evader's last public location, 0 if never revealed
func (b *Board) LastRevealed() int {
	return b.lastRevealed
}

// Current returns the colour of the player whose turn it is
func (b *Board) Current() Colour {
	return b.players[b.current].Colour
}

// Colours returns the player colours in turn order
func (b *Board) Colours() []Colour {
	colours := make([]Colour, len(b.players))
	for i, p := range b.players {
		colours[i] = p.Colour
	}
	return colours
}

// Player returns a copy of the player with the given colour
func (b *Board) Player(colour Colour) (Player, bool) {
	p, ok := b.player(colour)
	if !ok {
		return Player{}, false
	}
	return Player{Colour: p.Colour, Location: p.Location, Tickets: p.Tickets.Clone()}, true
}

func (b *Board) player(colour Colour) (*Player, bool) {
	for _, p := range b.players {
		if p.Colour == colour {
			return p, true
		}
	}
	return nil, false
}

func (b *Board) evader() *Player {
	return b.players[0]
}

func (b *Board) seekers() []*Player {
	return b.players[1:]
}

func (b *Board) occupiedBySeeker(node int) bool {
	for _, p := range b.seekers() {
		if p.Location == node {
			return true
		}
	}
	return false
}

// isRevealRound reports whether entering the given round (0-based) reveals the evader
func (b *Board) isRevealRound(round int) bool {
	return b.schedule[round]
}

// advance moves the turn to the next player and reports whether rotation wrapped
func (b *Board) advance() (previous int, wrapped bool) {
	previous = b.current
	b.current = (b.current + 1) % len(b.players)
	return previous, b.current == 0
}
