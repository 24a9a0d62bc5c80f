package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/pursuit/internal/network"
)

// wallet builds a complete wallet with counts for taxi, bus, underground, double, secret
func wallet(taxi, bus, underground, double, secret int) Tickets {
	return Tickets{
		Taxi:        taxi,
		Bus:         bus,
		Underground: underground,
		Double:      double,
		Secret:      secret,
	}
}

func seekerWallet(taxi, bus, underground int) Tickets {
	return wallet(taxi, bus, underground, 0, 0)
}

type edge struct {
	a, b      int
	transport network.Transport
}

func buildGraph(t *testing.T, edges ...edge) *network.Graph {
	t.Helper()
	g := network.NewGraph()
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.a, e.b, e.transport))
	}
	return g
}

func newTestGame(t *testing.T, setup Setup, opts ...GameOption) *Game {
	t.Helper()
	g, err := NewGame(setup, opts...)
	require.NoError(t, err)
	return g
}

func newTestBoard(t *testing.T, setup Setup) *Board {
	t.Helper()
	b, err := NewBoard(setup)
	require.NoError(t, err)
	return b
}

// recorder captures every event it is sent
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

func (r *recorder) moves() []Move {
	var moves []Move
	for _, e := range r.events {
		if mm, ok := e.(MoveMadeEvent); ok {
			moves = append(moves, mm.Move)
		}
	}
	return moves
}

func (r *recorder) reset() {
	r.events = nil
}

// lineSetup is a taxi line 1-2-3-4 for the evader and a separate 10-11 taxi
// link the blue seeker shuttles along.
func lineSetup(t *testing.T, schedule ...bool) Setup {
	t.Helper()
	return Setup{
		Schedule: schedule,
		Network: buildGraph(t,
			edge{1, 2, network.Taxi},
			edge{2, 3, network.Taxi},
			edge{3, 4, network.Taxi},
			edge{10, 11, network.Taxi},
		),
		Evader:  PlayerConfig{Colour: Black, Location: 1, Tickets: wallet(10, 0, 0, 0, 0)},
		Seekers: []PlayerConfig{{Colour: Blue, Location: 10, Tickets: seekerWallet(10, 0, 0)}},
	}
}

func mustStart(t *testing.T, g *Game) TurnRequest {
	t.Helper()
	req, err := g.StartRotate()
	require.NoError(t, err)
	return req
}

func mustApply(t *testing.T, g *Game, m Move) {
	t.Helper()
	require.NoError(t, g.ApplyMove(m))
}
