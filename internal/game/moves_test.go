package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pursuit/internal/network"
)

func TestLegalMoves(t *testing.T) {
	t.Run("single taxi move on a short line", func(t *testing.T) {
		b := newTestBoard(t, Setup{
			Schedule: []bool{true, false},
			Network:  buildGraph(t, edge{1, 2, network.Taxi}, edge{2, 3, network.Bus}),
			Evader:   PlayerConfig{Colour: Black, Location: 1, Tickets: wallet(1, 0, 0, 0, 0)},
			Seekers:  []PlayerConfig{{Colour: Blue, Location: 3, Tickets: seekerWallet(0, 1, 0)}},
		})

		assert.Equal(t, NewMoveSet(TicketMove(Black, Taxi, 2)), LegalMoves(b, Black))
		assert.Equal(t, NewMoveSet(TicketMove(Blue, Bus, 2)), LegalMoves(b, Blue))
	})

	t.Run("seeker occupied nodes are never targeted", func(t *testing.T) {
		b := newTestBoard(t, Setup{
			Schedule: []bool{false, false, false},
			Network: buildGraph(t,
				edge{1, 2, network.Taxi},
				edge{1, 3, network.Taxi},
				edge{1, 4, network.Taxi},
				edge{2, 3, network.Taxi},
			),
			Evader: PlayerConfig{Colour: Black, Location: 1, Tickets: wallet(5, 0, 0, 0, 0)},
			Seekers: []PlayerConfig{
				{Colour: Blue, Location: 2, Tickets: seekerWallet(5, 0, 0)},
				{Colour: Green, Location: 3, Tickets: seekerWallet(5, 0, 0)},
			},
		})

		assert.Equal(t, NewMoveSet(TicketMove(Black, Taxi, 4)), LegalMoves(b, Black))
		// seekers may not share a node but may move onto the evader
		assert.Equal(t, NewMoveSet(TicketMove(Blue, Taxi, 1)), LegalMoves(b, Blue))
		assert.Equal(t, NewMoveSet(TicketMove(Green, Taxi, 1)), LegalMoves(b, Green))
	})

	t.Run("secret tickets duplicate every edge", func(t *testing.T) {
		b := newTestBoard(t, Setup{
			Schedule: []bool{false},
			Network: buildGraph(t,
				edge{1, 2, network.Taxi},
				edge{1, 2, network.Bus},
				edge{1, 3, network.Ferry},
			),
			Evader:  PlayerConfig{Colour: Black, Location: 1, Tickets: wallet(1, 0, 0, 0, 1)},
			Seekers: []PlayerConfig{{Colour: Blue, Location: 9, Tickets: seekerWallet(1, 1, 1)}},
		})

		want := NewMoveSet(
			TicketMove(Black, Taxi, 2),
			TicketMove(Black, Secret, 2),
			TicketMove(Black, Secret, 3),
		)
		assert.Equal(t, want, LegalMoves(b, Black))
	})

	t.Run("ferries need a secret ticket", func(t *testing.T) {
		b := newTestBoard(t, Setup{
			Schedule: []bool{false},
			Network:  buildGraph(t, edge{1, 3, network.Ferry}),
			Evader:   PlayerConfig{Colour: Black, Location: 1, Tickets: wallet(5, 5, 5, 0, 0)},
			Seekers:  []PlayerConfig{{Colour: Blue, Location: 9, Tickets: seekerWallet(1, 1, 1)}},
		})

		assert.Equal(t, NewMoveSet(PassMove(Black)), LegalMoves(b, Black))
	})

	t.Run("pass is the only move when nothing else is possible", func(t *testing.T) {
		b := newTestBoard(t, Setup{
			Schedule: []bool{false},
			Network:  buildGraph(t, edge{1, 2, network.Bus}, edge{3, 4, network.Taxi}),
			Evader:   PlayerConfig{Colour: Black, Location: 1, Tickets: wallet(0, 0, 0, 0, 0)},
			Seekers:  []PlayerConfig{{Colour: Blue, Location: 3, Tickets: seekerWallet(0, 4, 4)}},
		})

		evader := LegalMoves(b, Black)
		seeker := LegalMoves(b, Blue)
		assert.Equal(t, NewMoveSet(PassMove(Black)), evader)
		assert.Equal(t, NewMoveSet(PassMove(Blue)), seeker)
		assert.True(t, evader.OnlyPass())
	})

	t.Run("unknown colour", func(t *testing.T) {
		b := newTestBoard(t, lineSetup(t, false))
		assert.Nil(t, LegalMoves(b, Yellow))
	})
}

func TestDoubleMoves(t *testing.T) {
	setup := func(t *testing.T, schedule []bool, tickets Tickets) *Board {
		return newTestBoard(t, Setup{
			Schedule: schedule,
			Network: buildGraph(t,
				edge{1, 2, network.Taxi},
				edge{2, 3, network.Taxi},
				edge{2, 5, network.Bus},
				edge{3, 4, network.Bus},
			),
			Evader:  PlayerConfig{Colour: Black, Location: 1, Tickets: tickets},
			Seekers: []PlayerConfig{{Colour: Blue, Location: 4, Tickets: seekerWallet(0, 1, 0)}},
		})
	}

	t.Run("both legs by taxi", func(t *testing.T) {
		b := setup(t, []bool{true, false, false}, wallet(2, 0, 0, 1, 0))
		taxi2 := Leg{Ticket: Taxi, Destination: 2}

		want := NewMoveSet(
			TicketMove(Black, Taxi, 2),
			DoubleMove(Black, taxi2, Leg{Ticket: Taxi, Destination: 3}),
			DoubleMove(Black, taxi2, Leg{Ticket: Taxi, Destination: 1}),
		)
		assert.Equal(t, want, LegalMoves(b, Black))
	})

	t.Run("same ticket twice needs two", func(t *testing.T) {
		b := setup(t, []bool{true, false, false}, wallet(1, 1, 0, 1, 0))
		taxi2 := Leg{Ticket: Taxi, Destination: 2}

		want := NewMoveSet(
			TicketMove(Black, Taxi, 2),
			DoubleMove(Black, taxi2, Leg{Ticket: Bus, Destination: 5}),
		)
		assert.Equal(t, want, LegalMoves(b, Black))
	})

	t.Run("no double without room for two rounds", func(t *testing.T) {
		b := setup(t, []bool{true}, wallet(2, 0, 0, 1, 0))
		assert.Equal(t, NewMoveSet(TicketMove(Black, Taxi, 2)), LegalMoves(b, Black))
	})

	t.Run("no double without a double ticket", func(t *testing.T) {
		b := setup(t, []bool{true, false, false}, wallet(2, 0, 0, 0, 0))
		assert.Equal(t, 1, LegalMoves(b, Black).Len())
	})

	t.Run("evader may double back to its start", func(t *testing.T) {
		b := setup(t, []bool{false, false}, wallet(2, 0, 0, 1, 0))
		back := DoubleMove(Black, Leg{Ticket: Taxi, Destination: 2}, Leg{Ticket: Taxi, Destination: 1})
		assert.True(t, LegalMoves(b, Black).Contains(back))
	})

	t.Run("second leg respects seeker occupancy", func(t *testing.T) {
		b := newTestBoard(t, Setup{
			Schedule: []bool{false, false, false},
			Network:  buildGraph(t, edge{1, 2, network.Taxi}, edge{2, 3, network.Bus}),
			Evader:   PlayerConfig{Colour: Black, Location: 1, Tickets: wallet(1, 1, 0, 1, 0)},
			Seekers:  []PlayerConfig{{Colour: Blue, Location: 3, Tickets: seekerWallet(0, 1, 0)}},
		})
		assert.Equal(t, NewMoveSet(TicketMove(Black, Taxi, 2)), LegalMoves(b, Black))
	})
}

func TestMoveSetSlice(t *testing.T) {
	s := NewMoveSet(
		DoubleMove(Black, Leg{Ticket: Taxi, Destination: 2}, Leg{Ticket: Taxi, Destination: 1}),
		TicketMove(Black, Secret, 2),
		TicketMove(Black, Taxi, 3),
		TicketMove(Black, Taxi, 2),
		TicketMove(Black, Taxi, 2),
	)

	require.Equal(t, 4, s.Len())
	assert.Equal(t, []Move{
		TicketMove(Black, Taxi, 2),
		TicketMove(Black, Secret, 2),
		TicketMove(Black, Taxi, 3),
		DoubleMove(Black, Leg{Ticket: Taxi, Destination: 2}, Leg{Ticket: Taxi, Destination: 1}),
	}, s.Slice())
}
