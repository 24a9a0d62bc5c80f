package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pursuit/internal/network"
)

func evaluationBoard(t *testing.T, evaderTickets Tickets) *Board {
	t.Helper()
	return newTestBoard(t, Setup{
		Schedule: []bool{true, false, false},
		Network: buildGraph(t,
			edge{1, 2, network.Taxi},
			edge{3, 4, network.Taxi},
			edge{4, 5, network.Taxi},
		),
		Evader: PlayerConfig{Colour: Black, Location: 1, Tickets: evaderTickets},
		Seekers: []PlayerConfig{
			{Colour: Blue, Location: 3, Tickets: seekerWallet(4, 0, 0)},
			{Colour: Red, Location: 5, Tickets: seekerWallet(4, 0, 0)},
		},
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("nobody has won yet", func(t *testing.T) {
		b := evaluationBoard(t, wallet(4, 0, 0, 0, 0))
		v := Evaluate(b)
		assert.False(t, v.Over())
		assert.Empty(t, v.Winners)
		assert.Equal(t, "in progress", v.String())
	})

	t.Run("escaped at the end of the schedule", func(t *testing.T) {
		b := evaluationBoard(t, wallet(4, 0, 0, 0, 0))
		b.round = len(b.schedule)

		v := Evaluate(b)
		assert.Equal(t, []Colour{Black}, v.Winners)
		assert.Equal(t, []Reason{Escaped}, v.Reasons)
		assert.True(t, v.EvaderWon())
		assert.False(t, v.SeekersWon())
	})

	t.Run("captured gives every seeker the win", func(t *testing.T) {
		b := evaluationBoard(t, wallet(4, 0, 0, 0, 0))
		b.current = 1
		b.players[2].Location = 1

		v := Evaluate(b)
		assert.Equal(t, []Colour{Blue, Red}, v.Winners)
		assert.Equal(t, []Reason{Captured}, v.Reasons)
		assert.Equal(t, "blue, red (captured)", v.String())
	})

	t.Run("cornered only on the evader's turn", func(t *testing.T) {
		b := evaluationBoard(t, wallet(0, 0, 0, 0, 0))

		v := Evaluate(b)
		assert.Equal(t, []Colour{Blue, Red}, v.Winners)
		assert.Equal(t, []Reason{Cornered}, v.Reasons)

		b.current = 2
		assert.False(t, Evaluate(b).Over())
	})

	t.Run("both factions can win at once", func(t *testing.T) {
		b := evaluationBoard(t, wallet(4, 0, 0, 0, 0))
		b.round = len(b.schedule)
		b.players[1].Location = 1

		v := Evaluate(b)
		assert.Equal(t, []Colour{Black, Blue, Red}, v.Winners)
		assert.Equal(t, []Reason{Escaped, Captured}, v.Reasons)
		assert.True(t, v.EvaderWon())
		assert.True(t, v.SeekersWon())
	})

	t.Run("evaluation does not modify the board", func(t *testing.T) {
		b := evaluationBoard(t, wallet(4, 0, 0, 0, 0))
		before := newView(b)
		Evaluate(b)
		assert.Equal(t, before, newView(b))
	})
}

func TestVerdictSnapshotIsIsolated(t *testing.T) {
	g := newTestGame(t, lineSetup(t, true))
	mustStart(t, g)
	mustApply(t, g, TicketMove(Black, Taxi, 2))
	mustApply(t, g, TicketMove(Blue, Taxi, 11))

	winners := g.WinningPlayers()
	winners[0] = Red
	assert.Equal(t, []Colour{Black}, g.WinningPlayers())
}

func TestReasonText(t *testing.T) {
	for _, r := range []Reason{Escaped, SeekersStuck, Captured, Cornered} {
		text, err := r.MarshalText()
		require.NoError(t, err)

		var parsed Reason
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, r, parsed)
	}

	var r Reason
	assert.Error(t, r.UnmarshalText([]byte("bored")))
}
