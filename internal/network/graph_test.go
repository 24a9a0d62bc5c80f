package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph(t *testing.T) {
	t.Run("edges are bidirectional", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddEdge(1, 2, Taxi))

		assert.Equal(t, []Edge{{From: 1, To: 2, Transport: Taxi}}, g.EdgesFrom(1))
		assert.Equal(t, []Edge{{From: 2, To: 1, Transport: Taxi}}, g.EdgesFrom(2))
		assert.Equal(t, 2, g.Len())
	})

	t.Run("parallel edges need distinct transports", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddEdge(1, 2, Taxi))
		require.NoError(t, g.AddEdge(2, 1, Bus))
		require.Error(t, g.AddEdge(1, 2, Taxi))
		require.Error(t, g.AddEdge(2, 1, Bus))

		assert.Len(t, g.EdgesFrom(1), 2)
		assert.True(t, g.HasEdge(1, 2, Bus))
		assert.False(t, g.HasEdge(1, 2, Underground))
	})

	t.Run("self loops are rejected", func(t *testing.T) {
		g := NewGraph()
		require.Error(t, g.AddEdge(3, 3, Ferry))
		assert.Equal(t, 0, g.Len())
	})

	t.Run("isolated nodes count towards length", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(7)
		g.AddNode(7)
		require.NoError(t, g.AddEdge(1, 2, Taxi))

		assert.Equal(t, 3, g.Len())
		assert.Equal(t, []int{1, 2, 7}, g.Nodes())
		assert.Empty(t, g.EdgesFrom(7))
		assert.True(t, g.HasNode(7))
		assert.False(t, g.HasNode(8))
	})

	t.Run("returned edges are copies", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddEdge(1, 2, Taxi))
		edges := g.EdgesFrom(1)
		edges[0].To = 99

		assert.Equal(t, 2, g.EdgesFrom(1)[0].To)
	})
}

func TestParseTransport(t *testing.T) {
	for name, want := range map[string]Transport{
		"taxi":        Taxi,
		"BUS":         Bus,
		"Underground": Underground,
		"tube":        Underground,
		"ferry":       Ferry,
	} {
		got, err := ParseTransport(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseTransport("rocket")
	require.Error(t, err)
}
