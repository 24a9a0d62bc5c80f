// Package network holds the transport network a game is played on.
//
// The rules engine only ever asks one question of a network: which edges leave
// a given node. Anything satisfying Network can be used; Graph is the
// in-memory implementation built from configuration files and tests.
package network

import (
	"fmt"
	"slices"
)

// Edge is a directed view of a connection between two nodes
type Edge struct {
	From      int
	To        int
	Transport Transport
}

// Network is the read-only graph consumed by the rules engine
type Network interface {
	// Len returns the number of nodes
	Len() int
	// EdgesFrom returns every edge leaving node
	EdgesFrom(node int) []Edge
}

// Graph is an undirected multigraph of numbered nodes. Two nodes may be joined
// by several edges as long as their transports differ.
type Graph struct {
	edges map[int][]Edge
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{edges: make(map[int][]Edge)}
}

// AddNode adds a node with no connections. Adding an existing node is a no-op.
func (g *Graph) AddNode(node int) {
	if _, ok := g.edges[node]; !ok {
		g.edges[node] = nil
	}
}

// AddEdge adds a bidirectional connection between two nodes
func (g *Graph) AddEdge(a, b int, transport Transport) error {
	if a == b {
		return fmt.Errorf("edge %d-%d: self loops are not allowed", a, b)
	}
	if g.HasEdge(a, b, transport) {
		return fmt.Errorf("edge %d-%d (%s) already exists", a, b, transport)
	}
	g.edges[a] = append(g.edges[a], Edge{From: a, To: b, Transport: transport})
	g.edges[b] = append(g.edges[b], Edge{From: b, To: a, Transport: transport})
	return nil
}

// HasEdge reports whether a and b are joined by the given transport
func (g *Graph) HasEdge(a, b int, transport Transport) bool {
	for _, e := range g.edges[a] {
		if e.To == b && e.Transport == transport {
			return true
		}
	}
	return false
}

// HasNode reports whether node belongs to the graph
func (g *Graph) HasNode(node int) bool {
	_, ok := g.edges[node]
	return ok
}

// Len implements Network
func (g *Graph) Len() int {
	return len(g.edges)
}

// EdgesFrom implements Network. The returned slice is a copy.
func (g *Graph) EdgesFrom(node int) []Edge {
	return slices.Clone(g.edges[node])
}

// Nodes returns all nodes in ascending order
func (g *Graph) Nodes() []int {
	nodes := make([]int, 0, len(g.edges))
	for n := range g.edges {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}
