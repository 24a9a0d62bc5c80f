package game

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// MoveKind distinguishes the three shapes a move can take
type MoveKind int

const (
	KindPass MoveKind = iota
	KindSingle
	KindDouble
)

func (k MoveKind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindSingle:
		return "single"
	case KindDouble:
		return "double"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Leg is one hop along the network paid for with a ticket
type Leg struct {
	Ticket      Ticket
	Destination int
}

func (l Leg) String() string {
	return fmt.Sprintf("%s to %d", l.Ticket, l.Destination)
}

// Move is a value type; two moves are equal when every field is equal.
// First is set for single and double moves, Second only for double moves.
type Move struct {
	Kind   MoveKind
	Colour Colour
	First  Leg
	Second Leg
}

// PassMove creates a move that stays put
func PassMove(colour Colour) Move {
	return Move{Kind: KindPass, Colour: colour}
}

// TicketMove creates a single hop using ticket to reach destination
func TicketMove(colour Colour, ticket Ticket, destination int) Move {
	return Move{Kind: KindSingle, Colour: colour, First: Leg{Ticket: ticket, Destination: destination}}
}

// DoubleMove creates an evader move made of two hops played back to back
func DoubleMove(colour Colour, first, second Leg) Move {
	return Move{Kind: KindDouble, Colour: colour, First: first, Second: second}
}

// FinalDestination returns where the mover ends up, or -1 for a pass
func (m Move) FinalDestination() int {
	switch m.Kind {
	case KindSingle:
		return m.First.Destination
	case KindDouble:
		return m.Second.Destination
	default:
		return -1
	}
}

func (m Move) String() string {
	switch m.Kind {
	case KindPass:
		return fmt.Sprintf("%s pass", m.Colour)
	case KindSingle:
		return fmt.Sprintf("%s %s", m.Colour, m.First)
	case KindDouble:
		return fmt.Sprintf("%s double(%s, %s)", m.Colour, m.First, m.Second)
	default:
		return fmt.Sprintf("%s %s", m.Colour, m.Kind)
	}
}

func compareLegs(a, b Leg) int {
	return cmp.Or(
		cmp.Compare(a.Destination, b.Destination),
		cmp.Compare(a.Ticket, b.Ticket),
	)
}

func compareMoves(a, b Move) int {
	return cmp.Or(
		cmp.Compare(a.Colour, b.Colour),
		cmp.Compare(a.Kind, b.Kind),
		compareLegs(a.First, b.First),
		compareLegs(a.Second, b.Second),
	)
}

// MoveSet is a set of moves; equal moves generated along different edges
// collapse into one entry.
type MoveSet map[Move]struct{}

// NewMoveSet creates a set holding moves
func NewMoveSet(moves ...Move) MoveSet {
	s := make(MoveSet, len(moves))
	for _, m := range moves {
		s.Add(m)
	}
	return s
}

// Add inserts m into the set
func (s MoveSet) Add(m Move) {
	s[m] = struct{}{}
}

// Contains reports whether m is in the set
func (s MoveSet) Contains(m Move) bool {
	_, ok := s[m]
	return ok
}

// Len returns the number of distinct moves
func (s MoveSet) Len() int {
	return len(s)
}

// OnlyPass reports whether the set holds nothing but a pass
func (s MoveSet) OnlyPass() bool {
	for m := range s {
		if m.Kind != KindPass {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (s MoveSet) Clone() MoveSet {
	return maps.Clone(s)
}

// Slice returns the moves in a stable order: by kind, then destination, then ticket
func (s MoveSet) Slice() []Move {
	moves := slices.Collect(maps.Keys(s))
	slices.SortFunc(moves, compareMoves)
	return moves
}
