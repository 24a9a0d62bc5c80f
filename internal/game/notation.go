package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Notation renders a move in the compact text form accepted by ParseMove:
// "pass", "taxi:12" or "taxi:12,bus:5" for a double move.
func (m Move) Notation() string {
	switch m.Kind {
	case KindSingle:
		return legNotation(m.First)
	case KindDouble:
		return legNotation(m.First) + "," + legNotation(m.Second)
	default:
		return "pass"
	}
}

func legNotation(l Leg) string {
	return l.Ticket.String() + ":" + strconv.Itoa(l.Destination)
}

// ParseMove reads a move for colour written in Notation form
func ParseMove(colour Colour, s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "pass" {
		return PassMove(colour), nil
	}

	parts := strings.Split(s, ",")
	legs := make([]Leg, 0, len(parts))
	for _, part := range parts {
		leg, err := parseLeg(part)
		if err != nil {
			return Move{}, fmt.Errorf("move %q: %w", s, err)
		}
		legs = append(legs, leg)
	}

	switch len(legs) {
	case 1:
		return TicketMove(colour, legs[0].Ticket, legs[0].Destination), nil
	case 2:
		return DoubleMove(colour, legs[0], legs[1]), nil
	default:
		return Move{}, fmt.Errorf("move %q: expected one or two legs, got %d", s, len(legs))
	}
}

func parseLeg(s string) (Leg, error) {
	ticketName, dest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Leg{}, fmt.Errorf("leg %q: expected ticket:destination", s)
	}
	ticket, err := ParseTicket(ticketName)
	if err != nil {
		return Leg{}, err
	}
	if ticket == Double {
		return Leg{}, fmt.Errorf("leg %q: double is not a travel ticket", s)
	}
	node, err := strconv.Atoi(strings.TrimSpace(dest))
	if err != nil {
		return Leg{}, fmt.Errorf("leg %q: bad destination: %w", s, err)
	}
	return Leg{Ticket: ticket, Destination: node}, nil
}
