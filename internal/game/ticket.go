package game

import (
	"fmt"
	"strings"

	"github.com/lox/pursuit/internal/network"
)

// Ticket is a resource spent to travel along an edge
type Ticket int

const (
	Taxi Ticket = iota
	Bus
	Underground
	Double // evader only: play two moves in one turn
	Secret // evader only: hides the transport used
)

var ticketNames = [...]string{"taxi", "bus", "underground", "double", "secret"}

// AllTickets returns every ticket kind
func AllTickets() []Ticket {
	return []Ticket{Taxi, Bus, Underground, Double, Secret}
}

func (t Ticket) String() string {
	if t < 0 || int(t) >= len(ticketNames) {
		return fmt.Sprintf("ticket(%d)", int(t))
	}
	return ticketNames[t]
}

// ParseTicket converts a case-insensitive ticket name
func ParseTicket(s string) (Ticket, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range ticketNames {
		if n == name {
			return Ticket(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ticket %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (t Ticket) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(ticketNames) {
		return nil, fmt.Errorf("unknown ticket %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Ticket) UnmarshalText(b []byte) error {
	parsed, err := ParseTicket(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TicketFor returns the ticket needed to travel by the given transport. Ferries
// can only be taken with a secret ticket.
func TicketFor(transport network.Transport) Ticket {
	switch transport {
	case network.Bus:
		return Bus
	case network.Underground:
		return Underground
	case network.Ferry:
		return Secret
	default:
		return Taxi
	}
}

// Tickets is a wallet mapping ticket kinds to the number held
type Tickets map[Ticket]int

// Count returns how many tickets of kind t are held
func (w Tickets) Count(t Ticket) int {
	return w[t]
}

// Has reports whether at least n tickets of kind t are held
func (w Tickets) Has(t Ticket, n int) bool {
	return w[t] >= n
}

// Total returns the number of tickets held across all kinds
func (w Tickets) Total() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

// Clone returns an independent copy of the wallet
func (w Tickets) Clone() Tickets {
	c := make(Tickets, len(w))
	for t, n := range w {
		c[t] = n
	}
	return c
}

// missing returns the ticket kinds without an entry in the wallet
func (w Tickets) missing() []Ticket {
	var out []Ticket
	for _, t := range AllTickets() {
		if _, ok := w[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
