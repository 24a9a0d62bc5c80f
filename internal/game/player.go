package game

import "fmt"

// PlayerConfig describes a player at setup time
type PlayerConfig struct {
	Colour   Colour
	Location int
	Tickets  Tickets
}

// Player is a participant on the board
type Player struct {
	Colour   Colour
	Location int
	Tickets  Tickets
}

func newPlayer(cfg PlayerConfig) *Player {
	return &Player{
		Colour:   cfg.Colour,
		Location: cfg.Location,
		Tickets:  cfg.Tickets.Clone(),
	}
}

// IsEvader returns true for the concealed player
func (p *Player) IsEvader() bool {
	return p.Colour.IsEvader()
}

// IsSeeker returns true for the pursuing players
func (p *Player) IsSeeker() bool {
	return p.Colour.IsSeeker()
}

func (p *Player) addTicket(t Ticket) {
	p.Tickets[t]++
}

func (p *Player) removeTicket(t Ticket) {
	if p.Tickets[t] <= 0 {
		panic(fmt.Sprintf("%s has no %s tickets to spend", p.Colour, t))
	}
	p.Tickets[t]--
}

func (p *Player) String() string {
	return fmt.Sprintf("%s@%d", p.Colour, p.Location)
}
