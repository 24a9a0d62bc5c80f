package game

import "slices"

// PlayerView is the public state of one player
type PlayerView struct {
	Colour   Colour
	Location int // the evader's entry holds its last revealed location
	Tickets  Tickets
}

// View is the public state of the board. It never contains the evader's true
// location.
type View struct {
	Round        int
	Schedule     []bool
	Current      Colour
	LastRevealed int
	Players      []PlayerView
}

func newView(b *Board) View {
	players := make([]PlayerView, len(b.players))
	for i, p := range b.players {
		location := p.Location
		if p.IsEvader() {
			location = b.lastRevealed
		}
		players[i] = PlayerView{Colour: p.Colour, Location: location, Tickets: p.Tickets.Clone()}
	}
	return View{
		Round:        b.round,
		Schedule:     slices.Clone(b.schedule),
		Current:      b.Current(),
		LastRevealed: b.lastRevealed,
		Players:      players,
	}
}

// Player returns the view of colour
func (v View) Player(colour Colour) (PlayerView, bool) {
	for _, p := range v.Players {
		if p.Colour == colour {
			return p, true
		}
	}
	return PlayerView{}, false
}

// RoundsLeft returns how many rounds the evader still has to survive
func (v View) RoundsLeft() int {
	return len(v.Schedule) - v.Round
}

// NextReveal returns the 1-based round of the next reveal, or 0 if none remain
func (v View) NextReveal() int {
	for i := v.Round; i < len(v.Schedule); i++ {
		if v.Schedule[i] {
			return i + 1
		}
	}
	return 0
}
