package game

import (
	"fmt"

	"github.com/lox/pursuit/internal/network"
)

// Setup is everything needed to start a game
type Setup struct {
	// Schedule has one entry per round; true means the evader's location is
	// revealed when that round is entered.
	Schedule []bool
	Network  network.Network
	Evader   PlayerConfig
	Seekers  []PlayerConfig
}

// Validate checks the setup, failing on the first problem found
func (s Setup) Validate() error {
	if len(s.Schedule) == 0 {
		return fmt.Errorf("%w: empty schedule", ErrInvalidSetup)
	}
	if s.Network == nil || s.Network.Len() == 0 {
		return fmt.Errorf("%w: empty network", ErrInvalidSetup)
	}
	if !s.Evader.Colour.IsEvader() {
		return fmt.Errorf("%w: evader must be %s, got %s", ErrInvalidSetup, Black, s.Evader.Colour)
	}
	if len(s.Seekers) == 0 {
		return fmt.Errorf("%w: at least one seeker is required", ErrInvalidSetup)
	}

	for _, p := range s.Seekers {
		if p.Colour.IsEvader() {
			return fmt.Errorf("%w: seeker configured with evader colour %s", ErrInvalidSetup, p.Colour)
		}
	}

	all := append([]PlayerConfig{s.Evader}, s.Seekers...)
	locations := make(map[int]Colour, len(all))
	colours := make(map[Colour]bool, len(all))
	for _, p := range all {
		if !p.Colour.valid() {
			return fmt.Errorf("%w: %w: %d", ErrInvalidSetup, ErrUnknownColour, int(p.Colour))
		}
		if p.Location < 1 {
			return fmt.Errorf("%w: %s starts at %d, locations start at 1", ErrInvalidSetup, p.Colour, p.Location)
		}
		if other, ok := locations[p.Location]; ok {
			return fmt.Errorf("%w: %s and %s both start at %d", ErrInvalidSetup, other, p.Colour, p.Location)
		}
		locations[p.Location] = p.Colour
		if colours[p.Colour] {
			return fmt.Errorf("%w: duplicate colour %s", ErrInvalidSetup, p.Colour)
		}
		colours[p.Colour] = true
	}

	for _, p := range s.Seekers {
		if err := checkWallet(p); err != nil {
			return err
		}
		if p.Tickets[Double] > 0 || p.Tickets[Secret] > 0 {
			return fmt.Errorf("%w: seeker %s may not hold double or secret tickets", ErrInvalidSetup, p.Colour)
		}
	}
	return checkWallet(s.Evader)
}

func checkWallet(p PlayerConfig) error {
	if missing := p.Tickets.missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s is missing tickets %v", ErrInvalidSetup, p.Colour, missing)
	}
	for t, n := range p.Tickets {
		if n < 0 {
			return fmt.Errorf("%w: %s holds %d %s tickets", ErrInvalidSetup, p.Colour, n, t)
		}
	}
	return nil
}
