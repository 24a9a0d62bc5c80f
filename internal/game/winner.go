package game

import (
	"fmt"
	"slices"
	"strings"
)

// Reason explains why a faction won
type Reason int

const (
	// Escaped means the evader survived the whole schedule
	Escaped Reason = iota
	// SeekersStuck means no seeker has a move other than pass
	SeekersStuck
	// Captured means a seeker stands on the evader's true location
	Captured
	// Cornered means the evader is to move and has nothing but pass
	Cornered
)

func (r Reason) String() string {
	switch r {
	case Escaped:
		return "escaped"
	case SeekersStuck:
		return "seekers_stuck"
	case Captured:
		return "captured"
	case Cornered:
		return "cornered"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Reason) UnmarshalText(b []byte) error {
	for _, candidate := range []Reason{Escaped, SeekersStuck, Captured, Cornered} {
		if candidate.String() == string(b) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown reason %q", b)
}

// Verdict is the outcome of a win evaluation. An empty verdict means play continues.
type Verdict struct {
	Winners []Colour
	Reasons []Reason
}

// Over reports whether anyone has won
func (v Verdict) Over() bool {
	return len(v.Winners) > 0
}

// Won reports whether colour is among the winners
func (v Verdict) Won(colour Colour) bool {
	return slices.Contains(v.Winners, colour)
}

// EvaderWon reports whether the evader is among the winners
func (v Verdict) EvaderWon() bool {
	return v.Won(Black)
}

// SeekersWon reports whether the seekers are among the winners
func (v Verdict) SeekersWon() bool {
	return slices.ContainsFunc(v.Winners, Colour.IsSeeker)
}

func (v Verdict) String() string {
	if !v.Over() {
		return "in progress"
	}
	winners := make([]string, len(v.Winners))
	for i, c := range v.Winners {
		winners[i] = c.String()
	}
	reasons := make([]string, len(v.Reasons))
	for i, r := range v.Reasons {
		reasons[i] = r.String()
	}
	return fmt.Sprintf("%s (%s)", strings.Join(winners, ", "), strings.Join(reasons, ", "))
}

func (v Verdict) clone() Verdict {
	return Verdict{Winners: slices.Clone(v.Winners), Reasons: slices.Clone(v.Reasons)}
}

// Evaluate computes who has won on b. It does not modify the board. Both
// factions may win at once, in which case the verdict holds the evader
// followed by every seeker.
func Evaluate(b *Board) Verdict {
	var v Verdict

	evaderWins := false
	if b.round == len(b.schedule) {
		evaderWins = true
		v.Reasons = append(v.Reasons, Escaped)
	}
	if allSeekersStuck(b) {
		evaderWins = true
		v.Reasons = append(v.Reasons, SeekersStuck)
	}

	seekersWin := false
	if evaderCaptured(b) {
		seekersWin = true
		v.Reasons = append(v.Reasons, Captured)
	}
	// The evader's wallet always has an entry per ticket kind, so being stuck
	// on its own turn is sufficient.
	if b.current == 0 && isStuck(b, b.evader()) {
		seekersWin = true
		v.Reasons = append(v.Reasons, Cornered)
	}

	if evaderWins {
		v.Winners = append(v.Winners, Black)
	}
	if seekersWin {
		for _, p := range b.seekers() {
			v.Winners = append(v.Winners, p.Colour)
		}
	}
	return v
}

func allSeekersStuck(b *Board) bool {
	for _, p := range b.seekers() {
		if !isStuck(b, p) {
			return false
		}
	}
	return true
}

func evaderCaptured(b *Board) bool {
	return b.occupiedBySeeker(b.evader().Location)
}
