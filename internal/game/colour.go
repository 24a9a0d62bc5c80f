package game

import (
	"fmt"
	"strings"
)

// Colour identifies a player. Black is the evader; every other colour is a seeker.
type Colour int

const (
	Black Colour = iota
	Blue
	Green
	Red
	White
	Yellow
)

var colourNames = [...]string{"black", "blue", "green", "red", "white", "yellow"}

// Colours returns every colour, evader first
func Colours() []Colour {
	return []Colour{Black, Blue, Green, Red, White, Yellow}
}

func (c Colour) String() string {
	if c < 0 || int(c) >= len(colourNames) {
		return fmt.Sprintf("colour(%d)", int(c))
	}
	return colourNames[c]
}

// IsEvader reports whether c is the evader colour
func (c Colour) IsEvader() bool {
	return c == Black
}

// IsSeeker reports whether c is one of the seeker colours
func (c Colour) IsSeeker() bool {
	return c != Black && c.valid()
}

func (c Colour) valid() bool {
	return c >= 0 && int(c) < len(colourNames)
}

// ParseColour converts a case-insensitive colour name
func ParseColour(s string) (Colour, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colourNames {
		if n == name {
			return Colour(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColour, s)
}

// MarshalText implements encoding.TextMarshaler
func (c Colour) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColour, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Colour) UnmarshalText(b []byte) error {
	parsed, err := ParseColour(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
