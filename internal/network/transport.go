package network

import (
	"fmt"
	"strings"
)

// Transport is the kind of connection an edge represents
type Transport int

const (
	Taxi Transport = iota
	Bus
	Underground
	Ferry
)

func (t Transport) String() string {
	switch t {
	case Taxi:
		return "taxi"
	case Bus:
		return "bus"
	case Underground:
		return "underground"
	case Ferry:
		return "ferry"
	default:
		return fmt.Sprintf("transport(%d)", int(t))
	}
}

// ParseTransport converts a case-insensitive transport name
func ParseTransport(s string) (Transport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "taxi":
		return Taxi, nil
	case "bus":
		return Bus, nil
	case "underground", "tube":
		return Underground, nil
	case "ferry", "boat":
		return Ferry, nil
	default:
		return 0, fmt.Errorf("unknown transport %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (t Transport) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Transport) UnmarshalText(b []byte) error {
	parsed, err := ParseTransport(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
