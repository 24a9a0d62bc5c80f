package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowTimestamps bool   // Prefix each line with the event time
	TimeFormat     string // Layout used when ShowTimestamps is set
}

// EventFormatter turns events into single human-readable lines
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04:05"
	}
	return &EventFormatter{opts: opts}
}

// Format renders any event
func (ef *EventFormatter) Format(event Event) string {
	var text string
	switch e := event.(type) {
	case RoundStartedEvent:
		text = fmt.Sprintf("*** ROUND %d ***", e.Round)
	case MoveMadeEvent:
		text = ef.FormatMove(e.Move)
	case RotationCompleteEvent:
		text = "rotation complete"
	case GameOverEvent:
		text = ef.FormatGameOver(e)
	default:
		text = event.EventType().String()
	}

	if ef.opts.ShowTimestamps {
		return fmt.Sprintf("[%s] %s", event.Timestamp().Format(ef.opts.TimeFormat), text)
	}
	return text
}

// FormatMove renders a move. Destination 0 is the evader's unknown location.
func (ef *EventFormatter) FormatMove(m Move) string {
	switch m.Kind {
	case KindPass:
		return fmt.Sprintf("%s: passes", m.Colour)
	case KindSingle:
		return fmt.Sprintf("%s: %s", m.Colour, formatLeg(m.First))
	case KindDouble:
		return fmt.Sprintf("%s: double (%s, %s)", m.Colour, formatLeg(m.First), formatLeg(m.Second))
	default:
		return m.String()
	}
}

// FormatGameOver renders the winners and the reasons they won
func (ef *EventFormatter) FormatGameOver(e GameOverEvent) string {
	winners := make([]string, len(e.Winners))
	for i, c := range e.Winners {
		winners[i] = c.String()
	}
	reasons := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		reasons[i] = r.String()
	}

	verb := "wins"
	if len(winners) != 1 {
		verb = "win"
	}
	return fmt.Sprintf("game over: %s %s (%s)", strings.Join(winners, ", "), verb, strings.Join(reasons, ", "))
}

func formatLeg(l Leg) string {
	if l.Destination == 0 {
		return fmt.Sprintf("%s to ?", l.Ticket)
	}
	return fmt.Sprintf("%s to %d", l.Ticket, l.Destination)
}

// EventLogger is a spectator that writes every event to a logger
type EventLogger struct {
	logger    *log.Logger
	formatter *EventFormatter
}

// NewEventLogger creates a spectator logging formatted events at info level
func NewEventLogger(logger *log.Logger, formatter *EventFormatter) *EventLogger {
	if formatter == nil {
		formatter = NewEventFormatter(FormattingOptions{})
	}
	return &EventLogger{logger: logger, formatter: formatter}
}

// OnEvent implements Spectator
func (el *EventLogger) OnEvent(event Event) {
	switch event.(type) {
	case RotationCompleteEvent:
		el.logger.Debug(el.formatter.Format(event), "type", event.EventType())
	default:
		el.logger.Info(el.formatter.Format(event), "type", event.EventType())
	}
}
