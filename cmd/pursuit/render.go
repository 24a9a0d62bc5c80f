package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pursuit/internal/game"
	"github.com/lox/pursuit/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	evaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	seekerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))
)

func winnerStyle(v game.Verdict) lipgloss.Style {
	if v.EvaderWon() && !v.SeekersWon() {
		return evaderStyle
	}
	return seekerStyle
}

// renderResult summarises a finished game
func renderResult(r *game.Result) string {
	verdict := game.Verdict{Winners: r.Winners, Reasons: r.Reasons}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Game over"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Game:   "), r.GameID)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Result: "), winnerStyle(verdict).Render(verdict.String()))
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Rounds: "), r.Rounds)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Moves:  "), r.Turns)
	return b.String()
}

// renderStatistics summarises a simulation run
func renderStatistics(s *statistics.Statistics, seed int64) string {
	lo, hi := s.EvaderWinInterval95()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Simulation"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d (seed %d)\n", labelStyle.Render("Games:        "), s.Games, seed)
	fmt.Fprintf(&b, "%s %s  [%.1f%%, %.1f%%]\n", labelStyle.Render("Evader wins:  "),
		evaderStyle.Render(fmt.Sprintf("%5.1f%%", 100*s.EvaderWinRate())), 100*lo, 100*hi)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Seeker wins:  "),
		seekerStyle.Render(fmt.Sprintf("%5.1f%%", 100*s.SeekerWinRate())))
	if s.SharedWins > 0 {
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Shared wins:  "), s.SharedWins)
	}
	fmt.Fprintf(&b, "%s %.2f (median %.1f, sd %.2f)\n", labelStyle.Render("Rounds:       "),
		s.MeanRounds(), s.MedianRounds(), s.StdDev())
	fmt.Fprintf(&b, "%s %.2f\n", labelStyle.Render("Moves/game:   "), s.MeanTurns())

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Reasons"))
	b.WriteString("\n")
	for _, r := range []game.Reason{game.Escaped, game.Captured, game.Cornered, game.SeekersStuck} {
		fmt.Fprintf(&b, "  %-14s %6d  %5.1f%%\n", r, s.Reasons[r], 100*s.ReasonRate(r))
	}
	return b.String()
}
