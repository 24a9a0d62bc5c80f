package statistics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pursuit/internal/game"
)

func evaderWin(rounds int) GameResult {
	return GameResult{Winners: []game.Colour{game.Black}, Reasons: []game.Reason{game.Escaped}, Rounds: rounds, Turns: rounds * 3}
}

func seekerWin(rounds int) GameResult {
	return GameResult{Winners: []game.Colour{game.Blue, game.Red}, Reasons: []game.Reason{game.Captured}, Rounds: rounds, Turns: rounds * 3}
}

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.EvaderWinRate() != 0 {
		t.Errorf("Expected evader win rate of 0 for empty stats, got %f", stats.EvaderWinRate())
	}
	if stats.MeanRounds() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.MeanRounds())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.MedianRounds() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.MedianRounds())
	}
	lo, hi := stats.EvaderWinInterval95()
	if lo != 0 || hi != 0 {
		t.Errorf("Expected empty interval, got [%f, %f]", lo, hi)
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_Add(t *testing.T) {
	stats := &Statistics{}
	stats.Add(evaderWin(24))
	stats.Add(seekerWin(6))
	stats.Add(seekerWin(10))
	stats.Add(GameResult{
		Winners: []game.Colour{game.Black, game.Blue, game.Red},
		Reasons: []game.Reason{game.Escaped, game.Captured},
		Rounds:  24,
	})

	require.NoError(t, stats.Validate())
	assert.Equal(t, 4, stats.Games)
	assert.Equal(t, 2, stats.EvaderWins)
	assert.Equal(t, 3, stats.SeekerWins)
	assert.Equal(t, 1, stats.SharedWins)
	assert.InDelta(t, 0.5, stats.EvaderWinRate(), 1e-9)
	assert.InDelta(t, 0.75, stats.SeekerWinRate(), 1e-9)
	assert.InDelta(t, 0.5, stats.ReasonRate(game.Escaped), 1e-9)
	assert.InDelta(t, 0.75, stats.ReasonRate(game.Captured), 1e-9)
	assert.Zero(t, stats.ReasonRate(game.Cornered))

	assert.InDelta(t, 16.0, stats.MeanRounds(), 1e-9)
	assert.InDelta(t, 30.0, stats.MeanTurns(), 1e-9)
	assert.InDelta(t, 17.0, stats.MedianRounds(), 1e-9)
	assert.InDelta(t, 6.0, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 24.0, stats.Percentile(1), 1e-9)

	// rounds 6, 10, 24, 24: squared deviations 100+36+64+64 over n-1
	assert.InDelta(t, 88.0, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(88), stats.StdDev(), 1e-9)
}

func TestStatistics_Interval(t *testing.T) {
	stats := &Statistics{}
	for range 50 {
		stats.Add(evaderWin(24))
		stats.Add(seekerWin(8))
	}

	lo, hi := stats.EvaderWinInterval95()
	margin := 1.96 * math.Sqrt(0.25/100)
	assert.InDelta(t, 0.5-margin, lo, 1e-9)
	assert.InDelta(t, 0.5+margin, hi, 1e-9)

	allWins := &Statistics{}
	allWins.Add(evaderWin(24))
	lo, hi = allWins.EvaderWinInterval95()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []GameResult{evaderWin(24), seekerWin(3), seekerWin(7), evaderWin(24), seekerWin(12)}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	merged := &Statistics{}
	merged.Merge(a)
	merged.Merge(b)
	require.NoError(t, merged.Validate())
	assert.Equal(t, all.Games, merged.Games)
	assert.Equal(t, all.EvaderWins, merged.EvaderWins)
	assert.Equal(t, all.Reasons, merged.Reasons)
	assert.InDelta(t, all.MeanRounds(), merged.MeanRounds(), 1e-9)
	assert.InDelta(t, all.Variance(), merged.Variance(), 1e-9)
	assert.ElementsMatch(t, all.Rounds, merged.Rounds)
}

func TestStatistics_Validate(t *testing.T) {
	stats := &Statistics{}
	stats.Add(evaderWin(24))
	require.NoError(t, stats.Validate())

	stats.Add(GameResult{Rounds: 3})
	require.ErrorContains(t, stats.Validate(), "decided games")

	broken := &Statistics{Games: 1, EvaderWins: 1, Rounds: []int{4}}
	require.ErrorContains(t, broken.Validate(), "reasons recorded")

	broken = &Statistics{Games: 2, EvaderWins: 2, Rounds: []int{4}}
	require.ErrorContains(t, broken.Validate(), "rounds array length")
}

func TestStatistics_Report(t *testing.T) {
	stats := &Statistics{}
	stats.Add(evaderWin(24))
	stats.Add(seekerWin(4))

	report := stats.Report(99)
	assert.Equal(t, int64(99), report.Seed)
	assert.Equal(t, 2, report.Games)
	assert.InDelta(t, 0.5, report.EvaderWinRate, 1e-9)
	assert.InDelta(t, 14.0, report.MeanRounds, 1e-9)
	assert.Equal(t, map[game.Reason]int{game.Escaped: 1, game.Captured: 1}, report.Reasons)

	report.Reasons[game.Cornered] = 5
	assert.NotContains(t, stats.Reasons, game.Cornered)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reasons":{"captured":1,"escaped":1}`)
}
