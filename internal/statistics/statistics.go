// Package statistics aggregates the outcomes of many simulated games.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/pursuit/internal/game"
)

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed    int64 // seed the game's agents were built from (for replay)
	Winners []game.Colour
	Reasons []game.Reason
	Rounds  int // rounds the evader completed
	Turns   int // moves applied across all players
}

// EvaderWon reports whether the evader is among the winners
func (r GameResult) EvaderWon() bool {
	return game.Verdict{Winners: r.Winners}.EvaderWon()
}

// SeekersWon reports whether the seekers are among the winners
func (r GameResult) SeekersWon() bool {
	return game.Verdict{Winners: r.Winners}.SeekersWon()
}

// Statistics tracks win rates and game lengths over a series of games
type Statistics struct {
	Games      int
	EvaderWins int
	SeekerWins int
	SharedWins int // games where both factions were declared winners

	Reasons map[game.Reason]int

	SumRounds  float64
	SumRounds2 float64 // Sum of squares for variance calculation
	Rounds     []int   // Store all values for median/percentile calculation
	TotalTurns int
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++

	evader, seekers := result.EvaderWon(), result.SeekersWon()
	if evader {
		s.EvaderWins++
	}
	if seekers {
		s.SeekerWins++
	}
	if evader && seekers {
		s.SharedWins++
	}

	if s.Reasons == nil {
		s.Reasons = make(map[game.Reason]int)
	}
	for _, r := range result.Reasons {
		s.Reasons[r]++
	}

	rounds := float64(result.Rounds)
	s.SumRounds += rounds
	s.SumRounds2 += rounds * rounds
	s.Rounds = append(s.Rounds, result.Rounds)
	s.TotalTurns += result.Turns
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.EvaderWins += other.EvaderWins
	s.SeekerWins += other.SeekerWins
	s.SharedWins += other.SharedWins
	if len(other.Reasons) > 0 && s.Reasons == nil {
		s.Reasons = make(map[game.Reason]int)
	}
	for r, n := range other.Reasons {
		s.Reasons[r] += n
	}
	s.SumRounds += other.SumRounds
	s.SumRounds2 += other.SumRounds2
	s.Rounds = append(s.Rounds, other.Rounds...)
	s.TotalTurns += other.TotalTurns
}

// EvaderWinRate returns the fraction of games the evader won
func (s *Statistics) EvaderWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.EvaderWins) / float64(s.Games)
}

// SeekerWinRate returns the fraction of games the seekers won
func (s *Statistics) SeekerWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SeekerWins) / float64(s.Games)
}

// ReasonRate returns the fraction of games that ended for reason r
func (s *Statistics) ReasonRate(r game.Reason) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Reasons[r]) / float64(s.Games)
}

// EvaderWinInterval95 returns the 95% normal-approximation confidence
// interval for the evader win rate, clamped to [0, 1].
func (s *Statistics) EvaderWinInterval95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	p := s.EvaderWinRate()
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Games))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// MeanRounds returns the average number of rounds played
func (s *Statistics) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumRounds / float64(s.Games)
}

// MeanTurns returns the average number of moves per game
func (s *Statistics) MeanTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

// Variance returns the sample variance of game length in rounds
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.MeanRounds()
	return (s.SumRounds2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of game length in rounds
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(0, s.Variance()))
}

// MedianRounds returns the median game length in rounds
func (s *Statistics) MedianRounds() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the game length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	sorted := make([]int, len(s.Rounds))
	copy(sorted, s.Rounds)
	sort.Ints(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Rounds) != s.Games {
		return fmt.Errorf("rounds array length (%d) does not match games count (%d)",
			len(s.Rounds), s.Games)
	}

	// every finished game has at least one winning faction
	if decided := s.EvaderWins + s.SeekerWins - s.SharedWins; decided != s.Games {
		return fmt.Errorf("decided games (%d) does not match games count (%d)", decided, s.Games)
	}

	reasons := 0
	for _, n := range s.Reasons {
		reasons += n
	}
	if reasons < s.Games {
		return fmt.Errorf("reasons recorded (%d) fewer than games (%d)", reasons, s.Games)
	}

	return nil
}

// Report is a serialisable summary of a simulation run
type Report struct {
	Seed          int64               `json:"seed"`
	Games         int                 `json:"games"`
	EvaderWins    int                 `json:"evaderWins"`
	SeekerWins    int                 `json:"seekerWins"`
	SharedWins    int                 `json:"sharedWins"`
	EvaderWinRate float64             `json:"evaderWinRate"`
	EvaderWinLow  float64             `json:"evaderWinLow"`
	EvaderWinHigh float64             `json:"evaderWinHigh"`
	Reasons       map[game.Reason]int `json:"reasons"`
	MeanRounds    float64             `json:"meanRounds"`
	MedianRounds  float64             `json:"medianRounds"`
	StdDevRounds  float64             `json:"stdDevRounds"`
	MeanTurns     float64             `json:"meanTurns"`
}

// Report summarises the statistics for a run started from seed
func (s *Statistics) Report(seed int64) Report {
	lo, hi := s.EvaderWinInterval95()
	reasons := make(map[game.Reason]int, len(s.Reasons))
	for r, n := range s.Reasons {
		reasons[r] = n
	}
	return Report{
		Seed:          seed,
		Games:         s.Games,
		EvaderWins:    s.EvaderWins,
		SeekerWins:    s.SeekerWins,
		SharedWins:    s.SharedWins,
		EvaderWinRate: s.EvaderWinRate(),
		EvaderWinLow:  lo,
		EvaderWinHigh: hi,
		Reasons:       reasons,
		MeanRounds:    s.MeanRounds(),
		MedianRounds:  s.MedianRounds(),
		StdDevRounds:  s.StdDev(),
		MeanTurns:     s.MeanTurns(),
	}
}
