package game

import "time"

// Options are options for a room
type Options struct {
	Ante          int // Default: 10
	MaxSeats      int // Default: 5
	EarlyRaiseCap int // ceiling for every bet round but the last
	FinalRaiseCap int // ceiling for the final bet round
	BotStack      int // chips a bot sits down with

	TurnTimeout          time.Duration
	StartDelay           time.Duration
	PairsRevealDelay     time.Duration
	SinglesRevealDelay   time.Duration
	ShowdownRestartDelay time.Duration
	EarlyWinRestartDelay time.Duration
	BotMinDelay          time.Duration
	BotMaxDelay          time.Duration

	// BotFillDelay is how long a lone player in a public room waits before a bot sits down
	// Zero disables bot fill.
	BotFillDelay time.Duration
}

// DefaultOptions returns the default options for a room
func DefaultOptions() Options {
	return Options{
		Ante:          10,
		MaxSeats:      5,
		EarlyRaiseCap: 50,
		FinalRaiseCap: 100,
		BotStack:      1000,

		TurnTimeout:          30 * time.Second,
		StartDelay:           3 * time.Second,
		PairsRevealDelay:     2 * time.Second,
		SinglesRevealDelay:   1500 * time.Millisecond,
		ShowdownRestartDelay: 10 * time.Second,
		EarlyWinRestartDelay: 5 * time.Second,
		BotMinDelay:          time.Second,
		BotMaxDelay:          3 * time.Second,
		BotFillDelay:         20 * time.Second,
	}
}
