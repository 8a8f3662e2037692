package game

import (
	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
)

// Side is the part of the pot an award was paid from
type Side string

// Side constants
const (
	SideHigh Side = "high"
	SideLow  Side = "low"
	SidePot  Side = "pot"
)

// Award is a payout to a single seat
type Award struct {
	Side        Side   `json:"side"`
	SeatID      string `json:"seatId"`
	DisplayName string `json:"displayName"`
	Amount      int    `json:"amount"`
	Hand        string `json:"hand,omitempty"`
}

// RevealedHand is a contender's hand shown at showdown
type RevealedHand struct {
	SeatID      string       `json:"seatId"`
	DisplayName string       `json:"displayName"`
	Declaration Declaration  `json:"declaration,omitempty"`
	Cards       []*deck.Card `json:"cards"`
	HighHand    string       `json:"highHand,omitempty"`
	LowHand     string       `json:"lowHand,omitempty"`
	LowCards    []*deck.Card `json:"lowCards,omitempty"`
}

// Result is the outcome of a hand
type Result struct {
	Awards []Award `json:"awards"`

	// Unclaimed is removed from play because no one won that half
	Unclaimed int `json:"unclaimed,omitempty"`

	// Carried stays in the pot for the next hand
	Carried int `json:"carried,omitempty"`

	EarlyWin bool           `json:"earlyWin,omitempty"`
	Hands    []RevealedHand `json:"hands,omitempty"`
	Factor   *deck.Card     `json:"factor,omitempty"`
}

// Winner returns the award for the side
func (r *Result) Winner(side Side) (Award, bool) {
	for _, a := range r.Awards {
		if a.Side == side {
			return a, true
		}
	}

	return Award{}, false
}

// splitPot returns the low and high halves, any odd chip goes high
func splitPot(pot int) (low, high int) {
	low = pot / 2
	return low, pot - low
}

// best returns the best candidate by compare, the first-seated candidate wins exact ties
func best(candidates []*Seat, compare func(a, b *Seat) int) *Seat {
	var winner *Seat
	for _, s := range candidates {
		if winner == nil || compare(s, winner) > 0 {
			winner = s
		}
	}

	return winner
}

// contenders returns the seats still in the hand in seat order
func (r *Room) contenders() []*Seat {
	seats := make([]*Seat, 0, len(r.seats))
	for _, s := range r.seats {
		if !s.Folded {
			seats = append(seats, s)
		}
	}

	return seats
}

// payHalf pays a half of the pot, or logs that the half had no taker
func (r *Room) payHalf(res *Result, side Side, winner *Seat, amount int, hand string) {
	if winner == nil {
		return
	}

	r.award(winner, amount)
	res.Awards = append(res.Awards, Award{
		Side:        side,
		SeatID:      winner.ID,
		DisplayName: winner.DisplayName,
		Amount:      amount,
		Hand:        hand,
	})

	label := "HIGH"
	if side == SideLow {
		label = "LOW"
	} else if side == SidePot {
		label = "POT"
	}

	r.logf(playable.LogWin, winner, "%s ($%d): %s, %s", label, amount, winner.DisplayName, hand)
}

// removeUnclaimed takes an unwon half out of play
func (r *Room) removeUnclaimed(res *Result, label string, amount int) {
	r.pot -= amount
	res.Unclaimed += amount
	r.logf(playable.LogImportant, nil, "%s POT: No winner.", label)
}

// recordOutcome mirrors the win, and optionally losses, to the ledger
func (r *Room) recordOutcome(high, low *Seat, recordLosses bool) {
	primary := high
	if primary == nil {
		primary = low
	}
	r.recordWin(primary)

	if !recordLosses {
		return
	}

	for _, s := range r.contenders() {
		if s != high && s != low {
			r.recordLoss(s)
		}
	}
}
