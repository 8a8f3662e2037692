package poker

import (
	"fmt"

	"chaingang-server/pkg/deck"
)

// point bands in half points
const (
	LowBandMin  = 26
	LowBandMax  = 30
	HighBandMin = 66
	HighBandMax = 70
	BustOver    = 70
)

// PointTotal is the score of a hand in the point-total variant
// Totals are kept in half points so face cards stay integral.
type PointTotal struct {
	// Low treats every ace as one point
	Low int `json:"low"`

	// High promotes aces to eleven greedily while the total stays at or under 35
	High int `json:"high"`
}

// EvaluatePoints scores the hand
// Aces are promoted in hand order, each only if the running total stays at or under 35.
func EvaluatePoints(cards []*deck.Card) PointTotal {
	total := 0
	for _, c := range cards {
		if c != nil {
			total += c.HalfPoints()
		}
	}

	low := total
	for _, c := range cards {
		if c != nil && c.Rank == deck.Ace && total+20 <= BustOver {
			total += 20
		}
	}

	return PointTotal{Low: low, High: total}
}

// HasAlt returns true if promoting aces changes the total
func (p PointTotal) HasAlt() bool {
	return p.High != p.Low
}

// Bust returns true if even the unpromoted total is over 35
func (p PointTotal) Bust() bool {
	return p.Low > BustOver
}

// LowScore returns the total that falls in the low band
func (p PointTotal) LowScore() (int, bool) {
	for _, v := range []int{p.High, p.Low} {
		if v >= LowBandMin && v <= LowBandMax {
			return v, true
		}
	}

	return 0, false
}

// HighScore returns the total that falls in the high band
func (p PointTotal) HighScore() (int, bool) {
	for _, v := range []int{p.High, p.Low} {
		if v >= HighBandMin && v <= HighBandMax {
			return v, true
		}
	}

	return 0, false
}

// QualifiesLow is true for a total between 13 and 15
func (p PointTotal) QualifiesLow() bool {
	_, ok := p.LowScore()
	return ok
}

// QualifiesHigh is true for a total between 33 and 35
func (p PointTotal) QualifiesHigh() bool {
	_, ok := p.HighScore()
	return ok
}

// String returns the total, i.e., "2 or 12" or "14.5"
func (p PointTotal) String() string {
	if p.HasAlt() {
		return fmt.Sprintf("%s or %s", FormatHalfPoints(p.Low), FormatHalfPoints(p.High))
	}

	return FormatHalfPoints(p.Low)
}

// FormatHalfPoints renders half points as points
func FormatHalfPoints(v int) string {
	if v%2 == 0 {
		return fmt.Sprintf("%d", v/2)
	}

	return fmt.Sprintf("%d.5", v/2)
}
