package poker

import (
	"sort"

	"chaingang-server/pkg/deck"
)

// LowHand is an ace-to-five low hand
// Ranks are ace-low and sorted from highest to lowest. The zero value is "no low".
type LowHand struct {
	Valid bool  `json:"valid"`
	Ranks []int `json:"ranks"`
}

func (l LowHand) String() string {
	if !l.Valid {
		return "no low"
	}

	return ranksString(l.Ranks)
}

// EvaluateLow returns the ace-to-five low for exactly five cards
// Suits are ignored. Any repeated rank disqualifies the hand.
func EvaluateLow(cards []*deck.Card) LowHand {
	if !complete(cards, 5) {
		return LowHand{}
	}

	seen := make(map[int]bool, 5)
	ranks := make([]int, 0, 5)
	for _, c := range cards {
		r := c.AceLowRank()
		if seen[r] {
			return LowHand{}
		}

		seen[r] = true
		ranks = append(ranks, r)
	}

	sort.Sort(descendingInts(ranks))
	return LowHand{Valid: true, Ranks: ranks}
}

// CompareLow orders two low hands, the lower sequence wins
func CompareLow(a, b LowHand) int {
	if a.Valid != b.Valid {
		if a.Valid {
			return 1
		}

		return -1
	}

	if !a.Valid {
		return 0
	}

	return -compareSeq(a.Ranks, b.Ranks)
}
