package poker

import (
	"sort"

	"chaingang-server/pkg/deck"
)

// BadugiHand is a four-card hand with four distinct suits and four distinct ranks
// Ranks use high order (ace is 14) and are sorted from highest to lowest.
type BadugiHand struct {
	Valid bool  `json:"valid"`
	Ranks []int `json:"ranks"`
}

func (b BadugiHand) String() string {
	if !b.Valid {
		return "no badugi"
	}

	return ranksString(b.Ranks)
}

// EvaluateBadugi checks the four cards for a badugi
func EvaluateBadugi(cards []*deck.Card) BadugiHand {
	if !complete(cards, 4) {
		return BadugiHand{}
	}

	suits := make(map[deck.Suit]bool, 4)
	seen := make(map[int]bool, 4)
	ranks := make([]int, 0, 4)
	for _, c := range cards {
		if suits[c.Suit] || seen[c.Rank] {
			return BadugiHand{}
		}

		suits[c.Suit] = true
		seen[c.Rank] = true
		ranks = append(ranks, c.Rank)
	}

	sort.Sort(descendingInts(ranks))
	return BadugiHand{Valid: true, Ranks: ranks}
}

// CompareBadugiHigh orders two badugis for the high side, the higher sequence wins
func CompareBadugiHigh(a, b BadugiHand) int {
	if v, ok := compareValidity(a.Valid, b.Valid); ok {
		return v
	}

	return compareSeq(a.Ranks, b.Ranks)
}

// CompareBadugiLow orders two badugis for the low side, the lower sequence wins
func CompareBadugiLow(a, b BadugiHand) int {
	if v, ok := compareValidity(a.Valid, b.Valid); ok {
		return v
	}

	return -compareSeq(a.Ranks, b.Ranks)
}

// compareValidity settles comparisons where at least one hand is invalid
func compareValidity(a, b bool) (int, bool) {
	switch {
	case a && b:
		return 0, false
	case a:
		return 1, true
	case b:
		return -1, true
	}

	return 0, true
}
