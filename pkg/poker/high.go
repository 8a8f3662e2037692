package poker

import (
	"sort"

	"chaingang-server/pkg/deck"
)

// HighHand is a ranked five-card high hand
// The zero value represents "no hand" and loses to every valid hand.
type HighHand struct {
	Valid    bool     `json:"valid"`
	Category Category `json:"category"`
	Tiebreak []int    `json:"tiebreak"`
}

// Name returns the friendly name of the hand, or an empty string for no hand
func (h HighHand) Name() string {
	if !h.Valid {
		return ""
	}

	return h.Category.String()
}

type rankGroup struct {
	rank  int
	count int
}

// EvaluateHigh ranks exactly five cards
// Any other input returns the no-hand result.
func EvaluateHigh(cards []*deck.Card) HighHand {
	if !complete(cards, 5) {
		return HighHand{}
	}

	counts := make(map[int]int, 5)
	isFlush := true
	for _, c := range cards {
		counts[c.Rank]++
		if c.Suit != cards[0].Suit {
			isFlush = false
		}
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	tiebreak := make([]int, len(groups))
	for i, g := range groups {
		tiebreak[i] = g.rank
	}

	isStraight := false
	if len(groups) == 5 {
		if tiebreak[0]-tiebreak[4] == 4 {
			isStraight = true
		} else if tiebreak[0] == deck.Ace && tiebreak[1] == 5 {
			// the wheel plays the ace low
			isStraight = true
			tiebreak = []int{5, 4, 3, 2, 1}
		}
	}

	var category Category
	switch {
	case isStraight && isFlush:
		category = StraightFlush
	case groups[0].count == 4:
		category = FourOfAKind
	case groups[0].count == 3 && groups[1].count == 2:
		category = FullHouse
	case isFlush:
		category = Flush
	case isStraight:
		category = Straight
	case groups[0].count == 3:
		category = ThreeOfAKind
	case groups[0].count == 2 && groups[1].count == 2:
		category = TwoPair
	case groups[0].count == 2:
		category = OnePair
	default:
		category = HighCard
	}

	return HighHand{
		Valid:    true,
		Category: category,
		Tiebreak: tiebreak,
	}
}

// CompareHigh orders two high hands
func CompareHigh(a, b HighHand) int {
	if a.Valid != b.Valid {
		if a.Valid {
			return 1
		}

		return -1
	}

	if !a.Valid {
		return 0
	}

	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}

		return -1
	}

	return compareSeq(a.Tiebreak, b.Tiebreak)
}
