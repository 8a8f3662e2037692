package poker

import (
	"sort"

	"chaingang-server/pkg/deck"
)

// Column is one board slot: two pair cards and a single card
// Hidden cards are nil.
type Column struct {
	Pair   [2]*deck.Card `json:"pair"`
	Single *deck.Card    `json:"single"`
}

// ColumnResult is the best high and low hand a player can form
type ColumnResult struct {
	High      HighHand     `json:"-"`
	HighCards []*deck.Card `json:"highCards"`
	Low       LowHand      `json:"-"`
	LowCards  []*deck.Card `json:"lowCards"`
}

// HasLow returns true if a qualifying low was found
func (c ColumnResult) HasLow() bool {
	return c.Low.Valid
}

type boardCard struct {
	card   *deck.Card
	single bool
}

// BestColumnHand finds the best high and the best low hand from the private cards and the board
// The board part must use at least one pair card and at least one single card. Hands are always five
// cards. When nothing legal can be formed the zero result is returned.
func BestColumnHand(hole []*deck.Card, columns []Column) ColumnResult {
	private := make([]*deck.Card, 0, len(hole))
	for _, c := range hole {
		if c != nil {
			private = append(private, c)
		}
	}

	board := make([]boardCard, 0, len(columns)*3)
	for _, col := range columns {
		for _, c := range col.Pair {
			if c != nil {
				board = append(board, boardCard{card: c})
			}
		}

		if col.Single != nil {
			board = append(board, boardCard{card: col.Single, single: true})
		}
	}

	var result ColumnResult
	candidate := make([]*deck.Card, 5)

	for k := 2; k <= 5; k++ {
		holeCount := 5 - k
		if holeCount > len(private) || k > len(board) {
			continue
		}

		combinations(len(board), k, func(boardIdx []int) {
			pairs, singles := 0, 0
			for i, idx := range boardIdx {
				bc := board[idx]
				candidate[i] = bc.card
				if bc.single {
					singles++
				} else {
					pairs++
				}
			}

			if pairs == 0 || singles == 0 {
				return
			}

			combinations(len(private), holeCount, func(holeIdx []int) {
				for i, idx := range holeIdx {
					candidate[k+i] = private[idx]
				}

				if high := EvaluateHigh(candidate); CompareHigh(high, result.High) > 0 {
					result.High = high
					result.HighCards = sortedCopy(candidate)
				}

				if low := EvaluateLow(candidate); low.Valid && CompareLow(low, result.Low) > 0 {
					result.Low = low
					result.LowCards = sortedCopy(candidate)
				}
			})
		})
	}

	return result
}

// combinations calls fn with every k-sized set of indexes from [0, n)
// The slice passed to fn is reused between calls.
func combinations(n, k int, fn func([]int)) {
	if k > n || k < 0 {
		return
	}

	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(idx)
			return
		}

		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}

	rec(0, 0)
}

func sortedCopy(cards []*deck.Card) []*deck.Card {
	cp := make([]*deck.Card, len(cards))
	copy(cp, cards)
	sort.Stable(sort.Reverse(sortByRank(cp)))

	return cp
}
