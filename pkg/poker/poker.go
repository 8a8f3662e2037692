// Package poker ranks card hands for every variant the server plays.
// All comparison functions return 1 when a is the better hand, -1 when b is better and 0 on a true tie.
package poker

import (
	"fmt"
	"strings"

	"chaingang-server/pkg/deck"
)

// Category is a high-hand category, i.e., full house
type Category int

// Constants for category
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	default:
		panic(fmt.Sprintf("unknown category: %d", c))
	}
}

// compareSeq compares two rank sequences lexicographically
func compareSeq(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] > b[i] {
			return 1
		} else if a[i] < b[i] {
			return -1
		}
	}

	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}

	return 0
}

// complete returns true if there are exactly n non-nil cards
func complete(cards []*deck.Card, n int) bool {
	if len(cards) != n {
		return false
	}

	for _, c := range cards {
		if c == nil {
			return false
		}
	}

	return true
}

func ranksString(ranks []int) string {
	s := make([]string, len(ranks))
	for i, r := range ranks {
		s[i] = fmt.Sprintf("%d", r)
	}

	return strings.Join(s, "-")
}
