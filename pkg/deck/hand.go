package deck

import "sort"

// Hand represents an ordered collection of cards
type Hand []*Card

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card *Card) bool {
	for _, c := range h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// Discard removes the cards at the given indexes and returns the new hand
// Indexes are removed from highest to lowest so earlier removals do not shift later ones.
// Out of range and duplicate indexes are ignored.
func (h Hand) Discard(indexes []int) (Hand, int) {
	sorted := append([]int(nil), indexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	hand := h.Clone()
	removed := 0
	last := -1
	for _, i := range sorted {
		if i == last || i < 0 || i >= len(hand) {
			continue
		}

		last = i
		hand = append(hand[:i], hand[i+1:]...)
		removed++
	}

	return hand, removed
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
