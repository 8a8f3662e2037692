package poker

import "chaingang-server/pkg/deck"

type sortByRank []*deck.Card

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// descendingInts sorts ints from highest to lowest
type descendingInts []int

func (d descendingInts) Len() int {
	return len(d)
}

func (d descendingInts) Less(i, j int) bool {
	return d[i] > d[j]
}

func (d descendingInts) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
}
