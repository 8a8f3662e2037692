package poker

import (
	"testing"

	"chaingang-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateLow(t *testing.T) {
	a := assert.New(t)

	low := EvaluateLow(deck.CardsFromString("14c,2d,3h,4s,5c"))
	a.True(low.Valid)
	a.Equal([]int{5, 4, 3, 2, 1}, low.Ranks)
	a.Equal("5-4-3-2-1", low.String())

	a.False(EvaluateLow(deck.CardsFromString("14c,14d,3h,4s,5c")).Valid)
	a.False(EvaluateLow(deck.CardsFromString("2c,3d,4h,5s")).Valid)
	a.Equal("no low", LowHand{}.String())

	// suits do not matter, a flush is still a low
	a.True(EvaluateLow(deck.CardsFromString("2c,3c,4c,5c,7c")).Valid)
}

func TestCompareLow(t *testing.T) {
	a := assert.New(t)
	wheel := EvaluateLow(deck.CardsFromString("14c,2d,3h,4s,5c"))
	sixLow := EvaluateLow(deck.CardsFromString("2c,3d,4h,5s,6c"))
	eightSeven := EvaluateLow(deck.CardsFromString("8c,7d,4h,2s,14c"))
	eightSix := EvaluateLow(deck.CardsFromString("8c,6d,4h,3s,2c"))

	a.Equal(1, CompareLow(wheel, sixLow))
	a.Equal(-1, CompareLow(sixLow, wheel))
	a.Equal(1, CompareLow(eightSix, eightSeven))
	a.Equal(0, CompareLow(wheel, EvaluateLow(deck.CardsFromString("5d,4d,3d,2d,14d"))))
	a.Equal(1, CompareLow(eightSeven, LowHand{}))
	a.Equal(-1, CompareLow(LowHand{}, eightSeven))
	a.Equal(0, CompareLow(LowHand{}, LowHand{}))
}
