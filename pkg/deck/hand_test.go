package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_Discard(t *testing.T) {
	a := assert.New(t)
	hand := Hand(CardsFromString("2c,3c,4c,5c,6c"))

	newHand, removed := hand.Discard([]int{0, 3})
	a.Equal(2, removed)
	a.Equal("3c,4c,6c", newHand.String())
	a.Equal("2c,3c,4c,5c,6c", hand.String(), "original hand is untouched")

	newHand, removed = hand.Discard([]int{4, 4, 9, -1})
	a.Equal(1, removed)
	a.Equal("2c,3c,4c,5c", newHand.String())

	newHand, removed = hand.Discard(nil)
	a.Equal(0, removed)
	a.Equal(hand.String(), newHand.String())
}

func TestHand_HasCard(t *testing.T) {
	hand := Hand(CardsFromString("2c,3c"))
	assert.True(t, hand.HasCard(CardFromString("3c")))
	assert.False(t, hand.HasCard(CardFromString("3d")))
}
