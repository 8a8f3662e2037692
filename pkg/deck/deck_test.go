package deck

import (
	"testing"

	"chaingang-server/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := assert.New(t)
	cards := New()

	a.Len(cards, 52)
	a.Equal(Card{Rank: 2, Suit: Clubs}, *cards[0])
	a.Equal(Card{Rank: 14, Suit: Spades}, *cards[51])

	seen := make(map[string]bool)
	for _, c := range cards {
		seen[CardToString(c)] = true
	}
	a.Len(seen, 52)
}

func TestShuffle(t *testing.T) {
	a := assert.New(t)
	cards := New()
	orig := CardsToString(cards)

	shuffled := Shuffle(cards, rng.NewSeeded(1))
	a.Equal(orig, CardsToString(cards), "input must not be mutated")
	a.NotEqual(orig, CardsToString(shuffled))
	a.Len(shuffled, 52)

	seen := make(map[string]bool)
	for _, c := range shuffled {
		seen[CardToString(c)] = true
	}
	a.Len(seen, 52)

	// same seed, same order
	a.Equal(CardsToString(shuffled), CardsToString(Shuffle(cards, rng.NewSeeded(1))))
}

func TestShuffle_Uniform(t *testing.T) {
	// every card should land in position 0 at some point
	gen := rng.NewSeeded(7)
	firsts := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		firsts[CardToString(Shuffle(New(), gen)[0])] = true
	}

	assert.Len(t, firsts, 52)
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)
	d := NewShuffled(rng.NewSeeded(3))

	a.True(d.CanDraw(52))
	a.False(d.CanDraw(53))

	for i := 0; i < 52; i++ {
		card, err := d.Draw()
		a.NotNil(card)
		a.NoError(err)
	}

	a.Equal(52, d.Dealt())
	a.Equal(0, d.Remaining())

	card, err := d.Draw()
	a.Nil(card)
	a.Equal(ErrEndOfDeck, err)
}

func TestDeck_DrawN(t *testing.T) {
	a := assert.New(t)
	d := FromCards(CardsFromString("2c,3c,4c,5c"))

	cards, err := d.DrawN(3)
	require.NoError(t, err)
	a.Equal("2c,3c,4c", CardsToString(cards))

	cards, err = d.DrawN(2)
	a.Nil(cards)
	a.Equal(ErrEndOfDeck, err)
	a.Equal(1, d.Remaining())
}

func TestDeck_HashCode(t *testing.T) {
	a := assert.New(t)
	d1 := FromCards(New())
	d2 := FromCards(New())
	a.Equal(d1.HashCode(), d2.HashCode())

	d3 := NewShuffled(rng.NewSeeded(9))
	a.NotEqual(d1.HashCode(), d3.HashCode())
}
