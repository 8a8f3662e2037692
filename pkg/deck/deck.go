package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"chaingang-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck is a shuffled sequence of cards with a cursor into the undealt cards
type Deck struct {
	cards  []*Card
	cursor int
}

// New returns the 52 cards of a standard deck in canonical order (suit, then rank)
func New() []*Card {
	cards := make([]*Card, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return cards
}

// Shuffle returns a uniformly shuffled copy of cards (Fisher-Yates)
// The input slice is never modified.
func Shuffle(cards []*Card, gen rng.Generator) []*Card {
	shuffled := make([]*Card, len(cards))
	copy(shuffled, cards)

	for j := len(shuffled) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// NewShuffled returns a freshly shuffled deck
func NewShuffled(gen rng.Generator) *Deck {
	return FromCards(Shuffle(New(), gen))
}

// FromCards returns a deck that deals the cards in the given order
func FromCards(cards []*Card) *Deck {
	return &Deck{cards: cards}
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if d.cursor >= len(d.cards) {
		return nil, ErrEndOfDeck
	}

	card := d.cards[d.cursor]
	d.cursor++

	return card, nil
}

// DrawN draws n cards, or none if fewer than n remain
func (d *Deck) DrawN(n int) ([]*Card, error) {
	if !d.CanDraw(n) {
		return nil, ErrEndOfDeck
	}

	cards := make([]*Card, n)
	copy(cards, d.cards[d.cursor:d.cursor+n])
	d.cursor += n

	return cards, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return d.Remaining() >= want
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards) - d.cursor
}

// Dealt returns the number of cards dealt from the deck
func (d *Deck) Dealt() int {
	return d.cursor
}

// HashCode returns a SHA1 hash code of the deck order.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
