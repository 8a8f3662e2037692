package game

import (
	"strings"

	"chaingang-server/pkg/deck"
)

// Variant is a rule set a room can play
// The set of variants is closed, see NewVariant.
type Variant interface {
	// Name is the display name
	Name() string

	// Tag is the identifier used on the wire
	Tag() string

	// deal deals the board and the private cards for a new hand
	deal(r *Room) error

	// afterAnte is called once every seat dealt in has anted
	afterAnte(r *Room)

	// afterDraw is called once every contender has drawn
	afterDraw(r *Room)

	// afterBetting is called when a bet round closes
	afterBetting(r *Room)

	// afterDeclare is called once every contender has declared
	afterDeclare(r *Room)

	drawLimit(p Phase) int
	declarations() []Declaration
	isFinalBet(r *Room) bool

	// startSeat is where turn scans begin
	startSeat(r *Room) int

	settle(r *Room) *Result

	// upCards are the cards of a seat everyone at the table can see
	upCards(s *Seat) []*deck.Card

	// preview fills in what the seat's own snapshot shows about its hand
	preview(r *Room, s *Seat, ps *PlayerState)

	botDraw(r *Room, s *Seat) []int
	botDeclare(r *Room, s *Seat) Declaration
}

// Variants returns every variant in display order
func Variants() []Variant {
	return []Variant{
		&columnSplit{},
		&badugi{},
		&pointTotal{},
	}
}

// NewVariant returns the variant for the tag
// An empty tag selects the column split game
func NewVariant(tag string) (Variant, error) {
	if tag == "" {
		return &columnSplit{}, nil
	}

	for _, v := range Variants() {
		if strings.EqualFold(v.Tag(), tag) {
			return v, nil
		}
	}

	return nil, ErrUnknownVariant
}

// baseVariant provides defaults for the hooks a variant does not use
type baseVariant struct{}

func (baseVariant) afterDeclare(r *Room) {}

func (baseVariant) drawLimit(p Phase) int {
	return 0
}

func (baseVariant) declarations() []Declaration {
	return nil
}

// startSeat is the seat after the dealer
func (baseVariant) startSeat(r *Room) int {
	return r.dealer + 1
}

func (baseVariant) upCards(s *Seat) []*deck.Card {
	return nil
}

func (baseVariant) preview(r *Room, s *Seat, ps *PlayerState) {}

func (baseVariant) botDraw(r *Room, s *Seat) []int {
	return nil
}

func (baseVariant) botDeclare(r *Room, s *Seat) Declaration {
	return DeclareHigh
}
