package game

import "chaingang-server/pkg/deck"

// Profile is the public identity of an actor
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	IsBot       bool   `json:"isBot"`
}

// Seat is a player seated in a room
// Identity and chips persist across hands, the rest is reset every hand
type Seat struct {
	Profile

	Chips int
	Hand  deck.Hand

	Bet          int
	Folded       bool
	Acted        bool
	Ready        bool
	DrewCards    bool
	Stayed       bool
	Busted       bool
	Declaration  Declaration
	SelectedDraw []int

	// SittingOut is set when the seat joined mid-hand or missed the ante
	SittingOut bool

	// Left is set once the actor leaves or disconnects, the seat is removed at the next hand boundary
	Left bool
}

func newSeat(p Profile, chips int) *Seat {
	return &Seat{
		Profile: p,
		Chips:   chips,
	}
}

func (s *Seat) resetForHand() {
	s.Hand = nil
	s.Bet = 0
	s.Folded = false
	s.Acted = false
	s.Ready = false
	s.DrewCards = false
	s.Stayed = false
	s.Busted = false
	s.Declaration = DeclareNone
	s.SelectedDraw = nil
	s.SittingOut = false
}

// undecided is used by the point-total variant, the seat may still hit
func (s *Seat) undecided() bool {
	return !s.Folded && !s.Stayed && !s.Busted
}
