package game

import (
	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
	"chaingang-server/pkg/poker"
)

// pointTotal is a push-your-luck game, the pot is split between the best total near 15 and the best total near 35
// Every seat holds a concealed hole card and takes face-up cards one at a time.
type pointTotal struct {
	baseVariant
}

func (pointTotal) Name() string {
	return "15/35"
}

func (pointTotal) Tag() string {
	return "pointtotal"
}

func (pointTotal) deal(r *Room) error {
	for _, s := range r.seats {
		hand, err := r.drawCards(2)
		if err != nil {
			return err
		}

		s.Hand = hand
	}

	return nil
}

func (pointTotal) afterAnte(r *Room) {
	r.startHitPass()
}

// afterDraw closes a hit pass
func (pointTotal) afterDraw(r *Room) {
	for _, s := range r.contenders() {
		if !s.Busted {
			r.startBetting(PhaseBet)
			return
		}
	}

	// everyone busted, the pot is dealt again without a new ante
	r.logf(playable.LogImportant, nil, "Everyone busted! Redealing for the $%d pot.", r.pot)
	r.skipAnte = true
	r.startHand()
}

func (pointTotal) afterBetting(r *Room) {
	if r.undecided() > 0 {
		r.startHitPass()
		return
	}

	r.showdown()
}

// isFinalBet is true once no one can hit again
func (pointTotal) isFinalBet(r *Room) bool {
	return r.phase == PhaseBet && r.undecided() == 0
}

func (r *Room) undecided() int {
	n := 0
	for _, s := range r.seats {
		if s.undecided() {
			n++
		}
	}

	return n
}

func (pointTotal) settle(r *Room) *Result {
	res := &Result{}

	var lowWinner, highWinner *Seat
	var lowBest, highBest int
	for _, s := range r.contenders() {
		pts := poker.EvaluatePoints(s.Hand)
		res.Hands = append(res.Hands, RevealedHand{
			SeatID:      s.ID,
			DisplayName: s.DisplayName,
			Cards:       s.Hand,
			HighHand:    pts.String(),
		})

		if s.Busted {
			continue
		}

		// first-seated wins exact ties
		if v, ok := pts.LowScore(); ok && (lowWinner == nil || v > lowBest) {
			lowWinner, lowBest = s, v
		}

		if v, ok := pts.HighScore(); ok && (highWinner == nil || v > highBest) {
			highWinner, highBest = s, v
		}
	}

	switch {
	case lowWinner == nil && highWinner == nil:
		res.Carried = r.pot
		r.skipAnte = true
		r.logf(playable.LogImportant, nil, "No one qualified! The $%d pot rolls over.", r.pot)
	case lowWinner == nil:
		r.payHalf(res, SidePot, highWinner, r.pot, poker.FormatHalfPoints(highBest))
	case highWinner == nil:
		r.payHalf(res, SidePot, lowWinner, r.pot, poker.FormatHalfPoints(lowBest))
	default:
		low, high := splitPot(r.pot)
		r.payHalf(res, SideHigh, highWinner, high, poker.FormatHalfPoints(highBest))
		r.payHalf(res, SideLow, lowWinner, low, poker.FormatHalfPoints(lowBest))
	}

	r.recordOutcome(highWinner, lowWinner, false)
	return res
}

// upCards are the face-up cards, the hole card is at index 0
func (pointTotal) upCards(s *Seat) []*deck.Card {
	if len(s.Hand) < 2 {
		return nil
	}

	return s.Hand[1:]
}

func (pointTotal) preview(r *Room, s *Seat, ps *PlayerState) {
	pts := poker.EvaluatePoints(s.Hand)
	ps.MyPoints = &pts
	ps.MyPointsLabel = pts.String()
}
