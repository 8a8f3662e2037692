package game

import (
	"sort"

	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
	"chaingang-server/pkg/poker"
)

const badugiHand = 4

// badugi is a four-card triple draw game, the pot is split between the best high and the best low badugi
type badugi struct {
	baseVariant
}

func (badugi) Name() string {
	return "Badugi"
}

func (badugi) Tag() string {
	return "badugi"
}

func (badugi) deal(r *Room) error {
	for _, s := range r.seats {
		hand, err := r.drawCards(badugiHand)
		if err != nil {
			return err
		}

		s.Hand = hand
	}

	return nil
}

func (badugi) afterAnte(r *Room) {
	r.startDraw(PhaseDraw)
}

func (badugi) afterDraw(r *Room) {
	switch r.phase {
	case PhaseDraw:
		r.startBetting(PhaseBet1)
	case PhaseDraw2:
		r.startBetting(PhaseBet2)
	case PhaseDraw3:
		r.startBetting(PhaseBet3)
	}
}

func (badugi) afterBetting(r *Room) {
	switch r.phase {
	case PhaseBet1:
		r.startDraw(PhaseDraw2)
	case PhaseBet2:
		r.startDraw(PhaseDraw3)
	case PhaseBet3:
		r.setPhase(PhaseDecl)
		r.logf(playable.LogImportant, nil, "Declare: High or Low!")
	case PhaseBet4:
		r.showdown()
	}
}

func (badugi) afterDeclare(r *Room) {
	r.startBetting(PhaseBet4)
	r.logf(playable.LogImportant, nil, "Final betting round!")
}

func (badugi) drawLimit(p Phase) int {
	switch p {
	case PhaseDraw:
		return 3
	case PhaseDraw2:
		return 2
	case PhaseDraw3:
		return 1
	}

	return 0
}

func (badugi) declarations() []Declaration {
	return []Declaration{DeclareHigh, DeclareLow}
}

func (badugi) isFinalBet(r *Room) bool {
	return r.phase == PhaseBet4
}

func (badugi) settle(r *Room) *Result {
	res := &Result{}

	contenders := r.contenders()
	hands := make(map[*Seat]poker.BadugiHand, len(contenders))
	var highs, lows []*Seat
	for _, s := range contenders {
		h := poker.EvaluateBadugi(s.Hand)
		hands[s] = h
		res.Hands = append(res.Hands, RevealedHand{
			SeatID:      s.ID,
			DisplayName: s.DisplayName,
			Declaration: s.Declaration,
			Cards:       s.Hand,
			HighHand:    h.String(),
		})

		if !h.Valid {
			continue
		}

		switch s.Declaration {
		case DeclareHigh:
			highs = append(highs, s)
		case DeclareLow:
			lows = append(lows, s)
		}
	}

	highWinner := best(highs, func(a, b *Seat) int {
		return poker.CompareBadugiHigh(hands[a], hands[b])
	})

	lowWinner := best(lows, func(a, b *Seat) int {
		return poker.CompareBadugiLow(hands[a], hands[b])
	})

	if highWinner == nil && lowWinner == nil {
		res.Carried = r.pot
		r.skipAnte = true
		r.logf(playable.LogImportant, nil, "No badugi! The $%d pot carries over.", r.pot)
		r.recordOutcome(nil, nil, false)
		return res
	}

	low, high := splitPot(r.pot)
	if highWinner != nil {
		r.payHalf(res, SideHigh, highWinner, high, hands[highWinner].String())
	} else {
		res.Carried = high
		r.logf(playable.LogImportant, nil, "HIGH POT: No badugi, $%d carries over.", high)
	}

	if lowWinner != nil {
		r.payHalf(res, SideLow, lowWinner, low, hands[lowWinner].String())
	} else {
		res.Carried = low
		r.logf(playable.LogImportant, nil, "LOW POT: No badugi, $%d carries over.", low)
	}

	r.recordOutcome(highWinner, lowWinner, false)
	return res
}

// botDraw keeps the lowest cards that form a badugi together and discards the rest, highest first
func (b badugi) botDraw(r *Room, s *Seat) []int {
	order := make([]int, len(s.Hand))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return s.Hand[order[i]].Rank < s.Hand[order[j]].Rank
	})

	suits := make(map[deck.Suit]bool)
	ranks := make(map[int]bool)
	var discard []int
	for _, idx := range order {
		c := s.Hand[idx]
		if suits[c.Suit] || ranks[c.Rank] {
			discard = append(discard, idx)
			continue
		}

		suits[c.Suit] = true
		ranks[c.Rank] = true
	}

	// order is ascending by rank, so the highest discards are at the end
	for i, j := 0, len(discard)-1; i < j; i, j = i+1, j-1 {
		discard[i], discard[j] = discard[j], discard[i]
	}

	if limit := b.drawLimit(r.phase); len(discard) > limit {
		discard = discard[:limit]
	}

	return discard
}

func (badugi) botDeclare(r *Room, s *Seat) Declaration {
	h := poker.EvaluateBadugi(s.Hand)
	if !h.Valid {
		if r.rng.Intn(2) == 0 {
			return DeclareHigh
		}

		return DeclareLow
	}

	if h.Ranks[0] >= 10 {
		return DeclareHigh
	}

	return DeclareLow
}

func (badugi) preview(r *Room, s *Seat, ps *PlayerState) {
	ps.MyBadugi = poker.EvaluateBadugi(s.Hand).String()
}
