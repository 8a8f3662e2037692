package game

import (
	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
	"chaingang-server/pkg/poker"
)

const (
	columnCount  = 5
	factorColumn = 2
	columnHand   = 5
)

// columnSplit is a high/low split game played against five board columns
type columnSplit struct {
	baseVariant
}

func (columnSplit) Name() string {
	return "Chain Gang"
}

func (columnSplit) Tag() string {
	return "columns"
}

func (columnSplit) deal(r *Room) error {
	board := make([]poker.Column, columnCount)
	for i := range board {
		pair, err := r.drawCards(2)
		if err != nil {
			return err
		}

		single, err := r.deck.Draw()
		if err != nil {
			return err
		}

		board[i] = poker.Column{
			Pair:   [2]*deck.Card{pair[0], pair[1]},
			Single: single,
		}
	}

	for _, s := range r.seats {
		hand, err := r.drawCards(columnHand)
		if err != nil {
			return err
		}

		s.Hand = hand
	}

	r.board = board
	return nil
}

func (columnSplit) afterAnte(r *Room) {
	r.setPhase(PhasePairs)
	r.logf(playable.LogImportant, nil, "Pairs are on the board! Draw phase coming...")
	r.scheduleAdvance(r.opts.PairsRevealDelay, func() {
		r.startDraw(PhaseDraw)
	})
}

func (columnSplit) afterDraw(r *Room) {
	r.startBetting(PhaseBet1)
	r.logf(playable.LogImportant, nil, "Betting round 1.")
}

func (columnSplit) afterBetting(r *Room) {
	switch r.phase {
	case PhaseBet1:
		// singles are shown before the second round opens
		r.setPhase(PhaseBet2)
		r.logf(playable.LogImportant, nil, "Singles revealed! Study the board.")
		r.scheduleAdvance(r.opts.SinglesRevealDelay, func() {
			r.startBetting(PhaseBet2)
			r.logf(playable.LogImportant, nil, "Singles revealed! Bet now.")
		})
	case PhaseBet2:
		r.setPhase(PhaseDecl)
		r.logf(playable.LogImportant, nil, "FACTOR CARD IS LIVE! Declare: High, Low, or Swing!")
	case PhaseBet3:
		r.showdown()
	}
}

func (columnSplit) afterDeclare(r *Room) {
	r.startBetting(PhaseBet3)
	r.logf(playable.LogImportant, nil, "Final betting round!")
}

func (columnSplit) drawLimit(p Phase) int {
	if p == PhaseDraw {
		return 2
	}

	return 0
}

func (columnSplit) declarations() []Declaration {
	return []Declaration{DeclareHigh, DeclareLow, DeclareSwing}
}

func (columnSplit) isFinalBet(r *Room) bool {
	return r.phase == PhaseBet3
}

// startSeat is always the first seat
func (columnSplit) startSeat(r *Room) int {
	return 0
}

// visibleColumns returns the board as it is shown in the current phase
func (r *Room) visibleColumns() []poker.Column {
	if r.board == nil {
		return nil
	}

	var pairs, singles, factor bool
	switch r.phase {
	case PhaseDraw, PhaseBet1:
		pairs = true
	case PhaseBet2:
		pairs, singles = true, true
	case PhaseDecl, PhaseBet3, PhaseShowdown:
		pairs, singles, factor = true, true, true
	}

	cols := make([]poker.Column, len(r.board))
	for i, col := range r.board {
		if pairs {
			cols[i].Pair = col.Pair
		}

		if (i == factorColumn && factor) || (i != factorColumn && singles) {
			cols[i].Single = col.Single
		}
	}

	return cols
}

// factor returns the factor card, the single of the middle column
func (r *Room) factor() *deck.Card {
	if len(r.board) <= factorColumn {
		return nil
	}

	return r.board[factorColumn].Single
}

func hasSuit(cards []*deck.Card, suit deck.Suit) bool {
	for _, c := range cards {
		if c.Suit == suit {
			return true
		}
	}

	return false
}

func (columnSplit) settle(r *Room) *Result {
	res := &Result{Factor: r.factor()}

	contenders := r.contenders()
	hands := make(map[*Seat]poker.ColumnResult, len(contenders))
	var highs, lows []*Seat
	for _, s := range contenders {
		h := poker.BestColumnHand(s.Hand, r.board)
		hands[s] = h

		if s.Declaration.playsHigh() {
			highs = append(highs, s)
		}

		if s.Declaration.playsLow() && h.HasLow() {
			lows = append(lows, s)
		}

		res.Hands = append(res.Hands, RevealedHand{
			SeatID:      s.ID,
			DisplayName: s.DisplayName,
			Declaration: s.Declaration,
			Cards:       s.Hand,
			HighHand:    h.High.Name(),
			LowHand:     lowName(h),
			LowCards:    h.LowCards,
		})
	}

	highWinner := best(highs, func(a, b *Seat) int {
		return poker.CompareHigh(hands[a].High, hands[b].High)
	})

	lowWinner := best(lows, func(a, b *Seat) int {
		return poker.CompareLow(hands[a].Low, hands[b].Low)
	})

	if lowWinner != nil {
		lowWinner = breakLowTie(lows, lowWinner, hands, res.Factor)
	}

	for _, s := range contenders {
		if s.Declaration != DeclareSwing {
			continue
		}

		if highWinner == s && lowWinner == s {
			continue
		}

		if highWinner == s {
			highWinner = nil
		}

		if lowWinner == s {
			lowWinner = nil
		}

		r.logf(playable.LogImportant, s, "%s swung and lost, forfeits both pots!", s.DisplayName)
	}

	low, high := splitPot(r.pot)
	if highWinner != nil {
		r.payHalf(res, SideHigh, highWinner, high, hands[highWinner].High.Name())
	} else {
		r.removeUnclaimed(res, "HIGH", high)
	}

	if lowWinner != nil {
		r.payHalf(res, SideLow, lowWinner, low, cardsLabel(hands[lowWinner].LowCards))
	} else {
		r.removeUnclaimed(res, "LOW", low)
	}

	if res.Factor != nil {
		r.logf(playable.LogImportant, nil, "Factor card: %s", res.Factor)
	}

	r.recordOutcome(highWinner, lowWinner, true)
	return res
}

// breakLowTie settles exact low ties with the factor suit
// Among the tied seats, the first-seated one holding the factor suit in its low wins. If none holds it,
// the first-seated tied seat wins.
func breakLowTie(lows []*Seat, winner *Seat, hands map[*Seat]poker.ColumnResult, factor *deck.Card) *Seat {
	var tied []*Seat
	for _, s := range lows {
		if poker.CompareLow(hands[s].Low, hands[winner].Low) == 0 {
			tied = append(tied, s)
		}
	}

	if len(tied) < 2 || factor == nil {
		return winner
	}

	for _, s := range tied {
		if hasSuit(hands[s].LowCards, factor.Suit) {
			return s
		}
	}

	return tied[0]
}

func lowName(h poker.ColumnResult) string {
	if !h.HasLow() {
		return ""
	}

	return h.Low.String()
}

func (c columnSplit) botDraw(r *Room, s *Seat) []int {
	if r.rng.Intn(100) >= 85 {
		return nil
	}

	n := 1 + r.rng.Intn(c.drawLimit(r.phase))
	order := make([]int, len(s.Hand))
	for i := range order {
		order[i] = i
	}

	for i := len(order) - 1; i > 0; i-- {
		j := r.rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	if n > len(order) {
		n = len(order)
	}

	return order[:n]
}

func (columnSplit) botDeclare(r *Room, s *Seat) Declaration {
	h := poker.BestColumnHand(s.Hand, r.board)
	goodLow := h.HasLow() && h.Low.Ranks[0] <= 8
	strongHigh := h.High.Valid && h.High.Category >= poker.TwoPair

	switch {
	case strongHigh && goodLow:
		if r.rng.Intn(100) < 10 {
			return DeclareSwing
		}

		if h.High.Category >= poker.ThreeOfAKind {
			return DeclareHigh
		}

		return DeclareLow
	case strongHigh:
		return DeclareHigh
	case goodLow:
		return DeclareLow
	}

	if r.rng.Intn(2) == 0 {
		return DeclareHigh
	}

	return DeclareLow
}

// preview shows the best hands the seat can make with the revealed columns
func (columnSplit) preview(r *Room, s *Seat, ps *PlayerState) {
	ps.MyBestHand = r.bestHand(s)
}
