package game

import (
	"strings"

	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
	"chaingang-server/pkg/poker"
)

// playing returns the seat if it is dealt into the current hand
func (r *Room) playing(id string) (*Seat, int, error) {
	s, idx := r.seatByID(id)
	if s == nil {
		return nil, -1, ErrSeatNotFound
	}

	if s.SittingOut {
		return nil, -1, ErrSittingOut
	}

	if s.Folded {
		return nil, -1, ErrFolded
	}

	return s, idx, nil
}

// Ante posts the ante for the player
func (r *Room) Ante(id string) error {
	if r.phase != PhaseAnte {
		return ErrWrongPhase
	}

	s, _, err := r.playing(id)
	if err != nil {
		return err
	}

	if err := r.ante(s); err != nil {
		return err
	}

	r.checkAnte()
	r.changed()
	return nil
}

func (r *Room) ante(s *Seat) error {
	if s.Ready {
		return ErrAlreadyActed
	}

	if s.Chips < r.opts.Ante {
		return ErrInsufficientChips
	}

	r.wager(s, r.opts.Ante)
	s.Ready = true
	r.logf(playable.LogAction, s, "%s posted ante $%d.", s.DisplayName, r.opts.Ante)
	return nil
}

func (r *Room) checkAnte() {
	for _, s := range r.seats {
		if !s.Folded && !s.Ready {
			return
		}
	}

	r.variant.afterAnte(r)
}

// cleanDraw drops duplicate and out-of-range indexes and trims to limit
func cleanDraw(indexes []int, handSize, limit int) []int {
	seen := make(map[int]bool, len(indexes))
	clean := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		if len(clean) >= limit {
			break
		}

		if idx < 0 || idx >= handSize || seen[idx] {
			continue
		}

		seen[idx] = true
		clean = append(clean, idx)
	}

	return clean
}

// SelectDraw records which cards the player intends to discard
func (r *Room) SelectDraw(id string, indexes []int) error {
	if !r.phase.IsDraw() {
		return ErrWrongPhase
	}

	s, _, err := r.playing(id)
	if err != nil {
		return err
	}

	if s.DrewCards {
		return ErrAlreadyActed
	}

	s.SelectedDraw = cleanDraw(indexes, len(s.Hand), r.variant.drawLimit(r.phase))
	r.changed()
	return nil
}

// ConfirmDraw discards the cards at indexes and deals replacements
func (r *Room) ConfirmDraw(id string, indexes []int) error {
	if !r.phase.IsDraw() {
		return ErrWrongPhase
	}

	s, _, err := r.playing(id)
	if err != nil {
		return err
	}

	if s.DrewCards {
		return ErrAlreadyActed
	}

	r.confirmDraw(s, indexes)
	r.checkDraw()
	r.changed()
	return nil
}

func (r *Room) confirmDraw(s *Seat, indexes []int) {
	discard := cleanDraw(indexes, len(s.Hand), r.variant.drawLimit(r.phase))
	if remaining := r.deck.Remaining(); len(discard) > remaining {
		discard = discard[:remaining]
	}

	hand, n := s.Hand.Discard(discard)
	if n > 0 {
		cards, err := r.deck.DrawN(n)
		if err != nil {
			// cannot happen, the discard was trimmed to what remains
			r.logger.WithError(err).Error("could not draw replacements")
			return
		}

		hand = append(hand, cards...)
	}

	s.Hand = hand
	s.DrewCards = true
	s.SelectedDraw = nil
	r.logf(playable.LogAction, s, "%s drew %d card(s).", s.DisplayName, n)
}

// startDraw opens a draw round
func (r *Room) startDraw(p Phase) {
	r.setPhase(p)
	for _, s := range r.seats {
		s.DrewCards = false
		s.SelectedDraw = nil
	}

	r.logf(playable.LogImportant, nil, "Pick up to %d card(s) to swap.", r.variant.drawLimit(p))
}

func (r *Room) checkDraw() {
	for _, s := range r.seats {
		if !s.Folded && !s.DrewCards {
			return
		}
	}

	r.variant.afterDraw(r)
}

// Declare announces which half of the pot the player is playing for
func (r *Room) Declare(id string, value string) error {
	if r.phase != PhaseDecl {
		return ErrWrongPhase
	}

	s, _, err := r.playing(id)
	if err != nil {
		return err
	}

	if s.Declaration != DeclareNone {
		return ErrAlreadyActed
	}

	d, err := DeclarationFromString(value)
	if err != nil {
		return err
	}

	if err := r.declare(s, d); err != nil {
		return err
	}

	r.checkDeclared()
	r.changed()
	return nil
}

func (r *Room) declare(s *Seat, d Declaration) error {
	allowed := false
	for _, v := range r.variant.declarations() {
		if v == d {
			allowed = true
			break
		}
	}

	if !allowed {
		return ErrInvalidDeclaration
	}

	s.Declaration = d
	r.logf(playable.LogImportant, s, "%s declares %s!", s.DisplayName, strings.ToUpper(string(d)))
	return nil
}

func (r *Room) checkDeclared() {
	for _, s := range r.seats {
		if !s.Folded && s.Declaration == DeclareNone {
			return
		}
	}

	r.variant.afterDeclare(r)
}

// turnHolder checks the player holds the turn
func (r *Room) turnHolder(id string) (*Seat, error) {
	s, idx, err := r.playing(id)
	if err != nil {
		return nil, err
	}

	if idx != r.turn {
		return nil, ErrNotYourTurn
	}

	return s, nil
}

// Hit deals the player a face-up card
func (r *Room) Hit(id string) error {
	if r.phase != PhaseHit {
		return ErrWrongPhase
	}

	s, err := r.turnHolder(id)
	if err != nil {
		return err
	}

	if !s.undecided() || s.Acted {
		return ErrAlreadyActed
	}

	if err := r.hit(s); err != nil {
		return err
	}

	r.changed()
	return nil
}

func (r *Room) hit(s *Seat) error {
	card, err := r.deck.Draw()
	if err != nil {
		return err
	}

	s.Hand = append(s.Hand, card)
	s.Acted = true

	pts := poker.EvaluatePoints(s.Hand)
	if pts.Bust() {
		s.Busted = true
		r.logf(playable.LogImportant, s, "%s hits %s and busts.", s.DisplayName, card)
	} else {
		r.logf(playable.LogAction, s, "%s hits %s.", s.DisplayName, card)
	}

	r.advanceHit()
	return nil
}

// Stay ends the player's drawing for this hand
func (r *Room) Stay(id string) error {
	if r.phase != PhaseHit {
		return ErrWrongPhase
	}

	s, err := r.turnHolder(id)
	if err != nil {
		return err
	}

	if !s.undecided() || s.Acted {
		return ErrAlreadyActed
	}

	r.stay(s)
	r.changed()
	return nil
}

func (r *Room) stay(s *Seat) {
	s.Stayed = true
	s.Acted = true
	r.logf(playable.LogAction, s, "%s stays.", s.DisplayName)
	r.advanceHit()
}

// startHitPass gives every undecided seat one hit or stay decision
func (r *Room) startHitPass() {
	r.setPhase(PhaseHit)
	for _, s := range r.seats {
		s.Acted = false
	}

	next := r.scan(r.variant.startSeat(r), func(s *Seat) bool { return s.undecided() })
	if next < 0 {
		r.showdown()
		return
	}

	r.setTurn(next)
}

func (r *Room) advanceHit() {
	if r.alive() <= 1 {
		r.earlyWin()
		return
	}

	next := r.scan(r.turn+1, func(s *Seat) bool { return s.undecided() && !s.Acted })
	if next >= 0 {
		r.setTurn(next)
		return
	}

	r.variant.afterDraw(r)
}

// drawCards deals n cards or fails if the deck runs out
func (r *Room) drawCards(n int) (deck.Hand, error) {
	return r.deck.DrawN(n)
}
