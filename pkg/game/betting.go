package game

import "chaingang-server/pkg/playable"

// needsToAct returns true if the seat still owes an action in the bet round
func needsToAct(s *Seat) bool {
	return !s.Folded && !s.Busted && !s.Acted
}

// bettors returns the number of seats that can still put chips in
func (r *Room) bettors() int {
	n := 0
	for _, s := range r.seats {
		if !s.Folded && !s.Busted && s.Chips > 0 {
			n++
		}
	}

	return n
}

// startBetting opens a bet round
// With fewer than two seats able to bet, the round closes immediately.
func (r *Room) startBetting(p Phase) {
	r.setPhase(p)
	r.currentBet = 0
	for _, s := range r.seats {
		s.Bet = 0
		s.Acted = s.Chips == 0
	}

	if r.bettors() < 2 {
		r.variant.afterBetting(r)
		return
	}

	next := r.scan(r.variant.startSeat(r), needsToAct)
	if next < 0 {
		r.variant.afterBetting(r)
		return
	}

	r.setTurn(next)
}

// raiseCap returns the ceiling for a raise-to amount in the current round
func (r *Room) raiseCap() int {
	if r.variant.isFinalBet(r) {
		return r.opts.FinalRaiseCap
	}

	return r.opts.EarlyRaiseCap
}

// toCall returns what the seat owes to stay in the round
func (r *Room) toCall(s *Seat) int {
	owed := r.currentBet - s.Bet
	if owed > s.Chips {
		return s.Chips
	}

	if owed < 0 {
		return 0
	}

	return owed
}

// Bet performs a betting action for the turn holder
// For a raise, amount is the raise-to total for the round.
func (r *Room) Bet(id string, kind BetKind, amount int) error {
	if !r.phase.IsBet() {
		return ErrWrongPhase
	}

	s, err := r.turnHolder(id)
	if err != nil {
		return err
	}

	if s.Acted {
		return ErrAlreadyActed
	}

	if err := r.bet(s, kind, amount); err != nil {
		return err
	}

	r.changed()
	return nil
}

func (r *Room) bet(s *Seat, kind BetKind, amount int) error {
	switch kind {
	case Fold:
		s.Folded = true
		r.logf(playable.LogAction, s, "%s folds.", s.DisplayName)
	case Check:
		if s.Bet != r.currentBet {
			return ErrCannotCheck
		}

		r.logf(playable.LogAction, s, "%s checks.", s.DisplayName)
	case Call:
		owed := r.toCall(s)
		if owed == 0 {
			r.logf(playable.LogAction, s, "%s checks.", s.DisplayName)
			break
		}

		r.wager(s, owed)
		s.Bet += owed
		r.logf(playable.LogAction, s, "%s calls $%d.", s.DisplayName, owed)
	case Raise:
		to := amount
		if c := r.raiseCap(); to > c {
			to = c
		}

		if stack := s.Bet + s.Chips; to > stack {
			to = stack
		}

		if to <= r.currentBet {
			return ErrInvalidRaise
		}

		r.wager(s, to-s.Bet)
		s.Bet = to
		r.currentBet = to
		for _, other := range r.seats {
			if other != s && !other.Folded && !other.Busted && other.Chips > 0 {
				other.Acted = false
			}
		}

		r.logf(playable.LogImportant, s, "%s raises to $%d.", s.DisplayName, to)
	default:
		return ErrUnknownAction
	}

	s.Acted = true
	r.advanceTurn()
	return nil
}

// advanceTurn passes the turn to the next seat that owes an action, or closes the round
func (r *Room) advanceTurn() {
	if r.alive() <= 1 {
		r.earlyWin()
		return
	}

	next := r.scan(r.turn+1, needsToAct)
	if next < 0 {
		r.variant.afterBetting(r)
		return
	}

	r.setTurn(next)
}
