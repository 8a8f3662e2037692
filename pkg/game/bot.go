package game

import (
	"time"

	"github.com/coder/quartz"

	"chaingang-server/pkg/poker"
)

type botTimer struct {
	timer *quartz.Timer
	stamp stamp
}

// botPending returns true if the room is waiting on the bot
func (r *Room) botPending(s *Seat, idx int) bool {
	if s.Folded || s.Left {
		return false
	}

	switch {
	case r.phase == PhaseAnte:
		return !s.Ready && s.Chips >= r.opts.Ante
	case r.phase.IsDraw():
		return !s.DrewCards
	case r.phase == PhaseDecl:
		return s.Declaration == DeclareNone
	case r.phase.IsBet(), r.phase == PhaseHit:
		return idx == r.turn
	}

	return false
}

// botDelay returns a random delay between the configured bounds
func (r *Room) botDelay() time.Duration {
	spread := r.opts.BotMaxDelay - r.opts.BotMinDelay
	if spread <= 0 {
		return r.opts.BotMinDelay
	}

	return r.opts.BotMinDelay + time.Duration(r.rng.Intn(int(spread/time.Millisecond)+1))*time.Millisecond
}

// scheduleBots arms a think timer for every bot the room is waiting on
func (r *Room) scheduleBots() {
	st := r.stamp()
	for idx, s := range r.seats {
		if !s.IsBot {
			continue
		}

		bt, scheduled := r.bots[s.ID]
		if !r.botPending(s, idx) {
			if scheduled {
				bt.timer.Stop()
				delete(r.bots, s.ID)
			}
			continue
		}

		if scheduled && bt.stamp == st {
			continue
		}

		if scheduled {
			bt.timer.Stop()
		}

		id := s.ID
		r.bots[id] = &botTimer{
			stamp: st,
			timer: r.after(r.botDelay(), func() {
				delete(r.bots, id)
				r.botAct(id)
				r.changed()
			}),
		}
	}
}

// botAct plays the bot's move for the current phase
func (r *Room) botAct(id string) {
	s, idx := r.seatByID(id)
	if s == nil || !r.botPending(s, idx) {
		return
	}

	var err error
	switch {
	case r.phase == PhaseAnte:
		if err = r.ante(s); err == nil {
			r.checkAnte()
		}
	case r.phase.IsDraw():
		r.confirmDraw(s, r.variant.botDraw(r, s))
		r.checkDraw()
	case r.phase == PhaseDecl:
		if err = r.declare(s, r.variant.botDeclare(r, s)); err == nil {
			r.checkDeclared()
		}
	case r.phase.IsBet():
		r.botBet(s)
	case r.phase == PhaseHit:
		if !r.botShouldHit(s) || r.hit(s) != nil {
			r.stay(s)
		}
	}

	if err != nil {
		r.logger.WithError(err).WithField("bot", s.DisplayName).Debug("bot action rejected")
	}
}

// botBet picks a betting action
// Not facing a bet: check 80%, raise 15%, fold 5%. Facing a bet: call 60%, fold 25%, raise 15%.
func (r *Room) botBet(s *Seat) {
	roll := r.rng.Intn(100)
	var kind BetKind
	if r.toCall(s) > 0 {
		switch {
		case roll < 60:
			kind = Call
		case roll < 85:
			kind = Fold
		default:
			kind = Raise
		}
	} else {
		switch {
		case roll < 80:
			kind = Check
		case roll < 95:
			kind = Raise
		default:
			kind = Fold
		}
	}

	amount := 0
	if kind == Raise {
		amount = r.currentBet + r.opts.Ante*(1+r.rng.Intn(2))
	}

	if err := r.bet(s, kind, amount); err != nil {
		// a raise may be out of reach, fall back to calling
		if err := r.bet(s, Call, 0); err != nil {
			r.logger.WithError(err).WithField("bot", s.DisplayName).Error("bot could not bet")
		}
	}
}

// botShouldHit stays on a qualifying total, hits below the low band and in the dead zone, and flips a
// coin just under the high band
func (r *Room) botShouldHit(s *Seat) bool {
	pts := poker.EvaluatePoints(s.Hand)
	if pts.QualifiesLow() || pts.QualifiesHigh() {
		return false
	}

	total := pts.High
	switch {
	case total < poker.LowBandMin:
		return true
	case total > poker.LowBandMax && total < 62:
		return true
	case total >= 62 && total < poker.HighBandMin:
		return r.rng.Intn(2) == 0
	}

	return false
}
