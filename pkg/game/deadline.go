package game

import (
	"time"

	"github.com/coder/quartz"

	"chaingang-server/pkg/playable"
)

// stamp identifies the decision point a timer was armed for
type stamp struct {
	hand    int
	step    int
	turnSeq int
}

func (r *Room) stamp() stamp {
	return stamp{
		hand:    r.hand,
		step:    r.step,
		turnSeq: r.turnSeq,
	}
}

// after schedules fn on the room's serializer
// If the room moved past the current decision point by the time the timer fires, fn is not called.
func (r *Room) after(d time.Duration, fn func()) *quartz.Timer {
	st := r.stamp()
	return r.clock.AfterFunc(d, func() {
		r.exec(func() {
			if r.stamp() != st {
				return
			}

			fn()
		})
	})
}

func (r *Room) stopTimer(t **quartz.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// changed re-arms the timers for the current state and notifies listeners
func (r *Room) changed() {
	r.armDeadline()
	r.scheduleBots()
	r.notify()
}

func (r *Room) hasDeadline() bool {
	switch {
	case r.phase == PhaseAnte, r.phase.IsDraw(), r.phase == PhaseDecl:
		return true
	case r.phase.IsBet(), r.phase == PhaseHit:
		return r.turn >= 0
	}

	return false
}

func (r *Room) armDeadline() {
	st := r.stamp()
	if st == r.deadlineStamp {
		return
	}

	r.deadlineStamp = st
	r.stopTimer(&r.deadline)
	r.deadlineAt = time.Time{}

	if !r.hasDeadline() {
		return
	}

	r.deadlineAt = r.clock.Now().Add(r.opts.TurnTimeout)
	r.deadline = r.after(r.opts.TurnTimeout, func() {
		r.deadline = nil
		r.onDeadline()
		r.changed()
	})
}

// Deadline returns when the pending decision times out, or the zero time
func (r *Room) Deadline() time.Time {
	return r.deadlineAt
}

// onDeadline plays the default action for everyone the room is waiting on
func (r *Room) onDeadline() {
	switch {
	case r.phase == PhaseAnte:
		r.anteTimeout()
	case r.phase.IsDraw():
		for _, s := range r.seats {
			if !s.Folded && !s.DrewCards {
				r.logf(playable.LogAction, s, "%s timed out and kept their cards.", s.DisplayName)
				r.confirmDraw(s, nil)
			}
		}

		r.checkDraw()
	case r.phase.IsBet():
		s := r.Turn()
		if s == nil {
			return
		}

		r.logf(playable.LogAction, s, "%s timed out and folded.", s.DisplayName)
		s.Folded = true
		s.Acted = true
		r.advanceTurn()
	case r.phase == PhaseDecl:
		for _, s := range r.seats {
			if !s.Folded && s.Declaration == DeclareNone {
				r.logf(playable.LogAction, s, "%s timed out and declared HIGH.", s.DisplayName)
				s.Declaration = DeclareHigh
			}
		}
		r.checkDeclared()
	case r.phase == PhaseHit:
		s := r.Turn()
		if s == nil {
			return
		}

		r.logf(playable.LogAction, s, "%s timed out and stays.", s.DisplayName)
		r.stay(s)
	}
}

// anteTimeout sits out everyone who did not ante
func (r *Room) anteTimeout() {
	for _, s := range r.seats {
		if !s.Folded && !s.Ready {
			s.SittingOut = true
			s.Folded = true
			s.Hand = nil
			r.logf(playable.LogAction, s, "%s did not ante and sits this hand out.", s.DisplayName)
		}
	}

	if r.alive() < 2 {
		r.cancelHand("Not enough players anted.")
		return
	}

	r.checkAnte()
}

// scheduleStart starts the first hand after the start delay
func (r *Room) scheduleStart() {
	r.stopTimer(&r.pending)
	r.pending = r.after(r.opts.StartDelay, func() {
		r.pending = nil
		if r.phase != PhaseWaiting || r.eligible() < 2 {
			return
		}

		r.startHand()
		r.changed()
	})
}

// scheduleRestart deals the next hand after d
func (r *Room) scheduleRestart(d time.Duration) {
	r.stopTimer(&r.pending)
	r.pending = r.after(d, func() {
		r.pending = nil
		r.startHand()
		r.changed()
	})
}

// scheduleAdvance runs fn after d unless the room moves on first
func (r *Room) scheduleAdvance(d time.Duration, fn func()) {
	r.stopTimer(&r.pending)
	r.pending = r.after(d, func() {
		r.pending = nil
		fn()
		r.changed()
	})
}

// scheduleBotFill adds a bot when a public room has a lone human for too long
func (r *Room) scheduleBotFill() {
	r.stopTimer(&r.fill)
	if r.Private || r.opts.BotFillDelay <= 0 || len(r.seats) != 1 || r.HumanCount() != 1 {
		return
	}

	// the fill timer outlives phase changes, so it is not stamped
	r.fill = r.clock.AfterFunc(r.opts.BotFillDelay, func() {
		r.exec(func() {
			r.fill = nil
			if len(r.seats) != 1 || r.HumanCount() != 1 {
				return
			}

			if _, err := r.AddBot(); err != nil {
				r.logger.WithError(err).Warn("could not add bot")
			}
		})
	})
}
