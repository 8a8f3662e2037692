package game

import (
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chaingang-server/internal/rng"
	"chaingang-server/internal/util"
	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
	"chaingang-server/pkg/poker"
)

// Dependencies are the collaborators of a room
// Any nil field is replaced with a default
type Dependencies struct {
	Logger logrus.FieldLogger
	Clock  quartz.Clock

	// Exec serializes timer and bot callbacks with player commands
	Exec func(fn func())

	Ledger Ledger

	// Notify is called after every state change
	Notify func()

	RNG rng.Generator

	// NewDeck returns the deck for a new hand
	NewDeck func() *deck.Deck
}

// Room is a single table running one variant
// A room is not safe for concurrent use. Every call, including timer callbacks, must be serialized
// through Dependencies.Exec.
type Room struct {
	ID      string
	Private bool

	variant Variant
	opts    Options

	logger  logrus.FieldLogger
	clock   quartz.Clock
	exec    func(fn func())
	ledger  Ledger
	notify  func()
	rng     rng.Generator
	newDeck func() *deck.Deck

	seats      []*Seat
	board      []poker.Column
	deck       *deck.Deck
	pot        int
	currentBet int
	phase      Phase
	turn       int
	dealer     int
	hand       int
	step       int
	turnSeq    int
	skipAnte   bool
	result     *Result
	log        []*playable.LogMessage

	deadline      *quartz.Timer
	deadlineStamp stamp
	deadlineAt    time.Time
	pending       *quartz.Timer
	fill          *quartz.Timer
	bots          map[string]*botTimer

	bestHands map[string]cachedBestHand
}

// NewRoom returns a new room in the waiting phase
func NewRoom(id string, private bool, variant Variant, opts Options, deps Dependencies) *Room {
	r := &Room{
		ID:        id,
		Private:   private,
		variant:   variant,
		opts:      opts,
		logger:    deps.Logger,
		clock:     deps.Clock,
		exec:      deps.Exec,
		ledger:    deps.Ledger,
		notify:    deps.Notify,
		rng:       deps.RNG,
		newDeck:   deps.NewDeck,
		phase:     PhaseWaiting,
		turn:      -1,
		dealer:    -1,
		bots:      make(map[string]*botTimer),
		bestHands: make(map[string]cachedBestHand),
	}

	if r.logger == nil {
		r.logger = logrus.StandardLogger()
	}
	r.logger = r.logger.WithFields(logrus.Fields{
		"room":    id,
		"variant": variant.Tag(),
	})

	if r.clock == nil {
		r.clock = quartz.NewReal()
	}

	if r.exec == nil {
		r.exec = func(fn func()) { fn() }
	}

	if r.ledger == nil {
		r.ledger = noopLedger{}
	}

	if r.notify == nil {
		r.notify = func() {}
	}

	if r.rng == nil {
		r.rng = rng.Crypto{}
	}

	if r.newDeck == nil {
		r.newDeck = func() *deck.Deck {
			return deck.NewShuffled(r.rng)
		}
	}

	return r
}

// Variant returns the variant the room plays
func (r *Room) Variant() Variant {
	return r.variant
}

// Phase returns the current phase
func (r *Room) Phase() Phase {
	return r.phase
}

// Pot returns the chips in the pot
func (r *Room) Pot() int {
	return r.pot
}

// CurrentBet returns the amount to match in the current bet round
func (r *Room) CurrentBet() int {
	return r.currentBet
}

// HandNumber returns the number of hands dealt in this room
func (r *Room) HandNumber() int {
	return r.hand
}

// Result returns the result of the last showdown or early win
func (r *Room) Result() *Result {
	return r.result
}

// Seats returns the seats in seat order
func (r *Room) Seats() []*Seat {
	return r.seats
}

// Seat returns the seat for the player ID
func (r *Room) Seat(id string) (*Seat, bool) {
	s, _ := r.seatByID(id)
	return s, s != nil
}

// Turn returns the seat holding the turn, or nil
func (r *Room) Turn() *Seat {
	if r.turn < 0 || r.turn >= len(r.seats) {
		return nil
	}

	return r.seats[r.turn]
}

// HumanCount returns the number of seated humans that have not left
func (r *Room) HumanCount() int {
	n := 0
	for _, s := range r.seats {
		if !s.IsBot && !s.Left {
			n++
		}
	}

	return n
}

// IsFull returns true if no seat is open
func (r *Room) IsFull() bool {
	return len(r.seats) >= r.opts.MaxSeats
}

func (r *Room) seatByID(id string) (*Seat, int) {
	for i, s := range r.seats {
		if s.ID == id {
			return s, i
		}
	}

	return nil, -1
}

// alive returns the number of seats that have not folded
func (r *Room) alive() int {
	n := 0
	for _, s := range r.seats {
		if !s.Folded {
			n++
		}
	}

	return n
}

func (r *Room) eligible() int {
	n := 0
	for _, s := range r.seats {
		if !s.Left {
			n++
		}
	}

	return n
}

// scan returns the first seat index starting at start that matches, or -1
func (r *Room) scan(start int, match func(s *Seat) bool) int {
	n := len(r.seats)
	if n == 0 {
		return -1
	}

	start = ((start % n) + n) % n
	for i := 0; i < n; i++ {
		j := (start + i) % n
		if match(r.seats[j]) {
			return j
		}
	}

	return -1
}

func (r *Room) setPhase(p Phase) {
	r.phase = p
	r.step++
	r.turn = -1
	r.stopTimer(&r.pending)
}

func (r *Room) setTurn(idx int) {
	r.turn = idx
	r.turnSeq++
}

// Join seats the player
// A player that is already seated is reconnected to the same seat. A player joining mid-hand sits out
// until the next hand. A seat that was left is taken back with chips, the player may have played
// elsewhere since.
func (r *Room) Join(p Profile, chips int) (*Seat, error) {
	if s, _ := r.seatByID(p.ID); s != nil {
		if s.Left {
			s.Left = false
			s.Chips = chips
			r.logf(playable.LogImportant, s, "%s rejoined the table.", s.DisplayName)
			r.changed()
		}

		return s, nil
	}

	if r.IsFull() {
		return nil, ErrRoomFull
	}

	s := newSeat(p, chips)
	if r.phase != PhaseWaiting {
		s.SittingOut = true
		s.Folded = true
	}

	r.seats = append(r.seats, s)
	r.logf(playable.LogImportant, s, "%s joined the table.", s.DisplayName)

	if r.phase == PhaseWaiting && r.eligible() >= 2 {
		r.scheduleStart()
	}

	r.scheduleBotFill()
	r.changed()

	return s, nil
}

// AddBot seats a computer-controlled player
func (r *Room) AddBot() (*Seat, error) {
	if r.IsFull() {
		return nil, ErrRoomFull
	}

	return r.Join(Profile{
		ID:          "bot-" + uuid.New().String(),
		DisplayName: util.GetRandomName(),
		Avatar:      "🤖",
		IsBot:       true,
	}, r.opts.BotStack)
}

// Leave folds the player and removes the seat at the next hand boundary
// While the room is waiting the seat is removed immediately
func (r *Room) Leave(id string) error {
	s, idx := r.seatByID(id)
	if s == nil {
		return ErrSeatNotFound
	}

	if r.phase == PhaseWaiting {
		r.seats = append(r.seats[:idx], r.seats[idx+1:]...)
		r.logf(playable.LogImportant, s, "%s left the table.", s.DisplayName)
		r.scheduleBotFill()
		r.changed()
		return nil
	}

	if s.Left {
		return nil
	}

	s.Left = true
	wasIn := !s.Folded
	s.Folded = true
	r.logf(playable.LogImportant, s, "%s left the table.", s.DisplayName)

	if wasIn {
		r.afterFold(idx)
	}

	r.changed()
	return nil
}

// afterFold re-checks the phase barriers once a seat is out of the hand outside of its own turn
func (r *Room) afterFold(idx int) {
	switch r.phase {
	case PhaseWaiting, PhaseShowdown:
		return
	case PhaseAnte:
		if r.alive() < 2 {
			r.cancelHand("Not enough players to continue.")
			return
		}

		r.checkAnte()
		return
	}

	if r.alive() <= 1 {
		r.earlyWin()
		return
	}

	switch {
	case r.phase.IsBet():
		if idx == r.turn {
			r.advanceTurn()
		}
	case r.phase == PhaseHit:
		if idx == r.turn {
			r.advanceHit()
		}
	case r.phase.IsDraw():
		r.checkDraw()
	case r.phase == PhaseDecl:
		r.checkDeclared()
	}
}

// startHand deals a new hand, or returns the room to waiting if fewer than two seats remain
func (r *Room) startHand() {
	seats := r.seats[:0]
	for _, s := range r.seats {
		if !s.Left {
			seats = append(seats, s)
		}
	}
	r.seats = seats

	for _, s := range r.seats {
		s.resetForHand()
	}

	r.board = nil
	r.currentBet = 0
	r.result = nil
	r.bestHands = make(map[string]cachedBestHand)

	if len(r.seats) < 2 {
		r.setPhase(PhaseWaiting)
		r.scheduleBotFill()
		return
	}

	r.hand++
	r.dealer = (r.dealer + 1) % len(r.seats)
	r.deck = r.newDeck()
	r.logger.WithFields(logrus.Fields{
		"hand": r.hand,
		"deck": r.deck.HashCode(),
	}).Debug("dealing")

	if err := r.variant.deal(r); err != nil {
		r.logger.WithError(err).Error("could not deal")
		r.setPhase(PhaseWaiting)
		return
	}

	if r.skipAnte {
		r.skipAnte = false
		for _, s := range r.seats {
			s.Ready = true
		}

		r.logf(playable.LogImportant, nil, "Fresh deck shuffled. %d players dealt in for a carried pot of $%d.", len(r.seats), r.pot)
		r.variant.afterAnte(r)
		return
	}

	r.setPhase(PhaseAnte)
	r.logf(playable.LogImportant, nil, "Fresh deck shuffled. %d players dealt in. Post your ante!", len(r.seats))
}

// cancelHand refunds the antes of this hand and returns the room to waiting
func (r *Room) cancelHand(reason string) {
	for _, s := range r.seats {
		if s.Ready {
			r.award(s, r.opts.Ante)
		}
		s.Hand = nil
		s.Ready = false
	}

	r.board = nil
	r.logf(playable.LogImportant, nil, "%s Antes were refunded.", reason)
	r.setPhase(PhaseWaiting)

	if r.eligible() >= 2 {
		r.scheduleStart()
	}
}

// earlyWin pays the whole pot to the last seat standing
// A busted last seat wins nothing and the pot rolls over.
func (r *Room) earlyWin() {
	idx := r.scan(0, func(s *Seat) bool { return !s.Folded })
	r.setPhase(PhaseShowdown)
	if idx < 0 {
		r.scheduleRestart(r.opts.EarlyWinRestartDelay)
		return
	}

	w := r.seats[idx]
	if w.Busted {
		// a busted hand cannot win, the pot is dealt again
		r.result = &Result{EarlyWin: true, Carried: r.pot}
		r.skipAnte = true
		r.logf(playable.LogImportant, nil, "Everyone else folded but %s busted! The $%d pot rolls over.", w.DisplayName, r.pot)
		r.scheduleRestart(r.opts.EarlyWinRestartDelay)
		return
	}

	amount := r.pot
	r.award(w, amount)
	r.recordWin(w)
	r.logf(playable.LogWin, w, "%s wins $%d. Everyone else folded!", w.DisplayName, amount)
	r.result = &Result{
		EarlyWin: true,
		Awards: []Award{{
			Side:        SidePot,
			SeatID:      w.ID,
			DisplayName: w.DisplayName,
			Amount:      amount,
		}},
	}

	r.scheduleRestart(r.opts.EarlyWinRestartDelay)
}

// showdown settles the hand through the variant
func (r *Room) showdown() {
	r.setPhase(PhaseShowdown)
	r.result = r.variant.settle(r)
	r.scheduleRestart(r.opts.ShowdownRestartDelay)
}

// Close stops every scheduled timer
func (r *Room) Close() {
	r.stopTimer(&r.deadline)
	r.stopTimer(&r.pending)
	r.stopTimer(&r.fill)
	for id, bt := range r.bots {
		bt.timer.Stop()
		delete(r.bots, id)
	}
}
