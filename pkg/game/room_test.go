package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaingang-server/internal/rng"
	"chaingang-server/pkg/deck"
)

type recordingLedger struct {
	credits map[string]int
	wins    map[string]int
	losses  map[string]int
}

func newRecordingLedger() *recordingLedger {
	return &recordingLedger{
		credits: make(map[string]int),
		wins:    make(map[string]int),
		losses:  make(map[string]int),
	}
}

func (l *recordingLedger) Credit(_ context.Context, id string, amount int) error {
	l.credits[id] += amount
	return nil
}

func (l *recordingLedger) RecordWin(_ context.Context, id string) error {
	l.wins[id]++
	return nil
}

func (l *recordingLedger) RecordLoss(_ context.Context, id string) error {
	l.losses[id]++
	return nil
}

// riggedDeck deals the prefix first and the rest of a standard deck after it
func riggedDeck(prefix string) func() *deck.Deck {
	return func() *deck.Deck {
		cards := deck.CardsFromString(prefix)
		for _, c := range deck.New() {
			if !deck.Hand(cards).HasCard(c) {
				cards = append(cards, c)
			}
		}

		return deck.FromCards(cards)
	}
}

type testRoom struct {
	*Room
	t      *testing.T
	clock  *quartz.Mock
	ledger *recordingLedger
}

func newTestRoom(t *testing.T, tag string, prefix string) *testRoom {
	t.Helper()

	variant, err := NewVariant(tag)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.BotFillDelay = 0

	mock := quartz.NewMock(t)
	ledger := newRecordingLedger()
	deps := Dependencies{
		Clock:  mock,
		Ledger: ledger,
		RNG:    rng.NewSeeded(1),
	}

	if prefix != "" {
		deps.NewDeck = riggedDeck(prefix)
	}

	return &testRoom{
		Room:   NewRoom("test", false, variant, opts, deps),
		t:      t,
		clock:  mock,
		ledger: ledger,
	}
}

func (tr *testRoom) join(ids ...string) {
	tr.t.Helper()
	for _, id := range ids {
		_, err := tr.Join(Profile{ID: id, DisplayName: id}, 1000)
		require.NoError(tr.t, err)
	}
}

// advance moves the mock clock forward by d, firing every timer on the way
func (tr *testRoom) advance(d time.Duration) {
	tr.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for d > 0 {
		next, ok := tr.clock.Peek()
		if !ok || next > d {
			tr.clock.Advance(d).MustWait(ctx)
			return
		}

		_, w := tr.clock.AdvanceNext()
		w.MustWait(ctx)
		d -= next
	}
}

func (tr *testRoom) seat(id string) *Seat {
	tr.t.Helper()
	s, ok := tr.Seat(id)
	require.True(tr.t, ok, "seat %s", id)
	return s
}

func (tr *testRoom) anteAll(ids ...string) {
	tr.t.Helper()
	for _, id := range ids {
		require.NoError(tr.t, tr.Ante(id))
	}
}

func (tr *testRoom) checkAll(ids ...string) {
	tr.t.Helper()
	for _, id := range ids {
		require.NoError(tr.t, tr.Bet(id, Check, 0))
	}
}

func (tr *testRoom) logged(msg string) bool {
	for _, l := range tr.Log() {
		if l.Message == msg {
			return true
		}
	}

	return false
}

func TestRoom_JoinSchedulesStart(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice")
	tr.advance(10 * time.Second)
	a.Equal(PhaseWaiting, tr.Phase())

	tr.join("bob")
	tr.advance(2 * time.Second)
	a.Equal(PhaseWaiting, tr.Phase())

	tr.advance(time.Second)
	a.Equal(PhaseAnte, tr.Phase())
	a.Equal(1, tr.HandNumber())
	a.Len(tr.seat("alice").Hand, 5)
	a.Len(tr.seat("bob").Hand, 5)
	a.Equal(52-15-10, tr.deck.Remaining())
}

func TestRoom_Join(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("p1", "p2", "p3", "p4", "p5")

	_, err := tr.Join(Profile{ID: "p6"}, 1000)
	a.Equal(ErrRoomFull, err)

	// reconnecting returns the same seat
	s, err := tr.Join(Profile{ID: "p3"}, 50)
	a.NoError(err)
	a.Equal(1000, s.Chips)
	a.Len(tr.Seats(), 5)
}

func TestRoom_JoinMidHandSitsOut(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob")
	tr.advance(3 * time.Second)
	a.Equal(PhaseAnte, tr.Phase())

	tr.join("carol")
	carol := tr.seat("carol")
	a.True(carol.SittingOut)
	a.True(carol.Folded)
	a.Equal(ErrSittingOut, tr.Ante("carol"))

	// the hand continues without carol
	tr.anteAll("alice", "bob")
	a.Equal(PhasePairs, tr.Phase())
}

func TestRoom_LeaveWhileWaiting(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob")
	a.NoError(tr.Leave("bob"))
	a.Len(tr.Seats(), 1)
	a.Equal(1, tr.HumanCount())

	tr.advance(3 * time.Second)
	a.Equal(PhaseWaiting, tr.Phase())
	a.Equal(ErrSeatNotFound, tr.Leave("bob"))
}

func TestRoom_LeaveMidHandEarlyWin(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob")
	tr.advance(3 * time.Second)
	tr.anteAll("alice", "bob")
	tr.advance(2 * time.Second)
	a.Equal(PhaseDraw, tr.Phase())

	a.NoError(tr.Leave("bob"))
	a.Equal(PhaseShowdown, tr.Phase())
	a.Equal(1010, tr.seat("alice").Chips)
	a.True(tr.Result().EarlyWin)
	a.Equal(1, tr.ledger.wins["alice"])

	// bob's seat is removed at the next hand, which cannot start alone
	tr.advance(5 * time.Second)
	a.Equal(PhaseWaiting, tr.Phase())
	a.Len(tr.Seats(), 1)
	a.Equal(1, tr.HumanCount())
}

func TestRoom_AnteTimeout(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob", "carol")
	tr.advance(3 * time.Second)
	tr.anteAll("alice", "bob")

	tr.seat("carol").Chips = 5
	a.Equal(ErrInsufficientChips, tr.Ante("carol"))

	tr.advance(30 * time.Second)
	a.Equal(PhasePairs, tr.Phase())
	a.True(tr.seat("carol").SittingOut)
	a.Equal(20, tr.Pot())
}

func TestRoom_AnteTimeoutRefunds(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob")
	tr.advance(3 * time.Second)
	tr.anteAll("alice")
	a.Equal(990, tr.seat("alice").Chips)

	tr.advance(30 * time.Second)
	a.Equal(PhaseWaiting, tr.Phase())
	a.Equal(1000, tr.seat("alice").Chips)
	a.Equal(0, tr.Pot())
	a.Equal(0, tr.ledger.credits["alice"])
	a.True(tr.logged("Not enough players anted. Antes were refunded."))

	// both seats are still there, so the next hand is dealt after the start delay
	tr.advance(3 * time.Second)
	a.Equal(PhaseAnte, tr.Phase())
	a.Equal(2, tr.HandNumber())
	a.False(tr.seat("bob").SittingOut)
}

func TestRoom_WrongPhase(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob")
	a.Equal(ErrWrongPhase, tr.Ante("alice"))
	a.Equal(ErrWrongPhase, tr.Bet("alice", Check, 0))
	a.Equal(ErrWrongPhase, tr.ConfirmDraw("alice", nil))
	a.Equal(ErrWrongPhase, tr.Declare("alice", "high"))
	a.Equal(ErrWrongPhase, tr.Hit("alice"))

	tr.advance(3 * time.Second)
	a.Equal(ErrSeatNotFound, tr.Ante("mallory"))
	a.NoError(tr.Ante("alice"))
	a.Equal(ErrAlreadyActed, tr.Ante("alice"))
}

func TestRoom_Close(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob")
	tr.Close()
	a.Nil(tr.pending)

	tr.advance(5 * time.Second)
	a.Equal(PhaseWaiting, tr.Phase())
}

func TestRoom_BotFillAfterLeave(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.opts.BotFillDelay = 20 * time.Second
	tr.join("alice", "bob")
	a.Nil(tr.fill)

	a.NoError(tr.Leave("bob"))
	a.NotNil(tr.fill)

	tr.advance(20 * time.Second)
	if a.Len(tr.Seats(), 2) {
		a.True(tr.Seats()[1].IsBot)
	}
	a.Equal(1, tr.HumanCount())
}

func TestRoom_RejoinTakesFreshChips(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	tr.join("alice", "bob", "carol")
	tr.advance(3 * time.Second)
	tr.anteAll("alice", "bob", "carol")

	a.NoError(tr.Leave("alice"))
	a.Equal(990, tr.seat("alice").Chips)

	// alice lost chips at another table before coming back
	s, err := tr.Join(Profile{ID: "alice", DisplayName: "alice"}, 700)
	a.NoError(err)
	a.Same(tr.seat("alice"), s)
	a.False(s.Left)
	a.True(s.Folded)
	a.Equal(700, s.Chips)
	a.Equal(30, tr.Pot())
	a.True(tr.logged("alice rejoined the table."))

	// a second connection to a seat that was never left keeps the stack
	s, err = tr.Join(Profile{ID: "bob", DisplayName: "bob"}, 5)
	a.NoError(err)
	a.Equal(990, s.Chips)
}
