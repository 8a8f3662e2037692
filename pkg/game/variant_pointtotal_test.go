package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaingang-server/pkg/snapshot"
)

func startPointTotal(t *testing.T, prefix string) *testRoom {
	t.Helper()

	tr := newTestRoom(t, "pointtotal", prefix)
	tr.join("alice", "bob")
	tr.advance(3 * time.Second)
	tr.anteAll("alice", "bob")
	require.Equal(t, PhaseHit, tr.Phase())

	// the seat after the dealer decides first
	require.Equal(t, "bob", tr.Turn().ID)
	return tr
}

func TestPointTotal_Split(t *testing.T) {
	a := assert.New(t)

	// alice holds 15, bob holds 20 and draws 10 then 5
	tr := startPointTotal(t, "5c,10d,10c,10h,10s,5s")

	a.Equal(ErrNotYourTurn, tr.Stay("alice"))
	a.NoError(tr.Hit("bob"))
	a.True(tr.logged("bob hits 10♠."))
	a.NoError(tr.Stay("alice"))
	a.Equal(PhaseBet, tr.Phase())
	a.Equal(50, tr.State("bob").RaiseCap)
	tr.checkAll("bob", "alice")

	// only bob is still deciding
	a.Equal(PhaseHit, tr.Phase())
	a.Equal("bob", tr.Turn().ID)
	a.NoError(tr.Hit("bob"))
	a.Equal(PhaseBet, tr.Phase())
	tr.checkAll("bob", "alice")

	a.NoError(tr.Stay("bob"))
	a.Equal(PhaseBet, tr.Phase())
	a.Equal(100, tr.State("bob").RaiseCap)
	tr.checkAll("bob", "alice")
	a.Equal(PhaseShowdown, tr.Phase())

	res := tr.Result()
	low, ok := res.Winner(SideLow)
	a.True(ok)
	a.Equal("alice", low.SeatID)
	a.Equal("15", low.Hand)
	a.Equal(10, low.Amount)

	high, ok := res.Winner(SideHigh)
	a.True(ok)
	a.Equal("bob", high.SeatID)
	a.Equal("35", high.Hand)
	a.Equal(10, high.Amount)

	a.Equal(1, tr.ledger.wins["bob"])
	snapshot.ValidateSnapshot(t, res, 0)
}

func TestPointTotal_OneSideTakesThePot(t *testing.T) {
	a := assert.New(t)

	tr := startPointTotal(t, "5c,10d,10h,10s")
	a.NoError(tr.Stay("bob"))
	a.NoError(tr.Stay("alice"))
	tr.checkAll("bob", "alice")
	a.Equal(PhaseShowdown, tr.Phase())

	res := tr.Result()
	a.Len(res.Awards, 1)
	pot, ok := res.Winner(SidePot)
	a.True(ok)
	a.Equal("alice", pot.SeatID)
	a.Equal(20, pot.Amount)
	a.Equal(1010, tr.seat("alice").Chips)
}

func TestPointTotal_NoQualifierRollsOver(t *testing.T) {
	a := assert.New(t)

	tr := startPointTotal(t, "10c,10d,10h,10s")
	a.NoError(tr.Stay("bob"))
	a.NoError(tr.Stay("alice"))
	tr.checkAll("bob", "alice")

	res := tr.Result()
	a.Empty(res.Awards)
	a.Equal(20, res.Carried)
	a.True(tr.logged("No one qualified! The $20 pot rolls over."))

	tr.advance(10 * time.Second)
	a.Equal(2, tr.HandNumber())
	a.Equal(PhaseHit, tr.Phase())
	a.Equal(20, tr.Pot())
	a.Equal(990, tr.seat("bob").Chips)
}

func TestPointTotal_EveryoneBustsRedeals(t *testing.T) {
	a := assert.New(t)

	tr := startPointTotal(t, "10c,10d,10h,10s,9c,9d,9h,9s")
	a.NoError(tr.Hit("bob"))
	a.NoError(tr.Hit("alice"))
	tr.checkAll("bob", "alice")

	a.NoError(tr.Hit("bob"))
	a.True(tr.seat("bob").Busted)
	a.True(tr.logged("bob hits 9♡ and busts."))
	a.Equal("alice", tr.Turn().ID)

	a.NoError(tr.Hit("alice"))
	a.True(tr.logged("Everyone busted! Redealing for the $20 pot."))
	a.Equal(2, tr.HandNumber())
	a.Equal(PhaseHit, tr.Phase())
	a.Equal(20, tr.Pot())
	a.False(tr.seat("alice").Busted)
	a.Len(tr.seat("alice").Hand, 2)

	// the button moved, so alice decides first
	a.Equal("alice", tr.Turn().ID)
}

func TestPointTotal_BustedSeatSitsOutBetting(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "pointtotal", "10c,10d,10h,10s,9c,9d,9h,9s,5c")
	tr.join("alice", "bob", "carol")
	tr.advance(3 * time.Second)
	tr.anteAll("alice", "bob", "carol")

	// alice draws to 29, then busts on the next nine
	a.Equal("bob", tr.Turn().ID)
	a.NoError(tr.Stay("bob"))
	a.NoError(tr.Stay("carol"))
	a.NoError(tr.Hit("alice"))
	a.Equal(PhaseBet, tr.Phase())
	tr.checkAll("bob", "carol", "alice")

	a.NoError(tr.Hit("alice"))
	a.True(tr.seat("alice").Busted)
	a.Equal(PhaseBet, tr.Phase())

	// alice is still in the hand but never gets the turn
	a.Equal("bob", tr.Turn().ID)
	a.NoError(tr.Bet("bob", Check, 0))
	a.Equal("carol", tr.Turn().ID)
	a.NoError(tr.Bet("carol", Check, 0))
	a.Equal(PhaseShowdown, tr.Phase())

	for _, h := range tr.Result().Hands {
		a.NotEqual("", h.HighHand)
	}
	a.Len(tr.Result().Hands, 3)
}

func TestPointTotal_HitTimeoutStays(t *testing.T) {
	a := assert.New(t)

	tr := startPointTotal(t, "")
	tr.advance(30 * time.Second)
	a.True(tr.seat("bob").Stayed)
	a.True(tr.logged("bob timed out and stays."))
	a.Equal("alice", tr.Turn().ID)
}

func TestPointTotal_BustedLastSeatRollsOver(t *testing.T) {
	a := assert.New(t)

	// alice holds 20, bob and carol hold 5 and 6
	tr := newTestRoom(t, "pointtotal", "10c,10d,2c,3c,2d,4d,10h,10s")
	tr.join("alice", "bob", "carol")
	tr.advance(3 * time.Second)
	tr.anteAll("alice", "bob", "carol")
	require.Equal(t, PhaseHit, tr.Phase())

	a.NoError(tr.Stay("bob"))
	a.NoError(tr.Stay("carol"))
	a.NoError(tr.Hit("alice"))
	a.Equal(PhaseBet, tr.Phase())
	tr.checkAll("bob", "carol", "alice")

	a.Equal(PhaseHit, tr.Phase())
	a.NoError(tr.Hit("alice"))
	a.True(tr.seat("alice").Busted)

	a.Equal(PhaseBet, tr.Phase())
	a.Equal("bob", tr.Turn().ID)
	a.NoError(tr.Bet("bob", Fold, 0))
	a.NoError(tr.Bet("carol", Fold, 0))

	a.Equal(PhaseShowdown, tr.Phase())
	res := tr.Result()
	a.True(res.EarlyWin)
	a.Empty(res.Awards)
	a.Equal(30, res.Carried)
	a.Equal(990, tr.seat("alice").Chips)
	a.Equal(-10, tr.ledger.credits["alice"])
	a.Equal(0, tr.ledger.wins["alice"])
	a.True(tr.logged("Everyone else folded but alice busted! The $30 pot rolls over."))

	tr.advance(5 * time.Second)
	a.Equal(2, tr.HandNumber())
	a.Equal(PhaseHit, tr.Phase())
	a.Equal(30, tr.Pot())
}
