package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaingang-server/pkg/deck"
)

func TestRoom_botShouldHit(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "pointtotal", "")
	hit := func(cards string) bool {
		return tr.botShouldHit(&Seat{Hand: deck.CardsFromString(cards)})
	}

	a.False(hit("10c,5d"), "qualified low")
	a.False(hit("10c,10d,10h,5c"), "qualified high")
	a.True(hit("10c,2d"), "under the low band")
	a.True(hit("10c,10d"), "dead zone")
	a.True(hit("10c,10d,10h,13c"), "30.5 is still in the dead zone")
	a.False(hit("10c,10d,10h,10s"), "busted totals are not under the bands")
}

func TestRoom_botDelay(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", "")
	for i := 0; i < 50; i++ {
		d := tr.botDelay()
		a.GreaterOrEqual(d, time.Second)
		a.LessOrEqual(d, 3*time.Second)
	}

	tr.opts.BotMaxDelay = 0
	a.Equal(time.Second, tr.botDelay())
}

func TestColumns_BotDeclare(t *testing.T) {
	a := assert.New(t)

	tr := newTestRoom(t, "columns", columnsDeck)
	tr.join("alice", "bob")
	tr.advance(3 * time.Second)

	// aces full of queens with an 8-7-6-2-A low is mostly declared high
	d := columnSplit{}.botDeclare(tr.Room, tr.seat("alice"))
	a.Contains([]Declaration{DeclareHigh, DeclareSwing}, d)
}

// playBots plays the first hand of a room seated with bots only
func playBots(t *testing.T, tag string) *testRoom {
	t.Helper()

	tr := newTestRoom(t, tag, "")
	for i := 0; i < 3; i++ {
		_, err := tr.AddBot()
		require.NoError(t, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i := 0; i < 5000 && tr.Phase() != PhaseShowdown; i++ {
		_, ok := tr.clock.Peek()
		require.True(t, ok, "nothing scheduled in phase %s", tr.Phase())

		_, w := tr.clock.AdvanceNext()
		w.MustWait(ctx)
	}

	require.Equal(t, PhaseShowdown, tr.Phase())
	return tr
}

func TestBots_PlayAHand(t *testing.T) {
	for _, tag := range []string{"columns", "badugi", "pointtotal"} {
		t.Run(tag, func(t *testing.T) {
			a := assert.New(t)

			tr := playBots(t, tag)
			res := tr.Result()
			require.NotNil(t, res)

			total := tr.Pot() + res.Unclaimed
			for _, s := range tr.Seats() {
				a.True(s.IsBot)
				total += s.Chips
			}

			a.Equal(3000, total)

			// bots are never mirrored to the ledger
			a.Empty(tr.ledger.credits)
			a.Empty(tr.ledger.wins)
		})
	}
}
