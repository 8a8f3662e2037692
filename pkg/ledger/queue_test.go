package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type failingLedger struct {
	*Memory
}

func (failingLedger) Credit(context.Context, string, int) error {
	return errors.New("disk full")
}

func TestQueue_Ordered(t *testing.T) {
	a := assert.New(t)

	m := NewMemory(1000)
	q := NewQueue(m, 4, nil)
	defer q.Close()

	for i := 0; i < 100; i++ {
		a.NoError(q.Credit(cbg, "alice", 1))
	}
	a.NoError(q.RecordWin(cbg, "alice"))
	a.NoError(q.RecordLoss(cbg, "bob"))

	// the read waits behind every queued write
	balance, err := q.GetBalance(cbg, "alice")
	a.NoError(err)
	a.Equal(1100, balance)

	acct, err := m.GetAccount(cbg, "alice")
	a.NoError(err)
	a.Equal(1, acct.Wins)
}

func TestQueue_CloseDrains(t *testing.T) {
	a := assert.New(t)

	m := NewMemory(1000)
	q := NewQueue(m, 64, nil)
	for i := 0; i < 50; i++ {
		a.NoError(q.Credit(cbg, "alice", -2))
	}

	q.Close()
	balance, _ := m.GetBalance(cbg, "alice")
	a.Equal(900, balance)

	a.Equal(ErrQueueClosed, q.Credit(cbg, "alice", 1))
	_, err := q.GetBalance(cbg, "alice")
	a.Equal(ErrQueueClosed, err)

	// closing twice is fine
	q.Close()
}

func TestQueue_LogsFailures(t *testing.T) {
	a := assert.New(t)

	logger, hook := test.NewNullLogger()
	q := NewQueue(failingLedger{NewMemory(1000)}, 1, logger)
	a.NoError(q.Credit(cbg, "alice", 10))
	q.Close()

	entry := hook.LastEntry()
	if a.NotNil(entry) {
		a.Equal(logrus.ErrorLevel, entry.Level)
		a.Equal("ledger write failed", entry.Message)
		a.Equal("credit", entry.Data["op"])
		a.Equal("alice", entry.Data["playerID"])
	}
}

func TestQueue_GetBalanceContext(t *testing.T) {
	a := assert.New(t)

	block := make(chan struct{})
	m := NewMemory(1000)
	q := NewQueue(m, 1, nil)
	defer func() {
		close(block)
		q.Close()
	}()

	// park the worker so the read cannot be served
	a.NoError(q.enqueue(func(context.Context) { <-block }))

	ctx, cancel := context.WithTimeout(cbg, 20*time.Millisecond)
	defer cancel()
	_, err := q.GetBalance(ctx, "alice")
	a.Equal(context.DeadlineExceeded, err)
}

func TestQueue_GetAccount(t *testing.T) {
	a := assert.New(t)

	m := NewMemory(1000)
	q := NewQueue(m, 4, nil)
	defer q.Close()

	a.NoError(q.RecordLoss(cbg, "alice"))
	acct, err := q.GetAccount(cbg, "alice")
	a.NoError(err)
	a.Equal(1, acct.Losses)

	// a backend without records has no accounts to return
	q2 := NewQueue(struct{ Ledger }{m}, 1, nil)
	defer q2.Close()
	_, err = q2.GetAccount(cbg, "alice")
	a.Equal(ErrAccountNotFound, err)
}
