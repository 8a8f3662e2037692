package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const opTimeout = 5 * time.Second

// Queue applies ledger writes in order on a single worker
// Writes return as soon as they are queued, failures are logged. Reads wait behind the queued writes.
type Queue struct {
	ledger Ledger
	logger logrus.FieldLogger
	ops    chan func(ctx context.Context)
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewQueue starts the worker
func NewQueue(l Ledger, size int, logger logrus.FieldLogger) *Queue {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	q := &Queue{
		ledger: l,
		logger: logger.WithField("component", "ledgerQueue"),
		ops:    make(chan func(ctx context.Context), size),
		done:   make(chan struct{}),
	}

	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for op := range q.ops {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		op(ctx)
		cancel()
	}
}

func (q *Queue) enqueue(op func(ctx context.Context)) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.ops <- op
	return nil
}

// write queues a write and logs its failure
func (q *Queue) write(playerID string, name string, fn func(ctx context.Context) error) error {
	return q.enqueue(func(ctx context.Context) {
		if err := fn(ctx); err != nil {
			q.logger.WithError(err).WithFields(logrus.Fields{
				"playerID": playerID,
				"op":       name,
			}).Error("ledger write failed")
		}
	})
}

// queueRead runs fn on the worker and waits for its result
func queueRead[T any](ctx context.Context, q *Queue, fn func(ctx context.Context) (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}

	ch := make(chan result, 1)
	if err := q.enqueue(func(opCtx context.Context) {
		val, err := fn(opCtx)
		ch <- result{val: val, err: err}
	}); err != nil {
		var zero T
		return zero, err
	}

	select {
	case res := <-ch:
		return res.val, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// GetBalance returns the balance after every write queued before it
func (q *Queue) GetBalance(ctx context.Context, playerID string) (int, error) {
	return queueRead(ctx, q, func(ctx context.Context) (int, error) {
		return q.ledger.GetBalance(ctx, playerID)
	})
}

// GetAccount returns the full record if the backend keeps one
func (q *Queue) GetAccount(ctx context.Context, playerID string) (*Account, error) {
	getter, ok := q.ledger.(AccountGetter)
	if !ok {
		return nil, ErrAccountNotFound
	}

	return queueRead(ctx, q, func(ctx context.Context) (*Account, error) {
		return getter.GetAccount(ctx, playerID)
	})
}

// Credit queues a balance change
func (q *Queue) Credit(_ context.Context, playerID string, amount int) error {
	return q.write(playerID, "credit", func(ctx context.Context) error {
		return q.ledger.Credit(ctx, playerID, amount)
	})
}

// RecordWin queues a win
func (q *Queue) RecordWin(_ context.Context, playerID string) error {
	return q.write(playerID, "recordWin", func(ctx context.Context) error {
		return q.ledger.RecordWin(ctx, playerID)
	})
}

// RecordLoss queues a loss
func (q *Queue) RecordLoss(_ context.Context, playerID string) error {
	return q.write(playerID, "recordLoss", func(ctx context.Context) error {
		return q.ledger.RecordLoss(ctx, playerID)
	})
}

// Close stops accepting writes and waits for the queued ones to finish
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ops)
	}
	q.mu.Unlock()

	<-q.done
}
