package game

import "context"

// Ledger mirrors chip movements to durable storage
// Seats hold the authoritative in-hand stacks. Wagers are mirrored as negative credits, awards and
// refunds as positive credits.
type Ledger interface {
	Credit(ctx context.Context, playerID string, amount int) error
	RecordWin(ctx context.Context, playerID string) error
	RecordLoss(ctx context.Context, playerID string) error
}

type noopLedger struct{}

func (noopLedger) Credit(context.Context, string, int) error { return nil }
func (noopLedger) RecordWin(context.Context, string) error   { return nil }
func (noopLedger) RecordLoss(context.Context, string) error  { return nil }

func (r *Room) credit(seat *Seat, amount int) {
	if seat.IsBot || amount == 0 {
		return
	}

	if err := r.ledger.Credit(context.Background(), seat.ID, amount); err != nil {
		r.logger.WithError(err).WithField("playerID", seat.ID).Error("could not credit ledger")
	}
}

func (r *Room) recordWin(seat *Seat) {
	if seat == nil || seat.IsBot {
		return
	}

	if err := r.ledger.RecordWin(context.Background(), seat.ID); err != nil {
		r.logger.WithError(err).WithField("playerID", seat.ID).Error("could not record win")
	}
}

func (r *Room) recordLoss(seat *Seat) {
	if seat.IsBot {
		return
	}

	if err := r.ledger.RecordLoss(context.Background(), seat.ID); err != nil {
		r.logger.WithError(err).WithField("playerID", seat.ID).Error("could not record loss")
	}
}

// wager moves chips from the seat into the pot
func (r *Room) wager(seat *Seat, amount int) {
	seat.Chips -= amount
	r.pot += amount
	r.credit(seat, -amount)
}

// award moves chips from the pot to the seat
func (r *Room) award(seat *Seat, amount int) {
	seat.Chips += amount
	r.pot -= amount
	r.credit(seat, amount)
}
