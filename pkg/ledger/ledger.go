// Package ledger stores player chip balances and win/loss counters
package ledger

import (
	"context"
	"errors"
	"fmt"

	"chaingang-server/internal/config"
	"chaingang-server/pkg/db"
)

// ErrAccountNotFound is returned when the player has no account yet
var ErrAccountNotFound = errors.New("account not found")

// ErrQueueClosed is returned when writing to a closed queue
var ErrQueueClosed = errors.New("ledger queue is closed")

// Ledger is the durable store of chip balances
// An account is created with the starting balance the first time a player is seen.
type Ledger interface {
	GetBalance(ctx context.Context, playerID string) (int, error)
	Credit(ctx context.Context, playerID string, amount int) error
	RecordWin(ctx context.Context, playerID string) error
	RecordLoss(ctx context.Context, playerID string) error
}

// Account is a player's ledger record
type Account struct {
	PlayerID string `json:"playerId"`
	Balance  int    `json:"balance"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// AccountGetter is implemented by the backends that can return the full record
type AccountGetter interface {
	GetAccount(ctx context.Context, playerID string) (*Account, error)
}

// New returns the backend selected by the configuration
func New(cfg config.Config) (Ledger, error) {
	switch cfg.Ledger.Driver {
	case config.LedgerPostgres:
		return NewPostgres(db.Instance(), cfg.StartingChips), nil
	case config.LedgerSQLite:
		return OpenSQLite(cfg.Ledger.SQLitePath, cfg.StartingChips)
	case config.LedgerMemory:
		return NewMemory(cfg.StartingChips), nil
	}

	return nil, fmt.Errorf("%w: %s", config.ErrUnknownLedgerDriver, cfg.Ledger.Driver)
}
