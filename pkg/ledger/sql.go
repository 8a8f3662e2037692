package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const accountColumns = `
accounts.player_id,
accounts.balance,
accounts.wins,
accounts.losses`

// sqlLedger implements Ledger on an `accounts` table
// Queries are written with ? placeholders and rebound for the driver.
type sqlLedger struct {
	db            *sql.DB
	startingChips int
	rebind        func(string) string
}

func (l *sqlLedger) exec(ctx context.Context, query string, args ...interface{}) error {
	if _, err := l.db.ExecContext(ctx, l.rebind(query), args...); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	return nil
}

// GetBalance returns the player's balance, creating the account if needed
func (l *sqlLedger) GetBalance(ctx context.Context, playerID string) (int, error) {
	const insert = `
INSERT INTO accounts (player_id, balance)
VALUES (?, ?)
ON CONFLICT (player_id) DO NOTHING`

	if err := l.exec(ctx, insert, playerID, l.startingChips); err != nil {
		return 0, err
	}

	acct, err := l.GetAccount(ctx, playerID)
	if err != nil {
		return 0, err
	}

	return acct.Balance, nil
}

// Credit adds amount to the balance, amount may be negative
func (l *sqlLedger) Credit(ctx context.Context, playerID string, amount int) error {
	const query = `
INSERT INTO accounts (player_id, balance)
VALUES (?, ?)
ON CONFLICT (player_id) DO UPDATE
SET balance = accounts.balance + ?,
    updated = CURRENT_TIMESTAMP`

	return l.exec(ctx, query, playerID, l.startingChips+amount, amount)
}

// RecordWin increments the win counter
func (l *sqlLedger) RecordWin(ctx context.Context, playerID string) error {
	const query = `
INSERT INTO accounts (player_id, balance, wins)
VALUES (?, ?, 1)
ON CONFLICT (player_id) DO UPDATE
SET wins = accounts.wins + 1,
    updated = CURRENT_TIMESTAMP`

	return l.exec(ctx, query, playerID, l.startingChips)
}

// RecordLoss increments the loss counter
func (l *sqlLedger) RecordLoss(ctx context.Context, playerID string) error {
	const query = `
INSERT INTO accounts (player_id, balance, losses)
VALUES (?, ?, 1)
ON CONFLICT (player_id) DO UPDATE
SET losses = accounts.losses + 1,
    updated = CURRENT_TIMESTAMP`

	return l.exec(ctx, query, playerID, l.startingChips)
}

// GetAccount returns the player's record
func (l *sqlLedger) GetAccount(ctx context.Context, playerID string) (*Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE player_id = ?`

	var acct Account
	row := l.db.QueryRowContext(ctx, l.rebind(query), playerID)
	if err := row.Scan(&acct.PlayerID, &acct.Balance, &acct.Wins, &acct.Losses); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}

		return nil, fmt.Errorf("ledger: %w", err)
	}

	return &acct, nil
}

// Close closes the database handle
func (l *sqlLedger) Close() error {
	return l.db.Close()
}

// dollarPlaceholders rewrites ? placeholders as $1, $2, ...
func dollarPlaceholders(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}

		n++
		sb.WriteString("$" + strconv.Itoa(n))
	}

	return sb.String()
}

func noRebind(query string) string {
	return query
}
