package ledger

import (
	"database/sql"

	_ "github.com/lib/pq" // postgres driver
)

// Postgres is a Ledger backed by the `accounts` table created by the migrations in sql/
type Postgres struct {
	sqlLedger
}

// NewPostgres returns a ledger on an open Postgres handle
func NewPostgres(db *sql.DB, startingChips int) *Postgres {
	return &Postgres{
		sqlLedger: sqlLedger{
			db:            db,
			startingChips: startingChips,
			rebind:        dollarPlaceholders,
		},
	}
}
