package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"chaingang-server/pkg/db"
)

const playerColumns = `
players.id,
players.display_name,
players.avatar,
players.created,
players.updated`

// ErrPlayerNotFound is returned when no players row matches the id
var ErrPlayerNotFound = errors.New("player not found")

// Player is a record in the `players` table
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.DisplayName, &player.Avatar, &player.Created, &player.Updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}

		return nil, err
	}

	return &player, nil
}

// GetPlayerByID returns player based on the ID
func GetPlayerByID(ctx context.Context, id string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// SavePlayer creates the player or updates its profile
func SavePlayer(ctx context.Context, id, displayName, avatar string) (*Player, error) {
	const query = `
INSERT INTO players (id, display_name, avatar)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET display_name = excluded.display_name,
    avatar = excluded.avatar,
    updated = (NOW() AT TIME ZONE 'utc')
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, id, displayName, avatar)
	return getPlayerByRow(row)
}
