package room

import "chaingang-server/pkg/playable"

// ErrRoomNotFound is returned when a private code does not match an open room
var ErrRoomNotFound = playable.UserError("room not found")

// ErrNotInRoom is returned when a game action arrives before the client joined a room
var ErrNotInRoom = playable.UserError("you are not in a room")

// ErrBalanceUnavailable is returned when the ledger could not be read
var ErrBalanceUnavailable = playable.UserError("could not load your chips, try again")

// ErrAlreadySeated is returned when the player holds a seat at another table
var ErrAlreadySeated = playable.UserError("you are already seated at another table")

// ErrSpectating is returned when a spectator sends a game action
var ErrSpectating = playable.UserError("you are watching this table")

type joinedRoom struct {
	RoomID     string `json:"roomId"`
	IsPrivate  bool   `json:"isPrivate"`
	Variant    string `json:"variant"`
	Spectating bool   `json:"spectating,omitempty"`
}

func privateCodeResponse(ctx string, code string) *playable.Response {
	return &playable.Response{
		Key:     "privateCode",
		Value:   code,
		Context: ctx,
	}
}
