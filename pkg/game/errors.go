package game

import (
	"errors"

	"chaingang-server/pkg/playable"
)

// ErrWrongPhase is returned when a command does not apply to the current phase
var ErrWrongPhase = errors.New("command not allowed in this phase")

// ErrNotYourTurn is returned when a turn-based command comes from the wrong seat
var ErrNotYourTurn = errors.New("not your turn")

// ErrAlreadyActed is returned when the seat already satisfied the phase requirement
var ErrAlreadyActed = errors.New("already acted")

// ErrSeatNotFound is returned when the player is not seated in the room
var ErrSeatNotFound = errors.New("seat not found")

// ErrSittingOut is returned when a seat that is not dealt in issues a command
var ErrSittingOut = errors.New("sitting out this hand")

// ErrFolded is returned when a folded seat issues a command
var ErrFolded = errors.New("seat has folded")

// ErrCannotCheck is returned when a check is attempted while facing a bet
var ErrCannotCheck = errors.New("cannot check while facing a bet")

// ErrInvalidRaise is returned when a raise does not exceed the current bet
var ErrInvalidRaise = errors.New("raise must exceed the current bet")

// ErrUnknownAction is returned for an unrecognized bet kind
var ErrUnknownAction = errors.New("unknown action")

// ErrInvalidDeclaration is returned when a declaration is not allowed by the variant
var ErrInvalidDeclaration = errors.New("invalid declaration")

// ErrUnknownVariant is returned when no variant matches the tag
var ErrUnknownVariant = errors.New("unknown variant")

// ErrInsufficientChips is returned when a seat cannot cover the ante
var ErrInsufficientChips = playable.UserError("not enough chips")

// ErrRoomFull is returned when every seat is taken
var ErrRoomFull = playable.UserError("room is full")
