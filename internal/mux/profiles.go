package mux

import (
	"context"
	"errors"

	"chaingang-server/internal/jwt"
	"chaingang-server/pkg/game"
	"chaingang-server/pkg/model"
)

const defaultAvatar = "🙂"

// ProfileSource turns a validated identity into the profile shown at the table
type ProfileSource interface {
	Profile(ctx context.Context, identity *jwt.Identity) (game.Profile, error)
}

// ClaimsProfiles uses the profile carried by the token
type ClaimsProfiles struct{}

// Profile returns the profile from the token claims
func (ClaimsProfiles) Profile(_ context.Context, identity *jwt.Identity) (game.Profile, error) {
	return claimsProfile(identity), nil
}

func claimsProfile(identity *jwt.Identity) game.Profile {
	p := game.Profile{
		ID:          identity.ID,
		DisplayName: identity.DisplayName,
		Avatar:      identity.Avatar,
	}

	if p.DisplayName == "" {
		p.DisplayName = identity.ID
	}

	if p.Avatar == "" {
		p.Avatar = defaultAvatar
	}

	return p
}

// ModelProfiles reads the profile from the players table
// A user without a row is created from the token claims.
type ModelProfiles struct{}

// Profile returns the stored profile
func (ModelProfiles) Profile(ctx context.Context, identity *jwt.Identity) (game.Profile, error) {
	player, err := model.GetPlayerByID(ctx, identity.ID)
	if errors.Is(err, model.ErrPlayerNotFound) {
		p := claimsProfile(identity)
		player, err = model.SavePlayer(ctx, p.ID, p.DisplayName, p.Avatar)
	}

	if err != nil {
		return game.Profile{}, err
	}

	return game.Profile{
		ID:          player.ID,
		DisplayName: player.DisplayName,
		Avatar:      player.Avatar,
	}, nil
}
