package room

import (
	"chaingang-server/internal/config"
	"chaingang-server/pkg/game"
)

// OptionsFromConfig returns the room options for the configuration
// Zero values in the configuration keep the game defaults, except BotFillDelay where zero disables bot fill.
func OptionsFromConfig(cfg config.Config) game.Options {
	opts := game.DefaultOptions()

	setInt(&opts.Ante, cfg.Game.Ante)
	setInt(&opts.EarlyRaiseCap, cfg.Game.EarlyRaiseCap)
	setInt(&opts.FinalRaiseCap, cfg.Game.FinalRaiseCap)
	setInt(&opts.MaxSeats, cfg.Lobby.MaxSeats)
	setInt(&opts.BotStack, cfg.Lobby.BotStack)

	if cfg.Game.TurnTimeout > 0 {
		opts.TurnTimeout = cfg.Game.TurnTimeout
	}

	if cfg.Game.StartDelay > 0 {
		opts.StartDelay = cfg.Game.StartDelay
	}

	if cfg.Game.ShowdownRestartDelay > 0 {
		opts.ShowdownRestartDelay = cfg.Game.ShowdownRestartDelay
	}

	if cfg.Game.EarlyWinRestartDelay > 0 {
		opts.EarlyWinRestartDelay = cfg.Game.EarlyWinRestartDelay
	}

	opts.BotFillDelay = cfg.Lobby.BotFillDelay
	return opts
}

func setInt(dst *int, val int) {
	if val > 0 {
		*dst = val
	}
}
