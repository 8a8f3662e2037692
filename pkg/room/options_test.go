package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chaingang-server/internal/config"
	"chaingang-server/pkg/game"
)

func TestOptionsFromConfig(t *testing.T) {
	a := assert.New(t)

	opts := OptionsFromConfig(config.DefaultConfig())
	a.Equal(game.DefaultOptions(), opts)

	cfg := config.DefaultConfig()
	cfg.Game.Ante = 25
	cfg.Game.TurnTimeout = 45 * time.Second
	cfg.Game.StartDelay = 0
	cfg.Lobby.MaxSeats = 4
	cfg.Lobby.BotFillDelay = 0

	opts = OptionsFromConfig(cfg)
	a.Equal(25, opts.Ante)
	a.Equal(45*time.Second, opts.TurnTimeout)
	a.Equal(3*time.Second, opts.StartDelay)
	a.Equal(4, opts.MaxSeats)
	a.Equal(time.Duration(0), opts.BotFillDelay)
	a.Equal(1000, opts.BotStack)
}
