package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"chaingang-server/internal/util"
)

// ErrUnknownLedgerDriver is returned when the ledger driver is not postgres, sqlite or memory
var ErrUnknownLedgerDriver = errors.New("unknown ledger driver")

// Ledger driver constants
const (
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
	LedgerMemory   = "memory"
)

// Game configures the rules every room plays with
type Game struct {
	Ante                 int           `yaml:"ante" envconfig:"ante"`
	EarlyRaiseCap        int           `yaml:"earlyRaiseCap" envconfig:"early_raise_cap"`
	FinalRaiseCap        int           `yaml:"finalRaiseCap" envconfig:"final_raise_cap"`
	TurnTimeout          time.Duration `yaml:"turnTimeout" envconfig:"turn_timeout"`
	StartDelay           time.Duration `yaml:"startDelay" envconfig:"start_delay"`
	ShowdownRestartDelay time.Duration `yaml:"showdownRestartDelay" envconfig:"showdown_restart_delay"`
	EarlyWinRestartDelay time.Duration `yaml:"earlyWinRestartDelay" envconfig:"early_win_restart_delay"`
}

// Lobby configures seating
type Lobby struct {
	MaxSeats     int           `yaml:"maxSeats" envconfig:"max_seats"`
	BotStack     int           `yaml:"botStack" envconfig:"bot_stack"`
	BotFillDelay time.Duration `yaml:"botFillDelay" envconfig:"bot_fill_delay"`
}

// Config provides configuration for the Chain Gang Poker server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	StartingChips  int    `yaml:"startingChips" envconfig:"starting_chips"`
	Ledger         struct {
		Driver     string `yaml:"driver" envconfig:"driver"`
		SQLitePath string `yaml:"sqlitePath" envconfig:"sqlite_path"`
	} `yaml:"ledger"`
	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game  Game  `yaml:"game"`
	Lobby Lobby `yaml:"lobby"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	var cfg Config
	cfg.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.MigrationsPath = "./sql"
	cfg.StartingChips = 1000
	cfg.Ledger.Driver = LedgerPostgres
	cfg.Ledger.SQLitePath = "chaingang.db"
	cfg.JWT.PublicKey = ".keys/public.pem"
	cfg.JWT.PrivateKey = ".keys/private.key"
	cfg.Log.Level = "info"
	cfg.Game = Game{
		Ante:                 10,
		EarlyRaiseCap:        50,
		FinalRaiseCap:        100,
		TurnTimeout:          30 * time.Second,
		StartDelay:           3 * time.Second,
		ShowdownRestartDelay: 10 * time.Second,
		EarlyWinRestartDelay: 5 * time.Second,
	}
	cfg.Lobby = Lobby{
		MaxSeats:     5,
		BotStack:     1000,
		BotFillDelay: 20 * time.Second,
	}

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and the environment are used instead.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CGP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cgp", &config); err != nil {
		return err
	}

	switch config.Ledger.Driver {
	case LedgerPostgres, LedgerSQLite, LedgerMemory:
	default:
		return ErrUnknownLedgerDriver
	}

	config.loaded = true
	return nil
}
