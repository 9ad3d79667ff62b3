package game

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible runs.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"DUNGEONDICE_SEED" envDefault:"0"`

	// PartySize is how many party dice are rolled at the start of a delve.
	PartySize int `env:"DUNGEONDICE_PARTY_SIZE" envDefault:"7"`

	// DungeonDice caps how many dungeon dice a level can roll.
	DungeonDice int `env:"DUNGEONDICE_DUNGEON_DICE" envDefault:"7"`

	// MaxLevel is the deepest level; Regroup offers no descent past it.
	MaxLevel int `env:"DUNGEONDICE_MAX_LEVEL" envDefault:"10"`

	// Delves is how many delves make up a run.
	Delves int `env:"DUNGEONDICE_DELVES" envDefault:"3"`
}

// DefaultConfig returns the standard game configuration.
func DefaultConfig() Config {
	return Config{
		PartySize:   7,
		DungeonDice: 7,
		MaxLevel:    10,
		Delves:      3,
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.PartySize < 1 {
		errs = append(errs, fmt.Errorf("party size must be positive, got %d", c.PartySize))
	}
	if c.DungeonDice < 1 {
		errs = append(errs, fmt.Errorf("dungeon dice must be positive, got %d", c.DungeonDice))
	}
	if c.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("max level must be positive, got %d", c.MaxLevel))
	}
	if c.Delves < 1 {
		errs = append(errs, fmt.Errorf("delves must be positive, got %d", c.Delves))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
