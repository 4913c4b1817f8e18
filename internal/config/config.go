// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"

	"deepfake-game/internal/game"
)

const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

type Config struct {
	DBPath           string        `env:"GAME_DB_PATH" envDefault:"DeepfakeGame.db"`
	ForeignKeys      bool          `env:"GAME_FOREIGN_KEYS" envDefault:"true"`
	PasswordHasher   string        `env:"GAME_PASSWORD_HASHER" envDefault:"sha256"`
	BcryptCost       int           `env:"GAME_BCRYPT_COST" envDefault:"10"`
	LeaderboardLimit int           `env:"GAME_LEADERBOARD_LIMIT" envDefault:"10"`
	Rounds           int           `env:"GAME_ROUNDS" envDefault:"5"`
	OpenTDBURL       string        `env:"OPENTDB_URL" envDefault:"https://opentdb.com/api.php"`
	OpenTDBTimeout   time.Duration `env:"OPENTDB_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.PasswordHasher = strings.ToLower(strings.TrimSpace(cfg.PasswordHasher))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("GAME_DB_PATH must not be empty"))
	}
	switch c.PasswordHasher {
	case HasherSHA256:
	case HasherBcrypt:
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			errs = append(errs, fmt.Errorf("GAME_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
		}
	default:
		errs = append(errs, fmt.Errorf("GAME_PASSWORD_HASHER %q is not one of %s, %s", c.PasswordHasher, HasherSHA256, HasherBcrypt))
	}
	if c.LeaderboardLimit <= 0 {
		errs = append(errs, errors.New("GAME_LEADERBOARD_LIMIT must be positive"))
	}
	if c.Rounds <= 0 {
		errs = append(errs, errors.New("GAME_ROUNDS must be positive"))
	}
	if c.OpenTDBTimeout <= 0 {
		errs = append(errs, errors.New("OPENTDB_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// Hasher returns the password hasher selected by GAME_PASSWORD_HASHER.
func (c Config) Hasher() game.PasswordHasher {
	if c.PasswordHasher == HasherBcrypt {
		return game.BcryptHasher{Cost: c.BcryptCost}
	}
	return game.SHA256Hasher{}
}
