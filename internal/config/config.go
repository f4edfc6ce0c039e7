// Package config loads server configuration from an optional YAML file and
// STARPOWER_* environment variables, with defaults that yield a playable
// game out of the box.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/starpower/starpower-server-go/internal/catalog"
	"github.com/starpower/starpower-server-go/internal/game"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig        `mapstructure:"server"`
	Logging  LoggingConfig       `mapstructure:"logging"`
	Database DatabaseConfig      `mapstructure:"database"`
	Game     game.Config         `mapstructure:"game"`
	Decks    catalog.Composition `mapstructure:"decks"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig controls logger construction.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// DatabaseConfig holds the optional persistence settings. An empty URL runs
// the server in-memory only.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// Load reads configuration from path. A missing file is not an error: the
// defaults apply, overridable via environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STARPOWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.url", "")

	rules := game.DefaultConfig()
	v.SetDefault("game.starting_hand_size", rules.StartingHandSize)
	v.SetDefault("game.cards_drawn_per_turn", rules.CardsDrawnPerTurn)
	v.SetDefault("game.star_cards_per_turn_limit", rules.StarCardsPerTurnLimit)
	v.SetDefault("game.power_cards_per_turn_limit", rules.PowerCardsPerTurnLimit)
	v.SetDefault("game.event_cards_per_turn_limit", rules.EventCardsPerTurnLimit)
	v.SetDefault("game.fans_to_win", rules.FansToWin)
	v.SetDefault("game.max_stars_on_board", rules.MaxStarsOnBoard)
	v.SetDefault("game.max_hand_size", rules.MaxHandSize)

	comp := catalog.DefaultComposition()
	v.SetDefault("decks.main_deck.star_cards", comp.Main.StarCards)
	v.SetDefault("decks.main_deck.power_cards", comp.Main.PowerCards)
	v.SetDefault("decks.main_deck.steal_cards", comp.Main.StealCards)
	v.SetDefault("decks.main_deck.event_cards", comp.Main.EventCards)
	v.SetDefault("decks.fan_deck.generic_fans", comp.Fan.GenericFans)
	v.SetDefault("decks.fan_deck.generic_superfans", comp.Fan.GenericSuperfans)
	v.SetDefault("decks.fan_deck.tag_fans", comp.Fan.TagFans)
	v.SetDefault("decks.fan_deck.tag_superfans", comp.Fan.TagSuperfans)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Game.FansToWin <= 0 {
		return fmt.Errorf("fans_to_win must be positive, got %d", c.Game.FansToWin)
	}
	if c.Game.MaxStarsOnBoard <= 0 {
		return fmt.Errorf("max_stars_on_board must be positive, got %d", c.Game.MaxStarsOnBoard)
	}
	if c.Game.MaxHandSize < c.Game.StartingHandSize {
		return fmt.Errorf("max_hand_size %d is below starting_hand_size %d", c.Game.MaxHandSize, c.Game.StartingHandSize)
	}
	return nil
}
