package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 10, cfg.Game.FansToWin)
	assert.Equal(t, 2, cfg.Game.StartingHandSize)
	assert.Equal(t, 4, cfg.Game.MaxStarsOnBoard)
	assert.Equal(t, 24, cfg.Decks.Main.StarCards)
	assert.Equal(t, 8, cfg.Decks.Main.EventCards)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Game.FansToWin)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9090
logging:
  level: debug
  format: console
game:
  fans_to_win: 5
  max_stars_on_board: 3
decks:
  main_deck:
    star_cards: 12
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Game.FansToWin)
	assert.Equal(t, 3, cfg.Game.MaxStarsOnBoard)
	assert.Equal(t, 12, cfg.Decks.Main.StarCards)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1, cfg.Game.CardsDrawnPerTurn)
	assert.Equal(t, 10, cfg.Decks.Main.PowerCards)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  fans_to_win: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
