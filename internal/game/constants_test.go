package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GraphChase/internal/config"
	"github.com/mitchelldurbincs/GraphChase/internal/game/processor"
	"github.com/mitchelldurbincs/GraphChase/internal/testutil"
)

func TestDefaultGameConfig(t *testing.T) {
	cfg := DefaultGameConfig(testutil.NopLogger())

	assert.True(t, cfg.EnemyStartsWithSkip)
	assert.Equal(t, DefaultBoardWidth, cfg.Map.Width)
	assert.Equal(t, DefaultBoardHeight, cfg.Map.Height)
	assert.Equal(t, DefaultEnemyCount, cfg.Map.Enemies)
	assert.Equal(t, processor.DefaultOptions(), cfg.Resolver)
	assert.NoError(t, cfg.Map.Validate())
}

func TestGameConfigFromSettings(t *testing.T) {
	settings := &config.Config{
		Game: config.GameConfig{
			BoardFile:           "maps/line.xml",
			RequireConnected:    true,
			StrictCounts:        true,
			UnreachablePolicy:   "error",
			TargetMode:          "player",
			EnemyStartsWithSkip: false,
			Seed:                7,
		},
		Mapgen: config.MapgenConfig{
			Width: 5, Height: 4, Enemies: 3,
			ExtraEdgeRatio: 0.5, DiagonalRatio: 0.2, MinUnitSpacing: 2,
		},
	}

	cfg, err := GameConfigFromSettings(settings, testutil.NopLogger())
	require.NoError(t, err)

	assert.Equal(t, "maps/line.xml", cfg.BoardFile)
	assert.True(t, cfg.Loader.RequireConnected)
	assert.True(t, cfg.Loader.StrictCounts)
	assert.Equal(t, processor.UnreachableError, cfg.Resolver.Unreachable)
	assert.Equal(t, processor.TargetPlayer, cfg.Resolver.TargetMode)
	assert.False(t, cfg.EnemyStartsWithSkip)
	assert.Equal(t, 5, cfg.Map.Width)
	assert.Equal(t, 4, cfg.Map.Height)
	assert.Equal(t, 3, cfg.Map.Enemies)
	assert.Equal(t, 0.5, cfg.Map.ExtraEdgeRatio)
	assert.Equal(t, 0.2, cfg.Map.DiagonalRatio)
	assert.Equal(t, 2, cfg.Map.MinUnitSpacing)
	require.NotNil(t, cfg.Rng)

	// Same seed, same sequence
	again, err := GameConfigFromSettings(settings, testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, cfg.Rng.Int63(), again.Rng.Int63())

	settings.Game.Seed = 0
	cfg, err = GameConfigFromSettings(settings, testutil.NopLogger())
	require.NoError(t, err)
	assert.Nil(t, cfg.Rng)
}

func TestGameConfigFromSettings_Invalid(t *testing.T) {
	settings := &config.Config{Game: config.GameConfig{TargetMode: "sideways"}}
	_, err := GameConfigFromSettings(settings, testutil.NopLogger())
	assert.ErrorContains(t, err, "game.target_mode")

	settings = &config.Config{Game: config.GameConfig{UnreachablePolicy: "wait"}}
	_, err = GameConfigFromSettings(settings, testutil.NopLogger())
	assert.ErrorContains(t, err, "game.unreachable_policy")
}
