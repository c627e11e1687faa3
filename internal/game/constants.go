package game

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/config"
	"github.com/mitchelldurbincs/GraphChase/internal/game/loader"
	"github.com/mitchelldurbincs/GraphChase/internal/game/mapgen"
	"github.com/mitchelldurbincs/GraphChase/internal/game/processor"
)

// Defaults used when no configuration file is loaded
const (
	DefaultBoardWidth  = 7
	DefaultBoardHeight = 7
	DefaultEnemyCount  = 2
)

// DefaultGameConfig returns a config for a generated board with default rules.
// Callers building a GameConfig by hand should start from this, since
// EnemyStartsWithSkip defaults to true.
func DefaultGameConfig(logger zerolog.Logger) GameConfig {
	return GameConfig{
		Map:                 mapgen.DefaultMapConfig(DefaultBoardWidth, DefaultBoardHeight, DefaultEnemyCount),
		Resolver:            processor.DefaultOptions(),
		EnemyStartsWithSkip: true,
		Logger:              logger,
	}
}

// GameConfigFromSettings translates the application configuration into an
// engine configuration. A zero seed leaves the RNG unset so the initializer
// seeds from the clock.
func GameConfigFromSettings(c *config.Config, logger zerolog.Logger) (GameConfig, error) {
	mode, err := processor.ParseTargetMode(c.Game.TargetMode)
	if err != nil {
		return GameConfig{}, fmt.Errorf("game.target_mode: %w", err)
	}
	policy, err := processor.ParseUnreachablePolicy(c.Game.UnreachablePolicy)
	if err != nil {
		return GameConfig{}, fmt.Errorf("game.unreachable_policy: %w", err)
	}

	gc := GameConfig{
		BoardFile: c.Game.BoardFile,
		Map: mapgen.MapConfig{
			Width:          c.Mapgen.Width,
			Height:         c.Mapgen.Height,
			Enemies:        c.Mapgen.Enemies,
			ExtraEdgeRatio: c.Mapgen.ExtraEdgeRatio,
			DiagonalRatio:  c.Mapgen.DiagonalRatio,
			MinUnitSpacing: c.Mapgen.MinUnitSpacing,
		},
		Loader: loader.Options{
			StrictCounts:     c.Game.StrictCounts,
			RequireConnected: c.Game.RequireConnected,
		},
		Resolver: processor.Options{
			TargetMode:  mode,
			Unreachable: policy,
		},
		EnemyStartsWithSkip: c.Game.EnemyStartsWithSkip,
		Logger:              logger,
	}
	if c.Game.Seed != 0 {
		gc.Rng = rand.New(rand.NewSource(c.Game.Seed))
	}
	return gc, nil
}
