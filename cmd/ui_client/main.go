package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GraphChase/internal/config"
	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GraphChase/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	boardFile := flag.String("board", "", "Board file (.xml or .yaml); empty to use config or generate one")
	seed := flag.Int64("seed", 0, "Map generator seed (0 to use config or the clock)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	cfg := config.Get()
	if *boardFile != "" {
		cfg.Game.BoardFile = *boardFile
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	gameCfg, err := game.GameConfigFromSettings(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game settings")
	}
	gameCfg.EventBus = events.NewEventBusWithLogger(log.Logger)
	if cfg.Development.VerboseLogging {
		eventLogger := subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel)
		eventLogger.SetDevMode(cfg.Development.DevEventPayloads)
		gameCfg.EventBus.Subscribe(eventLogger)
	}

	gameEngine, err := game.NewGameEngine(ctx, gameCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start game")
	}

	uiGame, err := ui.NewUIGame(ctx, gameEngine, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create UI")
	}

	// Colors, layout and animation timing follow the config file while running.
	// Game rules only change on the next start.
	config.WatchConfig(func(err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		next := *config.Get()
		uiGame.QueueConfig(&next)
	})
	if path := config.ConfigFilePath(); path != "" {
		log.Info().Str("path", path).Msg("Watching config file for changes")
	}

	ebiten.SetWindowSize(ui.ScreenWidth(), ui.ScreenHeight())
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(uiGame); err != nil {
		log.Fatal().Err(err).Msg("UI exited with error")
	}
	s := gameEngine.Stats()
	log.Info().
		Int("turns", s.Turn).
		Str("outcome", s.Outcome).
		Int("captured", s.EnemiesCaptured).
		Msg("Goodbye")
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
