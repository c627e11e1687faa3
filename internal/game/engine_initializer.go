package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/loader"
	"github.com/mitchelldurbincs/GraphChase/internal/game/mapgen"
	"github.com/mitchelldurbincs/GraphChase/internal/game/processor"
	"github.com/mitchelldurbincs/GraphChase/internal/game/rules"
	"github.com/mitchelldurbincs/GraphChase/internal/game/states"
)

// GameConfig describes where the board comes from and which rules apply.
// Board wins over BoardFile, which wins over Map.
type GameConfig struct {
	Board     *core.Graph
	BoardFile string
	Map       mapgen.MapConfig

	Loader   loader.Options
	Resolver processor.Options

	// EnemyStartsWithSkip is the initial CanSkipAction of every enemy
	EnemyStartsWithSkip bool

	Rng    *rand.Rand
	GameID string
	Logger zerolog.Logger

	// EventBus lets callers subscribe before the game.started event fires.
	// A new bus is created when nil.
	EventBus *events.EventBus
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// NewGameEngine builds a ready-to-play engine from cfg
func NewGameEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Initialize creates the engine, loads the board and moves the state machine
// to AwaitingInput. A board with no enemies ends immediately as Won.
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	engine := ei.createEngine()
	ei.setupEventHandling(engine)

	if err := engine.stateMachine.TransitionTo(states.PhaseLoading, "Engine initialized"); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	board, err := ei.loadBoard()
	if err != nil {
		engine.fail(err, "Board load failed")
		return nil, fmt.Errorf("board load failed: %w", err)
	}

	// Snapshot the starting board so Restart can replay it
	snapshot, err := loader.Encode(board, loader.FormatYAML)
	if err != nil {
		engine.fail(err, "Board snapshot failed")
		return nil, fmt.Errorf("board snapshot failed: %w", err)
	}
	engine.restore = func() (*core.Graph, error) {
		res, err := loader.NewLoader(ei.config.Logger, loader.Options{}).Load(snapshot, loader.FormatYAML)
		if err != nil {
			return nil, err
		}
		return res.Graph, nil
	}

	if err := engine.start(board); err != nil {
		return nil, err
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("vertices", board.VertexCount()).
		Int("edges", board.EdgeCount()).
		Int("enemies", len(board.Enemies())).
		Str("target_mode", string(engine.resolver.Options().TargetMode)).
		Str("unreachable_policy", string(engine.resolver.Options().Unreachable)).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}
}

// loadBoard produces the starting board from the configured source
func (ei *EngineInitializer) loadBoard() (*core.Graph, error) {
	switch {
	case ei.config.Board != nil:
		ei.logger.Debug().Msg("Using provided board")
		if ei.config.Board.Player() == nil {
			return nil, core.ErrNoPlayer
		}
		if err := ei.config.Board.CheckOccupancy(); err != nil {
			return nil, err
		}
		return ei.config.Board, nil

	case ei.config.BoardFile != "":
		res, err := loader.NewLoader(ei.config.Logger, ei.config.Loader).LoadFile(ei.config.BoardFile)
		if err != nil {
			return nil, err
		}
		return res.Graph, nil

	default:
		generator := mapgen.NewGenerator(ei.config.Map, ei.config.Rng)
		return generator.GenerateMap()
	}
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine() *Engine {
	gameContext := states.NewGameContext(ei.config.GameID, ei.logger)
	stateMachine := states.NewStateMachine(gameContext, ei.config.EventBus)

	engine := &Engine{
		gameID:              ei.config.GameID,
		logger:              ei.logger,
		eventBus:            ei.config.EventBus,
		stateMachine:        stateMachine,
		resolver:            processor.NewTurnResolver(ei.logger, ei.config.Resolver),
		winCondition:        rules.NewWinConditionChecker(ei.logger),
		legalMoves:          rules.NewLegalMoveCalculator(),
		enemyStartsWithSkip: ei.config.EnemyStartsWithSkip,
	}
	engine.turnProcessor = NewTurnProcessor(engine)
	return engine
}

// setupEventHandling configures event handling for the engine
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	engine.resolver.SetEventPublisher(engine.eventBus, engine.gameID)
}
