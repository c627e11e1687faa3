// Package control decides what a UI command does given the engine and
// animation state. It holds no ebiten types so it can be tested headless.
package control

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/rules"
	"github.com/mitchelldurbincs/GraphChase/internal/game/states"
)

// CommandKind identifies a player command
type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandWait
	CommandRestart
	CommandPause
)

func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandWait:
		return "wait"
	case CommandRestart:
		return "restart"
	case CommandPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Command is one input from the player. Edge is only used by CommandMove.
type Command struct {
	Kind CommandKind
	Edge core.Edge
}

// Engine is the part of *game.Engine the controller drives
type Engine interface {
	Phase() states.GamePhase
	IsGameOver() bool
	IsTurnBusy() bool
	ApplyPlayerMove(ctx context.Context, edge core.Edge) (game.TurnSummary, error)
	Wait(ctx context.Context) (game.TurnSummary, error)
	Restart(ctx context.Context) error
	Pause() error
	Resume() error
}

// Animations reports whether moves are still being shown
type Animations interface {
	Busy() bool
}

// ErrAnimating is returned for turn input while the previous turn is still
// being animated
var ErrAnimating = errors.New("previous turn is still animating")

// Controller applies commands to the engine. Turn input is refused while the
// engine is resolving or the previous turn is still on screen.
type Controller struct {
	engine Engine
	anims  Animations
	logger zerolog.Logger
}

// NewController creates a controller
func NewController(engine Engine, anims Animations, logger zerolog.Logger) *Controller {
	return &Controller{
		engine: engine,
		anims:  anims,
		logger: logger.With().Str("component", "UIController").Logger(),
	}
}

// Busy reports whether turn input would be refused right now
func (c *Controller) Busy() bool {
	return c.engine.IsTurnBusy() || c.anims.Busy()
}

// Submit applies cmd and returns a short status line for the HUD
func (c *Controller) Submit(ctx context.Context, cmd Command) (string, error) {
	switch cmd.Kind {
	case CommandPause:
		return c.togglePause()
	case CommandRestart:
		return c.restart(ctx)
	case CommandMove, CommandWait:
	default:
		return "", fmt.Errorf("unknown command %d", cmd.Kind)
	}

	if c.anims.Busy() {
		return "", ErrAnimating
	}

	var (
		summary game.TurnSummary
		err     error
	)
	if cmd.Kind == CommandMove {
		summary, err = c.engine.ApplyPlayerMove(ctx, cmd.Edge)
	} else {
		summary, err = c.engine.Wait(ctx)
	}
	if err != nil {
		c.logger.Debug().Err(err).Stringer("command", cmd.Kind).Msg("Command refused")
		return "", err
	}
	return describe(summary), nil
}

func (c *Controller) togglePause() (string, error) {
	switch c.engine.Phase() {
	case states.PhasePaused:
		if err := c.engine.Resume(); err != nil {
			return "", err
		}
		return "Resumed", nil
	case states.PhaseAwaitingInput:
		if err := c.engine.Pause(); err != nil {
			return "", err
		}
		return "Paused", nil
	default:
		return "", core.ErrTurnBusy
	}
}

func (c *Controller) restart(ctx context.Context) (string, error) {
	if c.anims.Busy() {
		return "", ErrAnimating
	}
	if err := c.engine.Restart(ctx); err != nil {
		return "", err
	}
	c.logger.Info().Msg("Game restarted from UI")
	return "New game", nil
}

func describe(s game.TurnSummary) string {
	msg := fmt.Sprintf("Turn %d", s.Turn)
	if s.PlayerMove == nil {
		msg += ": waited"
	} else if s.PlayerMove.Captured != nil {
		msg += ": captured an enemy"
	}
	if s.Enemies.Moved > 0 {
		msg += fmt.Sprintf(", %d enemies moved", s.Enemies.Moved)
	}
	if s.Outcome != rules.OutcomeInProgress {
		msg += fmt.Sprintf(" | %s", s.Outcome)
	}
	return msg
}
