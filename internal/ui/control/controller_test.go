package control

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/states"
	"github.com/mitchelldurbincs/GraphChase/internal/testutil"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/anim"
)

func newController(t *testing.T, n, player int, enemies ...int) (*Controller, *game.Engine, *anim.Animator) {
	t.Helper()
	g := testutil.LineBoard(n)
	coords := make([]core.Coordinate, 0, len(enemies))
	for _, x := range enemies {
		coords = append(coords, core.NewCoordinate(x, 0))
	}
	testutil.PlaceUnits(t, g, core.NewCoordinate(player, 0), coords...)

	cfg := game.DefaultGameConfig(testutil.NopLogger())
	cfg.Board = g
	cfg.Rng = testutil.NewTestRNG(1)
	engine, err := game.NewGameEngine(context.Background(), cfg)
	require.NoError(t, err)

	animator := anim.New(anim.Config{MoveFrames: 2, StaggerFrames: 1})
	engine.EventBus().Subscribe(animator)
	return NewController(engine, animator, testutil.NopLogger()), engine, animator
}

func drain(a *anim.Animator) {
	for a.Busy() {
		a.Update()
	}
}

func TestCommandKindString(t *testing.T) {
	assert.Equal(t, "move", CommandMove.String())
	assert.Equal(t, "wait", CommandWait.String())
	assert.Equal(t, "restart", CommandRestart.String())
	assert.Equal(t, "pause", CommandPause.String())
	assert.Equal(t, "unknown", CommandKind(42).String())
}

func TestController_WaitThenAnimating(t *testing.T) {
	ctrl, engine, animator := newController(t, 5, 0, 4)
	ctx := context.Background()

	msg, err := ctrl.Submit(ctx, Command{Kind: CommandWait})
	require.NoError(t, err)
	assert.Equal(t, "Turn 1: waited, 1 enemies moved", msg)
	assert.True(t, ctrl.Busy())

	_, err = ctrl.Submit(ctx, Command{Kind: CommandWait})
	assert.ErrorIs(t, err, ErrAnimating)
	assert.Equal(t, 1, engine.Turn())

	drain(animator)
	assert.False(t, ctrl.Busy())

	_, err = ctrl.Submit(ctx, Command{Kind: CommandWait})
	require.NoError(t, err)
	assert.Equal(t, 2, engine.Turn())
}

func TestController_IllegalMove(t *testing.T) {
	ctrl, engine, _ := newController(t, 5, 0, 4)
	g := engine.Graph()

	edge := core.NewEdge(testutil.MustLookup(t, g, 0, 0), testutil.MustLookup(t, g, 2, 0))
	_, err := ctrl.Submit(context.Background(), Command{Kind: CommandMove, Edge: edge})
	assert.ErrorIs(t, err, core.ErrIllegalMove)
	assert.Equal(t, 0, engine.Turn())
	assert.False(t, ctrl.Busy())
}

func TestController_PauseToggle(t *testing.T) {
	ctrl, engine, _ := newController(t, 5, 0, 4)
	ctx := context.Background()

	msg, err := ctrl.Submit(ctx, Command{Kind: CommandPause})
	require.NoError(t, err)
	assert.Equal(t, "Paused", msg)
	assert.Equal(t, states.PhasePaused, engine.Phase())
	assert.True(t, ctrl.Busy())

	_, err = ctrl.Submit(ctx, Command{Kind: CommandWait})
	assert.ErrorIs(t, err, core.ErrTurnBusy)

	msg, err = ctrl.Submit(ctx, Command{Kind: CommandPause})
	require.NoError(t, err)
	assert.Equal(t, "Resumed", msg)
	assert.Equal(t, states.PhaseAwaitingInput, engine.Phase())
}

func TestController_CaptureAndRestart(t *testing.T) {
	ctrl, engine, animator := newController(t, 2, 0, 1)
	ctx := context.Background()

	_, err := ctrl.Submit(ctx, Command{Kind: CommandRestart})
	assert.ErrorIs(t, err, game.ErrNotFinished)

	edge := core.NewEdge(testutil.MustLookup(t, engine.Graph(), 0, 0), testutil.MustLookup(t, engine.Graph(), 1, 0))
	msg, err := ctrl.Submit(ctx, Command{Kind: CommandMove, Edge: edge})
	require.NoError(t, err)
	assert.Equal(t, "Turn 1: captured an enemy | won", msg)
	assert.True(t, engine.IsGameOver())
	require.Len(t, animator.Ghosts(), 1)

	_, err = ctrl.Submit(ctx, Command{Kind: CommandRestart})
	assert.ErrorIs(t, err, ErrAnimating)

	drain(animator)
	msg, err = ctrl.Submit(ctx, Command{Kind: CommandRestart})
	require.NoError(t, err)
	assert.Equal(t, "New game", msg)
	assert.Equal(t, states.PhaseAwaitingInput, engine.Phase())
	assert.Len(t, engine.Graph().Enemies(), 1)
}

func TestController_PauseWhenOver(t *testing.T) {
	ctrl, engine, _ := newController(t, 1, 0)
	require.True(t, engine.IsGameOver())

	_, err := ctrl.Submit(context.Background(), Command{Kind: CommandPause})
	assert.ErrorIs(t, err, core.ErrTurnBusy)
}

type stubEngine struct {
	game.Engine
	busy bool
}

func (s *stubEngine) IsTurnBusy() bool { return s.busy }

type idle struct{}

func (idle) Busy() bool { return false }

func TestController_BusyFollowsEngine(t *testing.T) {
	e := &stubEngine{busy: true}
	ctrl := NewController(e, idle{}, testutil.NopLogger())
	assert.True(t, ctrl.Busy())

	e.busy = false
	assert.False(t, ctrl.Busy())
}

func TestController_UnknownCommand(t *testing.T) {
	ctrl, _, _ := newController(t, 3, 0, 2)
	_, err := ctrl.Submit(context.Background(), Command{Kind: CommandKind(9)})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAnimating))
}
