package states

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStatesCoverEveryPhase(t *testing.T) {
	seen := map[GamePhase]bool{}
	for _, s := range DefaultStates() {
		assert.False(t, seen[s.Phase()], "duplicate state for %s", s.Phase())
		seen[s.Phase()] = true
	}
	for _, p := range allPhases {
		assert.True(t, seen[p], "no state for %s", p)
	}
}

func TestStateValidation(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		prepare func(*GameContext)
		wantErr string
	}{
		{name: "initializing", state: NewInitializingState()},
		{name: "loading", state: NewLoadingState()},
		{name: "resolving", state: NewResolvingState()},
		{name: "reset", state: NewResetState()},
		{name: "awaiting input without board", state: NewAwaitingInputState(), wantErr: "without a board"},
		{
			name:    "awaiting input with board",
			state:   NewAwaitingInputState(),
			prepare: func(c *GameContext) { c.VertexCount, c.UnitCount = 2, 2 },
		},
		{name: "paused before start", state: NewPausedState(), wantErr: "hasn't started"},
		{
			name:    "paused after start",
			state:   NewPausedState(),
			prepare: func(c *GameContext) { c.StartTime = time.Now() },
		},
		{name: "ended without outcome", state: NewEndedState(), wantErr: "requires an outcome"},
		{
			name:    "ended with outcome",
			state:   NewEndedState(),
			prepare: func(c *GameContext) { c.Outcome = "won" },
		},
		{name: "error without cause", state: NewErrorState(), wantErr: "requires an error"},
		{
			name:    "error with cause",
			state:   NewErrorState(),
			prepare: func(c *GameContext) { c.Error = errors.New("bad board") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewGameContext("test", zerolog.Nop())
			if tt.prepare != nil {
				tt.prepare(ctx)
			}
			err := tt.state.Validate(ctx)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.NoError(t, tt.state.Enter(ctx))
				assert.NoError(t, tt.state.Exit(ctx))
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAwaitingInputStartsClockOnce(t *testing.T) {
	state := NewAwaitingInputState()
	ctx := NewGameContext("test", zerolog.Nop())

	require.NoError(t, state.Enter(ctx))
	started := ctx.StartTime
	require.False(t, started.IsZero())

	require.NoError(t, state.Enter(ctx))
	assert.Equal(t, started, ctx.StartTime)
}

func TestPausedStateAccumulatesPauseTime(t *testing.T) {
	state := NewPausedState()
	ctx := NewGameContext("test", zerolog.Nop())
	ctx.StartTime = time.Now()

	require.NoError(t, state.Enter(ctx))
	assert.False(t, ctx.PauseTime.IsZero())
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, state.Exit(ctx))

	assert.True(t, ctx.PauseTime.IsZero())
	assert.GreaterOrEqual(t, ctx.TotalPauseDuration, 10*time.Millisecond)

	// Exit without a matching Enter changes nothing
	before := ctx.TotalPauseDuration
	require.NoError(t, state.Exit(ctx))
	assert.Equal(t, before, ctx.TotalPauseDuration)
}

func TestErrorStateClearsCauseOnExit(t *testing.T) {
	state := NewErrorState()
	ctx := NewGameContext("test", zerolog.Nop())
	ctx.Error = errors.New("bad board")

	require.NoError(t, state.Enter(ctx))
	assert.Error(t, ctx.Error)
	require.NoError(t, state.Exit(ctx))
	assert.NoError(t, ctx.Error)
}

func TestResetStateClearsContext(t *testing.T) {
	state := NewResetState()
	ctx := NewGameContext("keep-me", zerolog.Nop())
	ctx.StartTime = time.Now()
	ctx.PauseTime = time.Now()
	ctx.TotalPauseDuration = 5 * time.Second
	ctx.Outcome = "lost"
	ctx.Error = errors.New("test")
	ctx.Turn = 12
	ctx.VertexCount, ctx.UnitCount = 9, 3

	require.NoError(t, state.Enter(ctx))

	assert.Equal(t, "keep-me", ctx.GameID)
	assert.True(t, ctx.StartTime.IsZero())
	assert.True(t, ctx.PauseTime.IsZero())
	assert.Zero(t, ctx.TotalPauseDuration)
	assert.Empty(t, ctx.Outcome)
	assert.NoError(t, ctx.Error)
	assert.Zero(t, ctx.Turn)
	assert.False(t, ctx.HasBoard())
}
