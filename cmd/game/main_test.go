package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/loader"
	"github.com/mitchelldurbincs/GraphChase/internal/testutil"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    command
		wantErr bool
	}{
		{line: "", want: command{kind: cmdNone}},
		{line: " W ", want: command{kind: cmdWait}},
		{line: "moves", want: command{kind: cmdMoves}},
		{line: "s", want: command{kind: cmdStats}},
		{line: "r", want: command{kind: cmdRestart}},
		{line: "quit", want: command{kind: cmdQuit}},
		{line: "2,3", want: command{kind: cmdMove, to: core.NewCoordinate(2, 3)}},
		{line: " 1 , 0 ", want: command{kind: cmdMove, to: core.NewCoordinate(1, 0)}},
		{line: "1", wantErr: true},
		{line: "a,2", wantErr: true},
		{line: "1,b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newLineGame(t *testing.T, bus *events.EventBus) *game.Engine {
	t.Helper()
	g := testutil.LineBoard(3)
	testutil.PlaceUnits(t, g, core.NewCoordinate(0, 0), core.NewCoordinate(2, 0))

	cfg := game.DefaultGameConfig(testutil.NopLogger())
	cfg.Board = g
	cfg.EventBus = bus
	engine, err := game.NewGameEngine(context.Background(), cfg)
	require.NoError(t, err)
	return engine
}

func TestPlay(t *testing.T) {
	engine := newLineGame(t, nil)

	// The enemy starts with its skip, so after waiting it is adjacent and the
	// player can capture it
	in := strings.NewReader("w\n5,5\nm\n1,0\nq\n")
	var out bytes.Buffer
	play(context.Background(), engine, in, &out, false)

	text := out.String()
	assert.Contains(t, text, "Illegal move")
	assert.Contains(t, text, "Game over: won")
	assert.Contains(t, text, "Outcome: won")
	assert.True(t, engine.IsGameOver())
}

func TestPlayReturnsWhenCancelled(t *testing.T) {
	engine := newLineGame(t, nil)

	// Nothing is ever written, so the reader blocks like an idle terminal
	in, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		defer close(done)
		play(ctx, engine, in, &out, false)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("play did not return after cancellation")
	}
	assert.Contains(t, out.String(), "Outcome:")
	assert.False(t, engine.IsGameOver())
}

func TestSetupLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "trace", want: zerolog.TraceLevel},
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setupLogging(tt.level, "json")
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestTraceWriter(t *testing.T) {
	bus := events.NewEventBus()
	var buf bytes.Buffer
	bus.Subscribe(newTraceWriter(&buf))

	engine := newLineGame(t, bus)
	_, err := engine.Wait(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	// protojson does not promise stable whitespace, so only look for the values
	assert.Contains(t, buf.String(), `"game.started"`)
	assert.Contains(t, buf.String(), `"unit.moved"`)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "{"), line)
	}
}

func TestExportBoard(t *testing.T) {
	g := testutil.LineBoard(3)
	testutil.PlaceUnits(t, g, core.NewCoordinate(0, 0), core.NewCoordinate(2, 0))
	path := t.TempDir() + "/board.yaml"

	require.NoError(t, exportBoard(g, path))

	res, err := loader.NewLoader(testutil.NopLogger(), loader.Options{}).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Graph.VertexCount())
	assert.Equal(t, 2, res.Graph.EdgeCount())
	assert.Len(t, res.Graph.Enemies(), 1)

	assert.Error(t, exportBoard(g, t.TempDir()+"/board.txt"))
}
