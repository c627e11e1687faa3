package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events/subscribers"
)

func base(eventType string, turn int) events.Envelope {
	return events.Envelope{Kind: eventType, Stamp: time.Now(), Game: "test-game-1", Round: turn}
}

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name: "GameStartedEvent",
			event: &events.GameStartedEvent{
				Envelope:    base(events.TypeGameStarted, 0),
				VertexCount: 9,
				EdgeCount:   12,
				UnitCount:   3,
				BoardWidth:  3,
				BoardHeight: 3,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(9), logLine["vertices"])
				assert.Equal(t, float64(12), logLine["edges"])
				assert.Equal(t, float64(3), logLine["units"])
			},
		},
		{
			name:  "TurnStartedEvent",
			event: &events.TurnStartedEvent{Envelope: base(events.TypeTurnStarted, 5)},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["turn"])
			},
		},
		{
			name: "UnitMovedEvent",
			event: &events.UnitMovedEvent{
				Envelope: base(events.TypeUnitMoved, 0),
				UnitID:   2,
				Role:     core.RoleEnemy,
				From:     core.NewCoordinate(1, 1),
				To:       core.NewCoordinate(2, 1),
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(2), logLine["unit_id"])
				assert.Equal(t, "Enemy", logLine["role"])
				assert.Equal(t, float64(1), logLine["from_x"])
				assert.Equal(t, float64(2), logLine["to_x"])
			},
		},
		{
			name: "UnitKilledEvent",
			event: &events.UnitKilledEvent{
				Envelope: base(events.TypeUnitKilled, 0),
				UnitID:   0,
				Role:     core.RolePlayer,
				KilledBy: 1,
				At:       core.NewCoordinate(4, 2),
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Player", logLine["role"])
				assert.Equal(t, float64(1), logLine["killed_by"])
				assert.Equal(t, "(4,2)", logLine["at"])
			},
		},
		{
			name: "MoveRejectedEvent",
			event: &events.MoveRejectedEvent{
				Envelope: base(events.TypeMoveRejected, 0),
				From:     3,
				To:       7,
				Reason:   "edge not found",
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(3), logLine["from_vertex"])
				assert.Equal(t, "edge not found", logLine["reason"])
			},
		},
		{
			name: "GameEndedEvent",
			event: &events.GameEndedEvent{
				Envelope: base(events.TypeGameEnded, 0),
				Outcome:  "won",
				Duration: time.Minute * 5,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "won", logLine["outcome"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(logOutput), &logLine))

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])
			assert.NotContains(t, logLine, "event_data")

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.Nop(), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStarted, events.TypeGameEnded})

	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))
	assert.False(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.False(t, logSub.InterestedIn(events.TypeUnitMoved))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeUnitMoved))
}

func TestLoggerSubscriberOnBus(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewEventBusWithLogger(zerolog.Nop())

	logSub := subscribers.NewLoggerSubscriber("bus-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeTurnEnded})
	bus.Subscribe(logSub)

	bus.Publish(events.NewTurnStartedEvent("g", 1))
	assert.Empty(t, buf.String())

	bus.Publish(events.NewTurnEndedEvent("g", 1, 2, 1, time.Millisecond))
	assert.Contains(t, buf.String(), `"units_moved":2`)
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tc.logLevel)

			logSub := subscribers.NewLoggerSubscriber("level-logger", logger, tc.logLevel)
			logSub.HandleEvent(events.NewTurnStartedEvent("game1", 1))

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("dev-logger", logger, zerolog.InfoLevel)
	logSub.SetDevMode(true)

	event := &events.UnitSkippedEvent{
		Envelope: events.Envelope{Kind: events.TypeUnitSkipped, Stamp: time.Now(), Game: "dev-game", Round: 4},
		UnitID:   3,
		At:       core.NewCoordinate(5, 5),
	}
	logSub.HandleEvent(event)

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"].(map[string]interface{})
	require.True(t, ok, "event_data should be an embedded object")
	assert.Equal(t, events.TypeUnitSkipped, eventData["type"])
	assert.Equal(t, float64(3), eventData["unit_id"])
	assert.Equal(t, float64(4), eventData["turn"])
}
