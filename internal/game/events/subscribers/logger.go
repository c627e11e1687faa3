package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
)

// LoggerSubscriber writes one structured line per event at a fixed level
type LoggerSubscriber struct {
	id     string
	logger zerolog.Logger
	level  zerolog.Level
	// only, when non-nil, restricts logging to the listed event types
	only map[string]struct{}
	// payloads attaches the full JSON encoding of each event
	payloads bool
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, level zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:     id,
		logger: logger.With().Str("subscriber", "event_logger").Logger(),
		level:  level,
	}
}

func (l *LoggerSubscriber) ID() string { return l.id }

// SetEventFilter limits logging to eventTypes. An empty list logs everything.
func (l *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		l.only = nil
		return
	}
	l.only = make(map[string]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		l.only[t] = struct{}{}
	}
}

// SetDevMode toggles the event_data payload
func (l *LoggerSubscriber) SetDevMode(enabled bool) {
	l.payloads = enabled
}

func (l *LoggerSubscriber) InterestedIn(eventType string) bool {
	if l.only == nil {
		return true
	}
	_, ok := l.only[eventType]
	return ok
}

func (l *LoggerSubscriber) HandleEvent(event events.Event) {
	var line *zerolog.Event
	switch l.level {
	case zerolog.DebugLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		line = l.logger.WithLevel(l.level)
	default:
		line = l.logger.Info()
	}

	line = line.
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Int("turn", event.Turn())

	addPayload(line, event)

	if l.payloads {
		if data, err := events.EncodeJSON(event); err == nil {
			line.RawJSON("event_data", data)
		}
	}
	line.Msg("Game event")
}

func addPayload(line *zerolog.Event, event events.Event) {
	switch e := event.(type) {
	case *events.GameStartedEvent:
		line.Int("vertices", e.VertexCount).
			Int("edges", e.EdgeCount).
			Int("units", e.UnitCount).
			Int("board_width", e.BoardWidth).
			Int("board_height", e.BoardHeight)
	case *events.GameEndedEvent:
		line.Str("outcome", e.Outcome).Dur("duration", e.Duration)
	case *events.TurnEndedEvent:
		line.Int("units_moved", e.UnitsMoved).
			Int("units_skipped", e.UnitsSkipped).
			Dur("process_time", e.ProcessedTime)
	case *events.UnitMovedEvent:
		line.Int("unit_id", int(e.UnitID)).
			Stringer("role", e.Role).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y)
	case *events.UnitKilledEvent:
		line.Int("unit_id", int(e.UnitID)).
			Stringer("role", e.Role).
			Int("killed_by", int(e.KilledBy)).
			Stringer("at", e.At)
	case *events.UnitSkippedEvent:
		line.Int("unit_id", int(e.UnitID)).Stringer("at", e.At)
	case *events.UnitStrandedEvent:
		line.Int("unit_id", int(e.UnitID)).Stringer("at", e.At)
	case *events.MoveRejectedEvent:
		line.Int("from_vertex", int(e.From)).
			Int("to_vertex", int(e.To)).
			Str("reason", e.Reason)
	case *events.StateTransitionEvent:
		line.Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}
}
