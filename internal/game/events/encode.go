package events

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

// Fields flattens the event-specific payload of e into JSON-compatible values.
// Unknown event types only carry the envelope.
func Fields(e Event) map[string]interface{} {
	f := map[string]interface{}{
		"type":      e.Type(),
		"game_id":   e.GameID(),
		"timestamp": e.Timestamp().UTC().Format(time.RFC3339Nano),
		"turn":      e.Turn(),
	}

	coord := func(c core.Coordinate) map[string]interface{} {
		return map[string]interface{}{"x": c.X, "y": c.Y}
	}

	switch ev := e.(type) {
	case *GameStartedEvent:
		f["vertex_count"] = ev.VertexCount
		f["edge_count"] = ev.EdgeCount
		f["unit_count"] = ev.UnitCount
		f["board_width"] = ev.BoardWidth
		f["board_height"] = ev.BoardHeight
	case *GameEndedEvent:
		f["outcome"] = ev.Outcome
		f["duration_ms"] = ev.Duration.Milliseconds()
	case *TurnEndedEvent:
		f["units_moved"] = ev.UnitsMoved
		f["units_skipped"] = ev.UnitsSkipped
		f["process_time_us"] = ev.ProcessedTime.Microseconds()
	case *UnitMovedEvent:
		f["unit_id"] = int(ev.UnitID)
		f["role"] = ev.Role.String()
		f["from"] = coord(ev.From)
		f["to"] = coord(ev.To)
	case *UnitKilledEvent:
		f["unit_id"] = int(ev.UnitID)
		f["role"] = ev.Role.String()
		f["killed_by"] = int(ev.KilledBy)
		f["at"] = coord(ev.At)
	case *UnitSkippedEvent:
		f["unit_id"] = int(ev.UnitID)
		f["at"] = coord(ev.At)
	case *UnitStrandedEvent:
		f["unit_id"] = int(ev.UnitID)
		f["at"] = coord(ev.At)
	case *MoveRejectedEvent:
		f["from_vertex"] = int(ev.From)
		f["to_vertex"] = int(ev.To)
		f["reason"] = ev.Reason
	case *StateTransitionEvent:
		f["from_phase"] = ev.FromPhase
		f["to_phase"] = ev.ToPhase
		f["reason"] = ev.Reason
	}
	return f
}

// ToStruct converts e into a protobuf Struct
func ToStruct(e Event) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(Fields(e))
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", e.Type(), err)
	}
	return s, nil
}

// EncodeJSON renders e as a single-line JSON object
func EncodeJSON(e Event) ([]byte, error) {
	s, err := ToStruct(e)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{UseProtoNames: true}.Marshal(s)
}
