package processor

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/pathfind"
	"github.com/mitchelldurbincs/GraphChase/internal/game/rules"
)

// TargetMode selects which units an enemy measures distances to
type TargetMode string

const (
	// TargetNearestUnit treats every other live unit as a target
	TargetNearestUnit TargetMode = "nearest_unit"
	// TargetPlayer only chases the player
	TargetPlayer TargetMode = "player"
)

// UnreachablePolicy decides what happens to a unit with no path to any target
type UnreachablePolicy string

const (
	// UnreachableSkip makes the unit lose its turn
	UnreachableSkip UnreachablePolicy = "skip"
	// UnreachableError aborts the turn with core.ErrUnreachable
	UnreachableError UnreachablePolicy = "error"
)

// ParseTargetMode validates a configured target mode
func ParseTargetMode(s string) (TargetMode, error) {
	switch m := TargetMode(s); m {
	case TargetNearestUnit, TargetPlayer:
		return m, nil
	case "":
		return TargetNearestUnit, nil
	default:
		return "", fmt.Errorf("unknown target mode %q", s)
	}
}

// ParseUnreachablePolicy validates a configured unreachable policy
func ParseUnreachablePolicy(s string) (UnreachablePolicy, error) {
	switch p := UnreachablePolicy(s); p {
	case UnreachableSkip, UnreachableError:
		return p, nil
	case "":
		return UnreachableSkip, nil
	default:
		return "", fmt.Errorf("unknown unreachable policy %q", s)
	}
}

// Options configures a TurnResolver
type Options struct {
	TargetMode  TargetMode
	Unreachable UnreachablePolicy
}

// DefaultOptions returns the resolver defaults
func DefaultOptions() Options {
	return Options{TargetMode: TargetNearestUnit, Unreachable: UnreachableSkip}
}

// UnitAction records what one enemy did during a turn
type UnitAction struct {
	Unit     *core.Unit
	Decision rules.Decision
	Result   core.MoveResult
	Stranded bool
}

// TurnResult summarizes a resolved turn
type TurnResult struct {
	Turn     int
	Actions  []UnitAction
	Moved    int
	Skipped  int
	Stranded int
	// Captured lists units removed from the board this turn, in capture order
	Captured []*core.Unit
	// PlayerCaptured is set when resolution stopped because the player was taken
	PlayerCaptured bool
}

// TurnResolver moves every enemy one step according to the chase policy
type TurnResolver struct {
	logger    zerolog.Logger
	opts      Options
	publisher events.Publisher
	gameID    string
}

// NewTurnResolver creates a new turn resolver
func NewTurnResolver(logger zerolog.Logger, opts Options) *TurnResolver {
	if opts.TargetMode == "" {
		opts.TargetMode = TargetNearestUnit
	}
	if opts.Unreachable == "" {
		opts.Unreachable = UnreachableSkip
	}
	return &TurnResolver{
		logger: logger.With().Str("component", "TurnResolver").Logger(),
		opts:   opts,
	}
}

// SetEventPublisher sets the publisher used for unit events. gameID is stamped on
// every event.
func (tr *TurnResolver) SetEventPublisher(p events.Publisher, gameID string) {
	tr.publisher = p
	tr.gameID = gameID
}

// Options returns the resolver configuration
func (tr *TurnResolver) Options() Options { return tr.opts }

func (tr *TurnResolver) publish(e events.Event) {
	if tr.publisher != nil {
		tr.publisher.Publish(e)
	}
}

// ResolveTurn lets every enemy on g act once, in board order. Units captured
// earlier in the same turn do not act. Resolution stops as soon as the player is
// captured.
func (tr *TurnResolver) ResolveTurn(ctx context.Context, g *core.Graph, turn int) (TurnResult, error) {
	logger := tr.logger.With().Int("turn", turn).Logger()
	result := TurnResult{Turn: turn}

	for _, unit := range g.Enemies() {
		select {
		case <-ctx.Done():
			logger.Warn().Err(ctx.Err()).Msg("Turn resolution interrupted by context cancellation")
			return result, core.WrapTurnError(turn, "resolve", ctx.Err())
		default:
		}

		if unit.IsCaptured() {
			logger.Debug().Int("unit_id", int(unit.ID)).Msg("Skipping unit captured earlier this turn")
			continue
		}

		action, err := tr.resolveUnit(logger, g, unit, turn)
		if err != nil {
			return result, core.WrapTurnError(turn, "resolve", err)
		}
		unit.IncrementActionCount()
		result.Actions = append(result.Actions, action)

		switch {
		case action.Stranded:
			result.Stranded++
		case action.Decision.Kind == rules.ActionSkip:
			result.Skipped++
		case action.Result.Moved():
			result.Moved++
		}

		if victim := action.Result.Captured; victim != nil {
			result.Captured = append(result.Captured, victim)
			if victim.IsPlayer() {
				result.PlayerCaptured = true
				logger.Info().
					Int("unit_id", int(unit.ID)).
					Stringer("at", g.Coord(unit.Vertex)).
					Msg("Player captured, ending turn resolution")
				break
			}
		}
	}

	logger.Debug().
		Int("moved", result.Moved).
		Int("skipped", result.Skipped).
		Int("stranded", result.Stranded).
		Int("captured", len(result.Captured)).
		Msg("Turn resolved")
	return result, nil
}

// targets returns the vertices unit measures distances to, in board order
func (tr *TurnResolver) targets(g *core.Graph, unit *core.Unit) []core.VertexID {
	if tr.opts.TargetMode == TargetPlayer {
		if p := g.Player(); p != nil {
			return []core.VertexID{p.Vertex}
		}
		return nil
	}
	var out []core.VertexID
	for _, other := range g.Units() {
		if other != unit {
			out = append(out, other.Vertex)
		}
	}
	return out
}

// nearest returns the shortest reachable distance, ties broken by target order
func nearest(res pathfind.Result, targets []core.VertexID) (core.Distance, bool) {
	var found []core.Distance
	for _, t := range targets {
		if d, ok := res.Lookup(t); ok {
			found = append(found, d)
		}
	}
	if len(found) == 0 {
		return core.Distance{}, false
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Length < found[j].Length
	})
	return found[0], true
}

func (tr *TurnResolver) resolveUnit(logger zerolog.Logger, g *core.Graph, unit *core.Unit, turn int) (UnitAction, error) {
	action := UnitAction{Unit: unit}
	targets := tr.targets(g, unit)
	res := pathfind.ShortestPaths(g, unit.Vertex, targets)

	dist, ok := nearest(res, targets)
	if !ok {
		if tr.opts.Unreachable == UnreachableError {
			return action, fmt.Errorf("unit %d at %v: %w", unit.ID, g.Coord(unit.Vertex), core.ErrUnreachable)
		}
		logger.Warn().
			Int("unit_id", int(unit.ID)).
			Stringer("at", g.Coord(unit.Vertex)).
			Int("targets", len(targets)).
			Msg("No target reachable, unit loses its turn")
		action.Stranded = true
		action.Decision = rules.Decision{Kind: rules.ActionStay, To: unit.Vertex, CanSkipAction: unit.CanSkipAction}
		action.Result = core.MoveResult{Unit: unit, From: unit.Vertex, To: unit.Vertex}
		tr.publish(events.NewUnitStrandedEvent(tr.gameID, g, unit, turn))
		return action, nil
	}

	decision := rules.DecideAction(dist, unit.CanSkipAction)
	action.Decision = decision
	unit.CanSkipAction = decision.CanSkipAction

	logger.Debug().
		Int("unit_id", int(unit.ID)).
		Int("distance", dist.Length).
		Stringer("action", decision.Kind).
		Bool("can_skip", unit.CanSkipAction).
		Msg("Unit decided")

	if decision.Kind == rules.ActionSkip {
		action.Result = core.MoveResult{Unit: unit, From: unit.Vertex, To: unit.Vertex}
		tr.publish(events.NewUnitSkippedEvent(tr.gameID, g, unit, turn))
		return action, nil
	}

	moveRes, err := g.MoveUnit(unit, decision.To)
	if err != nil {
		return action, fmt.Errorf("move unit %d: %w", unit.ID, err)
	}
	action.Result = moveRes

	if moveRes.Moved() {
		tr.publish(events.NewUnitMovedEvent(tr.gameID, g, moveRes, turn))
	}
	if moveRes.Captured != nil {
		logger.Info().
			Int("unit_id", int(unit.ID)).
			Int("captured_id", int(moveRes.Captured.ID)).
			Stringer("captured_role", moveRes.Captured.Role).
			Stringer("at", g.Coord(moveRes.To)).
			Msg("Unit captured")
		tr.publish(events.NewUnitKilledEvent(tr.gameID, g, moveRes.Captured, unit, turn))
	}
	return action, nil
}
