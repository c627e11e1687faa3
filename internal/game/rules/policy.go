package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

// ActionKind is the outcome of the movement policy for one unit and turn.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSkip
	ActionStay
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionSkip:
		return "skip"
	case ActionStay:
		return "stay"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Decision is what a unit does this turn. CanSkipAction is the flag value the
// unit must carry afterwards.
type Decision struct {
	Kind          ActionKind
	To            core.VertexID
	CanSkipAction bool
}

// DecideAction applies the chase policy to the nearest target:
//
//   - adjacent (1 hop): skip if canSkip, clearing the flag; otherwise step onto
//     the target and set the flag, so attacks land every other turn
//   - same vertex (0 hops): stay where the path ends
//   - further away: take the first step along the path, flag unchanged
func DecideAction(nearest core.Distance, canSkip bool) Decision {
	switch nearest.Hops() {
	case 1:
		if canSkip {
			return Decision{Kind: ActionSkip, To: nearest.From(), CanSkipAction: false}
		}
		return Decision{Kind: ActionMove, To: nearest.NextStep(), CanSkipAction: true}
	case 0:
		return Decision{Kind: ActionStay, To: nearest.To(), CanSkipAction: canSkip}
	default:
		return Decision{Kind: ActionMove, To: nearest.NextStep(), CanSkipAction: canSkip}
	}
}
