package core

import "fmt"

// Role distinguishes the player from the enemies chasing it.
type Role int

const (
	RoleEnemy Role = iota
	RolePlayer
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "Player"
	case RoleEnemy:
		return "Enemy"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// UnitID is assigned by the Graph when the unit is added.
type UnitID int

// Unit is a token standing on exactly one vertex.
type Unit struct {
	ID     UnitID
	Role   Role
	Vertex VertexID

	// CanSkipAction alternates while the unit is adjacent to its target:
	// when set, the next adjacent turn is skipped.
	CanSkipAction bool

	actionCount int
	captured    bool
}

// NewUnit creates a unit at the given vertex. Units start able to skip.
func NewUnit(role Role, at VertexID) *Unit {
	return &Unit{
		Role:          role,
		Vertex:        at,
		CanSkipAction: true,
	}
}

func NewPlayer(at VertexID) *Unit { return NewUnit(RolePlayer, at) }
func NewEnemy(at VertexID) *Unit  { return NewUnit(RoleEnemy, at) }

func (u *Unit) IsPlayer() bool { return u.Role == RolePlayer }

// IncrementActionCount records that the unit took (or skipped) a turn
func (u *Unit) IncrementActionCount() { u.actionCount++ }

func (u *Unit) ActionCount() int { return u.actionCount }

// IsCaptured reports whether the unit has been removed from the board
func (u *Unit) IsCaptured() bool { return u.captured }

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d@%d", u.Role, u.ID, u.Vertex)
}
