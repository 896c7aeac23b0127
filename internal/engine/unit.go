// Package engine implements the turn-based simulation: units, movement
// planning, combat resolution, and the turn controller.
package engine

import (
	"fmt"

	"github.com/talgya/hexfront/internal/world"
)

// UnitID identifies a unit within a game's roster.
type UnitID uint64

// Side identifies who owns a unit.
type Side uint8

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// MaxHP is the hit points a freshly created unit starts with.
const MaxHP = 100

// Unit is a single unit on the map. Units live in the Game's roster; at most
// one unit occupies a coordinate at a time.
type Unit struct {
	ID       UnitID      `json:"id"`
	Name     string      `json:"name"`
	Side     Side        `json:"side"`
	Pos      world.Coord `json:"pos"`
	Strength int         `json:"strength"`
	HP       int         `json:"hp"`

	// Movement points remaining this turn and the per-turn maximum they
	// reset to when a new turn begins.
	Moves    int `json:"moves"`
	MaxMoves int `json:"max_moves"`
}

// NewUnit creates a unit with full hit points and a fresh movement budget.
func NewUnit(id UnitID, name string, side Side, pos world.Coord, strength, maxMoves int) *Unit {
	return &Unit{
		ID:       id,
		Name:     name,
		Side:     side,
		Pos:      pos,
		Strength: strength,
		HP:       MaxHP,
		Moves:    maxMoves,
		MaxMoves: maxMoves,
	}
}

// Exhausted reports whether the unit has spent all movement points this turn.
func (u *Unit) Exhausted() bool {
	return u.Moves <= 0
}

// spend deducts path cost from the unit's movement points. Cost may exceed
// the remainder on the final step of a move; points never go negative.
func (u *Unit) spend(cost int) {
	u.Moves -= cost
	if u.Moves < 0 {
		u.Moves = 0
	}
}

// refresh restores the unit's movement points for a new turn.
func (u *Unit) refresh() {
	u.Moves = u.MaxMoves
}
