package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/hexfront/internal/world"
)

// Move failures. State is never mutated when one of these is returned.
var (
	ErrUnknownUnit  = errors.New("engine: no such unit")
	ErrNotReachable = errors.New("engine: target not reachable")
	ErrNoMoves      = errors.New("engine: unit has no movement points")
	ErrWrongSide    = errors.New("engine: not this side's turn")
	ErrNoUnits      = errors.New("engine: side has no units")
	ErrTurnSpent    = errors.New("engine: no unit has movement points left")
	ErrOccupied     = errors.New("engine: cell already occupied")
)

// Event is a notable occurrence during a game, kept for the battle log.
type Event struct {
	Turn        int    `json:"turn"`
	Category    string `json:"category"` // "move", "combat", "turn"
	Description string `json:"description"`
}

// Game owns the authoritative unit roster and turn state. All mutation goes
// through it; the planner and resolver are pure functions over the state it
// hands them. Not safe for concurrent use.
type Game struct {
	worldMap *world.Map
	rules    Rules
	rng      *rand.Rand // damage rolls; nil for fully deterministic combat

	units      []*Unit // roster in creation order
	byID       map[UnitID]*Unit
	nextID     UnitID
	activeIdx  int
	activeSide Side
	turn       int

	events []Event
}

// NewGame creates a game over the given map. rng seeds combat damage rolls
// and may be nil.
func NewGame(m *world.Map, rules Rules, rng *rand.Rand) *Game {
	return &Game{
		worldMap:   m,
		rules:      rules,
		rng:        rng,
		byID:       make(map[UnitID]*Unit),
		nextID:     1,
		activeSide: SidePlayer,
		turn:       1,
	}
}

// AddUnit places a new unit on the map with a full movement budget.
func (g *Game) AddUnit(name string, side Side, pos world.Coord, strength, maxMoves int) (*Unit, error) {
	cell, err := g.worldMap.CellAt(pos)
	if err != nil {
		return nil, err
	}
	if cell.Terrain.Impassable() {
		return nil, fmt.Errorf("cannot place %q on %s at (%d,%d)",
			name, cell.Terrain, pos.Col, pos.Row)
	}
	if _, taken := g.unitAt(pos); taken {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOccupied, pos.Col, pos.Row)
	}
	u := NewUnit(g.nextID, name, side, pos, strength, maxMoves)
	g.nextID++
	g.units = append(g.units, u)
	g.byID[u.ID] = u
	return u, nil
}

// MoveResult reports what a successful MoveUnit did: a plain relocation when
// Combat is nil, otherwise the combat that was fought instead.
type MoveResult struct {
	UnitID UnitID
	From   world.Coord
	To     world.Coord
	Cost   int
	Combat *Outcome
}

// Relocated reports whether the unit actually changed cells.
func (r MoveResult) Relocated() bool {
	return r.From != r.To
}

// MoveUnit moves the unit to target, or resolves combat when target holds an
// enemy. The target must be in the unit's reachable set; the unit pays the
// cumulative path cost (clamped at zero on a partial final move). On any
// error the game state is unchanged.
func (g *Game) MoveUnit(id UnitID, target world.Coord) (MoveResult, error) {
	u, ok := g.byID[id]
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %d", ErrUnknownUnit, id)
	}
	if u.Side != g.activeSide {
		return MoveResult{}, fmt.Errorf("%w: %s unit on %s turn", ErrWrongSide, u.Side, g.activeSide)
	}

	steps := Reachable(g.worldMap, u, g.occupancy())
	step, ok := steps[target]
	if !ok {
		if u.Moves < 1 {
			return MoveResult{}, fmt.Errorf("%w: %q", ErrNoMoves, u.Name)
		}
		return MoveResult{}, fmt.Errorf("%w: (%d,%d)", ErrNotReachable, target.Col, target.Row)
	}

	if step.Attack {
		defender, _ := g.unitAt(target)
		return g.fight(u, defender, step)
	}

	from := u.Pos
	u.Pos = target
	u.spend(step.Cost)
	g.record("move", "%s moved (%d,%d) -> (%d,%d), cost %d",
		u.Name, from.Col, from.Row, target.Col, target.Row, step.Cost)
	return MoveResult{UnitID: id, From: from, To: target, Cost: step.Cost}, nil
}

// fight resolves an attack move and applies the outcome: the loser is removed
// and a winning attacker occupies the defender's cell at no further cost.
func (g *Game) fight(attacker, defender *Unit, step Step) (MoveResult, error) {
	out := Resolve(attacker, defender, g.worldMap, g.occupancy(), g.rules, g.rng)
	from := attacker.Pos
	to := from

	attacker.spend(step.Cost)
	if out.AttackerWon {
		attacker.HP = out.AttackerHP
		g.removeUnit(defender.ID)
		attacker.Pos = defender.Pos
		to = defender.Pos
	} else {
		defender.HP = out.DefenderHP
		g.removeUnit(attacker.ID)
	}

	winner, loser := defender, attacker
	if out.AttackerWon {
		winner, loser = attacker, defender
	}
	g.record("combat", "%s (%.1f) attacked %s (%.1f): %s destroyed",
		attacker.Name, out.AttackerEff, defender.Name, out.DefenderEff, loser.Name)
	slog.Debug("combat resolved",
		"attacker", attacker.Name,
		"defender", defender.Name,
		"attacker_eff", out.AttackerEff,
		"defender_eff", out.DefenderEff,
		"winner", winner.Name,
	)
	return MoveResult{UnitID: attacker.ID, From: from, To: to, Cost: step.Cost, Combat: &out}, nil
}

// Pass forfeits a unit's remaining movement points for the turn, skipping it
// until the next refresh.
func (g *Game) Pass(id UnitID) error {
	u, ok := g.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownUnit, id)
	}
	if u.Side != g.activeSide {
		return fmt.Errorf("%w: %s unit on %s turn", ErrWrongSide, u.Side, g.activeSide)
	}
	u.spend(u.Moves)
	return nil
}

// Reachable returns the reachable set for a unit by id.
func (g *Game) Reachable(id UnitID) (map[world.Coord]Step, error) {
	u, ok := g.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, id)
	}
	return Reachable(g.worldMap, u, g.occupancy()), nil
}

// CycleActive advances to the next unit of the active side that still has
// movement points, wrapping around the roster. Returns ErrTurnSpent when
// every unit is exhausted; the caller decides when to end the turn.
func (g *Game) CycleActive() (*Unit, error) {
	if len(g.sideUnits(g.activeSide)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoUnits, g.activeSide)
	}
	n := len(g.units)
	for i := 1; i <= n; i++ {
		idx := (g.activeIdx + i) % n
		u := g.units[idx]
		if u.Side == g.activeSide && !u.Exhausted() {
			g.activeIdx = idx
			return u, nil
		}
	}
	return nil, ErrTurnSpent
}

// EndTurn restores every unit's movement points, advances the turn counter,
// and hands control to the other side.
func (g *Game) EndTurn() {
	for _, u := range g.units {
		u.refresh()
	}
	g.turn++
	g.activeSide = g.activeSide.Other()
	g.activeIdx = 0
	g.record("turn", "turn %d begins, %s to act", g.turn, g.activeSide)
}

// Snapshot accessors, used by display layers. They never mutate state.

// Turn returns the current turn number, starting at 1.
func (g *Game) Turn() int { return g.turn }

// ActiveSide returns the side whose units may currently act.
func (g *Game) ActiveSide() Side { return g.activeSide }

// Map returns the (immutable) terrain map.
func (g *Game) Map() *world.Map { return g.worldMap }

// ActiveUnit returns the unit the cursor is on, or nil for an empty roster.
func (g *Game) ActiveUnit() *Unit {
	if len(g.units) == 0 {
		return nil
	}
	if g.activeIdx >= len(g.units) {
		g.activeIdx = 0
	}
	return g.units[g.activeIdx]
}

// Unit returns the unit with the given id.
func (g *Game) Unit(id UnitID) (*Unit, bool) {
	u, ok := g.byID[id]
	return u, ok
}

// Units returns the roster in creation order.
func (g *Game) Units() []*Unit {
	return append([]*Unit(nil), g.units...)
}

// UnitAt returns the unit occupying a coordinate, if any.
func (g *Game) UnitAt(pos world.Coord) (*Unit, bool) {
	return g.unitAt(pos)
}

// Events returns everything recorded since the last call and clears the
// internal buffer.
func (g *Game) Events() []Event {
	ev := g.events
	g.events = nil
	return ev
}

func (g *Game) unitAt(pos world.Coord) (*Unit, bool) {
	for _, u := range g.units {
		if u.Pos == pos {
			return u, true
		}
	}
	return nil, false
}

// occupancy builds the coordinate index handed to the planner and resolver.
func (g *Game) occupancy() map[world.Coord]*Unit {
	occ := make(map[world.Coord]*Unit, len(g.units))
	for _, u := range g.units {
		occ[u.Pos] = u
	}
	return occ
}

func (g *Game) sideUnits(side Side) []*Unit {
	var result []*Unit
	for _, u := range g.units {
		if u.Side == side {
			result = append(result, u)
		}
	}
	return result
}

// SideUnits returns the units belonging to one side, in creation order.
func (g *Game) SideUnits(side Side) []*Unit {
	return g.sideUnits(side)
}

func (g *Game) removeUnit(id UnitID) {
	delete(g.byID, id)
	for i, u := range g.units {
		if u.ID == id {
			g.units = append(g.units[:i], g.units[i+1:]...)
			if g.activeIdx > i {
				g.activeIdx--
			}
			return
		}
	}
}

func (g *Game) record(category, format string, args ...any) {
	g.events = append(g.events, Event{
		Turn:        g.turn,
		Category:    category,
		Description: fmt.Sprintf(format, args...),
	})
}
