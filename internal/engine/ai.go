package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/talgya/hexfront/internal/world"
)

// Wander moves a unit to a random reachable cell, preferring destinations
// that spend its whole movement budget for the turn. It never initiates an
// attack. Deterministic under a seeded rng.
func Wander(g *Game, id UnitID, rng *rand.Rand) (MoveResult, error) {
	u, ok := g.Unit(id)
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %d", ErrUnknownUnit, id)
	}

	steps, err := g.Reachable(id)
	if err != nil {
		return MoveResult{}, err
	}

	budget := u.Moves
	var exact, any []world.Coord
	for coord, step := range steps {
		if step.Attack {
			continue
		}
		any = append(any, coord)
		if step.Cost == budget {
			exact = append(exact, coord)
		}
	}
	choices := exact
	if len(choices) == 0 {
		choices = any
	}
	if len(choices) == 0 {
		return MoveResult{}, fmt.Errorf("%w: %q has nowhere to go", ErrNotReachable, u.Name)
	}

	// Map iteration order is random; sort before drawing so the same seed
	// always picks the same cell.
	sort.Slice(choices, func(i, j int) bool {
		if choices[i].Col != choices[j].Col {
			return choices[i].Col < choices[j].Col
		}
		return choices[i].Row < choices[j].Row
	})
	target := choices[rng.Intn(len(choices))]
	return g.MoveUnit(id, target)
}
