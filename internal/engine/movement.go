package engine

import (
	"container/heap"

	"github.com/talgya/hexfront/internal/world"
)

// Step describes one destination in a reachability result.
type Step struct {
	Cost   int  // cumulative movement cost of the cheapest path there
	Attack bool // cell holds an enemy; reaching it is an attack, not a move
}

// Reachable computes every cell the unit could end its move on this turn,
// plus adjacent-by-path enemy cells flagged as attack targets.
//
// The expansion is a budget-bounded Dijkstra: entering a cell costs that
// cell's terrain cost, and a step is legal while at least one movement point
// remains before it, even if the step costs more than the remainder (the
// partial-final-move rule). Impassable terrain always blocks. Cells holding a
// friendly unit can be moved through but not ended on. Cells holding an enemy
// terminate the path and appear as attack targets.
//
// Pure function of its inputs: calling it twice with unchanged state yields
// the same result.
func Reachable(m *world.Map, u *Unit, occupied map[world.Coord]*Unit) map[world.Coord]Step {
	result := make(map[world.Coord]Step)

	// A unit with no points left can still attack an adjacent enemy.
	if u.Moves < 1 {
		for _, n := range m.Neighbors(u.Pos) {
			if o, ok := occupied[n]; ok && o.Side != u.Side {
				cell, err := m.CellAt(n)
				if err != nil {
					continue
				}
				result[n] = Step{Cost: cell.Terrain.MoveCost(), Attack: true}
			}
		}
		return result
	}

	best := map[world.Coord]int{u.Pos: 0}
	attacks := make(map[world.Coord]int)
	pq := &frontier{{coord: u.Pos, cost: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierNode)
		if cost, ok := best[cur.coord]; !ok || cur.cost > cost {
			continue // stale entry
		}
		// Expanding from here requires at least one point left on arrival.
		if u.Moves-cur.cost < 1 {
			continue
		}
		for _, n := range m.Neighbors(cur.coord) {
			cell, err := m.CellAt(n)
			if err != nil {
				continue
			}
			if cell.Terrain.Impassable() {
				continue
			}
			newCost := cur.cost + cell.Terrain.MoveCost()
			if o, ok := occupied[n]; ok && o.Side != u.Side {
				// Enemy cells end the path; keep the cheapest approach.
				if prev, ok := attacks[n]; !ok || newCost < prev {
					attacks[n] = newCost
				}
				continue
			}
			if prev, ok := best[n]; ok && prev <= newCost {
				continue
			}
			best[n] = newCost
			heap.Push(pq, frontierNode{coord: n, cost: newCost})
		}
	}

	for coord, cost := range best {
		if coord == u.Pos {
			continue
		}
		if o, ok := occupied[coord]; ok && o.Side == u.Side {
			continue // pass-through only, cannot end stacked
		}
		result[coord] = Step{Cost: cost}
	}
	for coord, cost := range attacks {
		result[coord] = Step{Cost: cost, Attack: true}
	}
	return result
}

// frontier is a min-heap of pending cells ordered by path cost.
type frontierNode struct {
	coord world.Coord
	cost  int
}

type frontier []frontierNode

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].cost < f[j].cost }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(frontierNode)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
