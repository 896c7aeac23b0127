package engine

import (
	"reflect"
	"testing"

	"github.com/talgya/hexfront/internal/world"
)

// buildMap constructs a map from terrain rows. Legend: '.' grassland,
// '^' hill, 'A' mountain, '~' water.
func buildMap(t *testing.T, rows []string) *world.Map {
	t.Helper()
	width := len(rows[0])
	cells := make([]world.Cell, 0, width*len(rows))
	for _, rowStr := range rows {
		if len(rowStr) != width {
			t.Fatalf("ragged map row %q", rowStr)
		}
		for _, ch := range rowStr {
			var terrain world.Terrain
			switch ch {
			case '.':
				terrain = world.TerrainGrassland
			case '^':
				terrain = world.TerrainHill
			case 'A':
				terrain = world.TerrainMountain
			case '~':
				terrain = world.TerrainWater
			default:
				t.Fatalf("unknown map char %q", ch)
			}
			cells = append(cells, world.Cell{Terrain: terrain})
		}
	}
	m, err := world.NewMap(width, len(rows), cells)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func testUnit(pos world.Coord, moves int) *Unit {
	return NewUnit(1, "Scout", SidePlayer, pos, 10, moves)
}

func TestReachable_ExactDistanceTwoOnOpenGround(t *testing.T) {
	m := world.OpenMap(10, 10)
	u := testUnit(world.Coord{Col: 5, Row: 5}, 2)

	steps := Reachable(m, u, nil)

	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			c := world.Coord{Col: col, Row: row}
			d := world.Distance(u.Pos, c)
			_, got := steps[c]
			want := d >= 1 && d <= 2
			if got != want {
				t.Errorf("(%d,%d) at distance %d: reachable=%v, want %v", col, row, d, got, want)
			}
			if got && steps[c].Cost != d {
				t.Errorf("(%d,%d): cost %d, want %d", col, row, steps[c].Cost, d)
			}
		}
	}
}

func TestReachable_Idempotent(t *testing.T) {
	m := buildMap(t, []string{
		".....",
		".^^..",
		"..A..",
		".....",
	})
	u := testUnit(world.Coord{Col: 2, Row: 3}, 3)
	occ := map[world.Coord]*Unit{u.Pos: u}

	first := Reachable(m, u, occ)
	second := Reachable(m, u, occ)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("consecutive calls returned different sets")
	}
}

func TestReachable_MonotonicInBudget(t *testing.T) {
	m := buildMap(t, []string{
		".....",
		".^^..",
		"..A..",
		".....",
	})
	for budget := 1; budget < 5; budget++ {
		smaller := Reachable(m, testUnit(world.Coord{Col: 0, Row: 0}, budget-1), nil)
		larger := Reachable(m, testUnit(world.Coord{Col: 0, Row: 0}, budget), nil)
		for coord := range smaller {
			if _, ok := larger[coord]; !ok {
				t.Fatalf("budget %d reaches %v but budget %d does not", budget-1, coord, budget)
			}
		}
	}
}

func TestReachable_PartialFinalMove(t *testing.T) {
	// Unit with 1 movement point next to a hill (cost 2): the step is
	// allowed because at least one point remained before it.
	m := buildMap(t, []string{".^"})
	u := testUnit(world.Coord{Col: 0, Row: 0}, 1)

	steps := Reachable(m, u, nil)
	step, ok := steps[world.Coord{Col: 1, Row: 0}]
	if !ok {
		t.Fatal("hill should be enterable on a partial final move")
	}
	if step.Cost != 2 {
		t.Fatalf("hill entry cost %d, want 2", step.Cost)
	}
}

func TestReachable_PartialMoveDoesNotChain(t *testing.T) {
	// Two hills in a row with 2 points: the first hill eats the whole
	// budget, so the second is out of reach.
	m := buildMap(t, []string{".^^"})
	u := testUnit(world.Coord{Col: 0, Row: 0}, 2)

	steps := Reachable(m, u, nil)
	if _, ok := steps[world.Coord{Col: 1, Row: 0}]; !ok {
		t.Fatal("first hill should be reachable")
	}
	if _, ok := steps[world.Coord{Col: 2, Row: 0}]; ok {
		t.Fatal("second hill should be beyond the budget")
	}
}

func TestReachable_ImpassableBlocksUnconditionally(t *testing.T) {
	m := buildMap(t, []string{".A~."})
	u := testUnit(world.Coord{Col: 0, Row: 0}, 10)

	steps := Reachable(m, u, nil)
	if len(steps) != 0 {
		t.Fatalf("mountain and water should block everything, got %v", steps)
	}
}

func TestReachable_FriendlyPassThroughNotStacking(t *testing.T) {
	m := buildMap(t, []string{"...."})
	u := testUnit(world.Coord{Col: 0, Row: 0}, 3)
	friend := NewUnit(2, "Friend", SidePlayer, world.Coord{Col: 1, Row: 0}, 10, 2)
	occ := map[world.Coord]*Unit{u.Pos: u, friend.Pos: friend}

	steps := Reachable(m, u, occ)
	if _, ok := steps[friend.Pos]; ok {
		t.Fatal("cannot end a move stacked on a friendly unit")
	}
	// Cells beyond the friend remain reachable by passing through.
	if step, ok := steps[world.Coord{Col: 2, Row: 0}]; !ok || step.Cost != 2 {
		t.Fatalf("pass-through failed: %v, %v", step, ok)
	}
	if _, ok := steps[world.Coord{Col: 3, Row: 0}]; !ok {
		t.Fatal("cell two past the friend should be reachable")
	}
}

func TestReachable_EnemyIsAttackTargetAndBlocksPath(t *testing.T) {
	m := buildMap(t, []string{"...."})
	u := testUnit(world.Coord{Col: 0, Row: 0}, 3)
	enemy := NewUnit(2, "Raider", SideEnemy, world.Coord{Col: 1, Row: 0}, 8, 2)
	occ := map[world.Coord]*Unit{u.Pos: u, enemy.Pos: enemy}

	steps := Reachable(m, u, occ)
	step, ok := steps[enemy.Pos]
	if !ok || !step.Attack {
		t.Fatalf("enemy cell should be an attack target, got %v, %v", step, ok)
	}
	// A single-file corridor: nothing past the enemy.
	if _, ok := steps[world.Coord{Col: 2, Row: 0}]; ok {
		t.Fatal("cannot path through an enemy")
	}
}

func TestReachable_ZeroMoves(t *testing.T) {
	m := buildMap(t, []string{"..."})
	u := testUnit(world.Coord{Col: 1, Row: 0}, 0)
	enemy := NewUnit(2, "Raider", SideEnemy, world.Coord{Col: 2, Row: 0}, 8, 2)

	// Without an adjacent enemy the reachable set is empty.
	if steps := Reachable(m, u, map[world.Coord]*Unit{u.Pos: u}); len(steps) != 0 {
		t.Fatalf("exhausted unit should reach nothing, got %v", steps)
	}

	// An adjacent enemy is still attackable.
	occ := map[world.Coord]*Unit{u.Pos: u, enemy.Pos: enemy}
	steps := Reachable(m, u, occ)
	if len(steps) != 1 {
		t.Fatalf("want exactly the attack target, got %v", steps)
	}
	if step := steps[enemy.Pos]; !step.Attack {
		t.Fatal("adjacent enemy should be flagged as attack")
	}
}
