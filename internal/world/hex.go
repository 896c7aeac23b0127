// Package world provides the hex grid, terrain, and map data structures.
// Coordinates are flat-topped offset coordinates (odd columns shifted down),
// matching the row-major layout of the map file format. Distance math goes
// through cube coordinates.
package world

// Coord represents a position on the hex grid in offset coordinates.
// (0, 0) is the top-left corner of the map.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Cube is the cube-coordinate form of a hex position, used for distance
// calculations. Invariant: Q + R + S == 0.
type Cube struct {
	Q, R, S int
}

// Cube converts an offset coordinate to cube coordinates (odd-q layout).
func (c Coord) Cube() Cube {
	q := c.Col
	r := c.Row - (c.Col-(c.Col&1))/2
	return Cube{Q: q, R: r, S: -q - r}
}

// Offset converts cube coordinates back to odd-q offset coordinates.
func (cu Cube) Offset() Coord {
	col := cu.Q
	row := cu.R + (cu.Q-(cu.Q&1))/2
	return Coord{Col: col, Row: row}
}

// Direction identifies one of the six neighbors of a flat-topped hex.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

// Neighbor offsets depend on column parity in odd-q layout. Order matches
// the Direction constants.
var (
	evenColOffsets = [6]Coord{
		{0, -1},  // North
		{1, -1},  // NorthEast
		{1, 0},   // SouthEast
		{0, 1},   // South
		{-1, 0},  // SouthWest
		{-1, -1}, // NorthWest
	}
	oddColOffsets = [6]Coord{
		{0, -1}, // North
		{1, 0},  // NorthEast
		{1, 1},  // SouthEast
		{0, 1},  // South
		{-1, 1}, // SouthWest
		{-1, 0}, // NorthWest
	}
)

// Neighbor returns the adjacent coordinate in the given direction.
func (c Coord) Neighbor(d Direction) Coord {
	offsets := &evenColOffsets
	if c.Col&1 == 1 {
		offsets = &oddColOffsets
	}
	o := offsets[d]
	return Coord{Col: c.Col + o.Col, Row: c.Row + o.Row}
}

// AdjacentCoords returns the six adjacent coordinates, including any that
// fall outside a particular map.
func (c Coord) AdjacentCoords() [6]Coord {
	var result [6]Coord
	for d := North; d <= NorthWest; d++ {
		result[d] = c.Neighbor(d)
	}
	return result
}

// Distance returns the hex distance between two coordinates: the minimum
// number of adjacency steps from a to b.
func Distance(a, b Coord) int {
	ac := a.Cube()
	bc := b.Cube()
	return (abs(ac.Q-bc.Q) + abs(ac.R-bc.R) + abs(ac.S-bc.S)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
