package world

import "fmt"

// Cell is a single tile of the map: its terrain plus the river flags carried
// over from the map file. Cells are immutable once the map is built.
type Cell struct {
	Terrain    Terrain
	RiverFlags uint8
}

// BoundsError reports a coordinate outside the map.
type BoundsError struct {
	Coord         Coord
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("coordinate (%d,%d) outside %dx%d map",
		e.Coord.Col, e.Coord.Row, e.Width, e.Height)
}

// Map is a fixed-size rectangular hex grid. The top-left corner is (0, 0);
// cells are stored row-major. A Map is immutable after construction and safe
// to share read-only.
type Map struct {
	Width  int
	Height int
	Name   string
	cells  []Cell // len == Width*Height
}

// NewMap builds a map from row-major cell data. The cell count must match
// width*height exactly.
func NewMap(width, height int, cells []Cell) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map dimensions %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("map data has %d cells, want %d (%dx%d)",
			len(cells), width*height, width, height)
	}
	return &Map{Width: width, Height: height, cells: cells}, nil
}

// OpenMap creates a map filled with grassland. Useful for testing.
func OpenMap(width, height int) *Map {
	m, err := NewMap(width, height, make([]Cell, width*height))
	if err != nil {
		panic(err) // only reachable with non-positive dimensions
	}
	return m
}

// InBounds reports whether the coordinate lies on the map.
func (m *Map) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < m.Width && c.Row < m.Height
}

// CellAt returns the cell at the given coordinate, or a BoundsError.
func (m *Map) CellAt(c Coord) (Cell, error) {
	if !m.InBounds(c) {
		return Cell{}, &BoundsError{Coord: c, Width: m.Width, Height: m.Height}
	}
	return m.cells[c.Row*m.Width+c.Col], nil
}

// TerrainAt returns the terrain at the coordinate, or a BoundsError.
func (m *Map) TerrainAt(c Coord) (Terrain, error) {
	cell, err := m.CellAt(c)
	if err != nil {
		return 0, err
	}
	return cell.Terrain, nil
}

// Neighbors returns the in-bounds coordinates adjacent to c. Interior cells
// have exactly six; edge cells fewer. Out-of-bounds neighbors are omitted,
// never wrapped.
func (m *Map) Neighbors(c Coord) []Coord {
	result := make([]Coord, 0, 6)
	for _, n := range c.AdjacentCoords() {
		if m.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// CellCount returns the total number of cells.
func (m *Map) CellCount() int {
	return len(m.cells)
}

// Each calls fn for every cell in row-major order.
func (m *Map) Each(fn func(Coord, Cell)) {
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			fn(Coord{Col: col, Row: row}, m.cells[row*m.Width+col])
		}
	}
}

// TerrainCounts returns a histogram of terrain types on the map.
func (m *Map) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, cell := range m.cells {
		counts[cell.Terrain]++
	}
	return counts
}

// FirstPassable returns the first coordinate, scanning row-major, whose
// terrain a unit can enter. The boolean is false for a map with no passable
// cell.
func (m *Map) FirstPassable() (Coord, bool) {
	for i, cell := range m.cells {
		if !cell.Terrain.Impassable() {
			return Coord{Col: i % m.Width, Row: i / m.Width}, true
		}
	}
	return Coord{}, false
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, %d cells)", m.Width, m.Height, m.CellCount())
}
