package world

import "fmt"

// Terrain types for hex tiles. The set mirrors the categories found in the
// map file format, with elevation folded in (hills and mountains override the
// base terrain of their tile).
type Terrain uint8

const (
	TerrainGrassland Terrain = iota
	TerrainPlain
	TerrainDesert
	TerrainTundra
	TerrainSnow
	TerrainHill
	TerrainMountain
	TerrainWater // coast and ocean
)

// terrainCount is the number of valid Terrain values.
const terrainCount = 8

// terrainStats is the closed per-variant rule table: movement cost to enter,
// whether the terrain can be entered at all, and the defensive combat bonus
// granted to a unit standing on it.
var terrainStats = [terrainCount]struct {
	name         string
	moveCost     int
	impassable   bool
	defenseBonus float64
}{
	TerrainGrassland: {"Grassland", 1, false, 0},
	TerrainPlain:     {"Plain", 1, false, 0},
	TerrainDesert:    {"Desert", 1, false, 0},
	TerrainTundra:    {"Tundra", 1, false, 0},
	TerrainSnow:      {"Snow", 1, false, 0},
	TerrainHill:      {"Hill", 2, false, 0.25},
	TerrainMountain:  {"Mountain", 0, true, 0},
	TerrainWater:     {"Water", 0, true, 0},
}

// Valid reports whether t is a known terrain value.
func (t Terrain) Valid() bool {
	return t < terrainCount
}

// Name returns the display name of the terrain.
func (t Terrain) Name() string {
	if !t.Valid() {
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
	return terrainStats[t].name
}

// MoveCost returns the movement points a unit spends entering a cell of this
// terrain. Zero for impassable and unknown terrain.
func (t Terrain) MoveCost() int {
	if !t.Valid() {
		return 0
	}
	return terrainStats[t].moveCost
}

// Impassable reports whether units can never enter this terrain. Unknown
// terrain values are impassable.
func (t Terrain) Impassable() bool {
	if !t.Valid() {
		return true
	}
	return terrainStats[t].impassable
}

// DefenseBonus returns the fractional combat bonus granted to a defender
// standing on this terrain.
func (t Terrain) DefenseBonus() float64 {
	if !t.Valid() {
		return 0
	}
	return terrainStats[t].defenseBonus
}

func (t Terrain) String() string {
	return t.Name()
}
