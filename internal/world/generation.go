// Map generation using layered simplex noise.
// Generates elevation, moisture, and temperature fields, then derives the same
// terrain set the map-file decoder produces. Deterministic from seed.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width       int
	Height      int
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for water (0.0-1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0-1.0)
	HillLvl     float64 // Elevation threshold for hills (0.0-1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       40,
		Height:      25,
		Seed:        0,
		SeaLevel:    0.30,
		MountainLvl: 0.80,
		HillLvl:     0.62,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:       10,
		Height:      10,
		Seed:        42,
		SeaLevel:    0.25,
		MountainLvl: 0.85,
		HillLvl:     0.65,
	}
}

// Generate creates a complete terrain map from the configuration.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Three noise generators for independent layers.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	cells := make([]Cell, 0, cfg.Width*cfg.Height)
	for row := 0; row < cfg.Height; row++ {
		for col := 0; col < cfg.Width; col++ {
			// Convert hex coords to continuous space for noise sampling.
			// Flat-topped layout: x = col * 3/2, y = sqrt(3) * (row + 0.5*(col&1)).
			x := float64(col) * 1.5
			y := math.Sqrt(3.0) * (float64(row) + 0.5*float64(col&1))

			// Multi-octave noise for natural-looking terrain.
			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
			temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

			// Temperature decreases toward the top and bottom map edges.
			lat := math.Abs(float64(2*row-cfg.Height) / float64(cfg.Height))
			temp = temp*0.6 + (1.0-lat)*0.4

			cells = append(cells, Cell{Terrain: deriveTerrain(elev, rain, temp, cfg)})
		}
	}

	m, err := NewMap(cfg.Width, cfg.Height, cells)
	if err != nil {
		panic(err) // cell count is width*height by construction
	}
	return m
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, rain, temp float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel {
		return TerrainWater
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if elev > cfg.HillLvl {
		return TerrainHill
	}
	if temp < 0.18 {
		return TerrainSnow
	}
	if temp < 0.32 {
		return TerrainTundra
	}
	if rain < 0.25 && temp > 0.5 {
		return TerrainDesert
	}
	if rain > 0.55 {
		return TerrainGrassland
	}
	return TerrainPlain
}

// octaveNoise samples layered noise at decreasing amplitude and increasing
// frequency, normalized back to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	var total, amplitude, maxValue float64
	amplitude = 1.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}
