package world

import "testing"

func TestGenerate_Dimensions(t *testing.T) {
	cfg := SmallTestConfig()
	m := Generate(cfg)
	if m.Width != cfg.Width || m.Height != cfg.Height {
		t.Fatalf("generated %dx%d, want %dx%d", m.Width, m.Height, cfg.Width, cfg.Height)
	}
	if m.CellCount() != cfg.Width*cfg.Height {
		t.Fatalf("cell count %d, want %d", m.CellCount(), cfg.Width*cfg.Height)
	}
}

func TestGenerate_AllTerrainValid(t *testing.T) {
	m := Generate(SmallTestConfig())
	m.Each(func(c Coord, cell Cell) {
		if !cell.Terrain.Valid() {
			t.Fatalf("invalid terrain %d at (%d,%d)", cell.Terrain, c.Col, c.Row)
		}
	})
}

func TestGenerate_DeterministicPerSeed(t *testing.T) {
	cfg := GenConfig{Width: 12, Height: 9, Seed: 7, SeaLevel: 0.3, MountainLvl: 0.8, HillLvl: 0.6}
	a := Generate(cfg)
	b := Generate(cfg)
	a.Each(func(c Coord, cell Cell) {
		other, err := b.CellAt(c)
		if err != nil {
			t.Fatal(err)
		}
		if other != cell {
			t.Fatalf("maps differ at (%d,%d): %v vs %v", c.Col, c.Row, cell, other)
		}
	})
}

func TestDeriveTerrain_Thresholds(t *testing.T) {
	cfg := GenConfig{SeaLevel: 0.3, MountainLvl: 0.8, HillLvl: 0.6}
	tests := []struct {
		name             string
		elev, rain, temp float64
		want             Terrain
	}{
		{"below sea level", 0.1, 0.5, 0.5, TerrainWater},
		{"above mountain level", 0.9, 0.5, 0.5, TerrainMountain},
		{"hills", 0.7, 0.5, 0.5, TerrainHill},
		{"frozen", 0.5, 0.5, 0.1, TerrainSnow},
		{"cold", 0.5, 0.5, 0.25, TerrainTundra},
		{"hot and dry", 0.5, 0.1, 0.9, TerrainDesert},
		{"wet", 0.5, 0.7, 0.5, TerrainGrassland},
		{"temperate", 0.5, 0.4, 0.5, TerrainPlain},
	}
	for _, tt := range tests {
		if got := deriveTerrain(tt.elev, tt.rain, tt.temp, cfg); got != tt.want {
			t.Errorf("%s: deriveTerrain = %v, want %v", tt.name, got, tt.want)
		}
	}
}
