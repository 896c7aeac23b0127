// Package config loads scenario files: the map source, the unit roster, and
// optional combat rule overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexfront/internal/engine"
	"github.com/talgya/hexfront/internal/world"
)

// Scenario describes one playable setup.
type Scenario struct {
	Name  string      `yaml:"name"`
	Map   MapSource   `yaml:"map"`
	Rules *RuleConfig `yaml:"rules,omitempty"`
	Units []UnitSpec  `yaml:"units"`
}

// MapSource selects where the terrain comes from: a map file on disk or the
// procedural generator. Exactly one must be set.
type MapSource struct {
	File     string     `yaml:"file,omitempty"`
	Generate *GenSource `yaml:"generate,omitempty"`
}

// GenSource holds procedural generation parameters.
type GenSource struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
}

// RuleConfig overrides the default combat constants.
type RuleConfig struct {
	FlankingBonus *float64 `yaml:"flanking_bonus,omitempty"`
	FlankingCap   *float64 `yaml:"flanking_cap,omitempty"`
}

// UnitSpec places one unit at game start.
type UnitSpec struct {
	Name     string `yaml:"name"`
	Side     string `yaml:"side"` // "player" or "enemy"
	Col      int    `yaml:"col"`
	Row      int    `yaml:"row"`
	Strength int    `yaml:"strength"`
	Moves    int    `yaml:"moves"`
}

// EngineSide maps the YAML side name to the engine's type.
func (u UnitSpec) EngineSide() (engine.Side, error) {
	switch u.Side {
	case "player":
		return engine.SidePlayer, nil
	case "enemy":
		return engine.SideEnemy, nil
	}
	return 0, fmt.Errorf("unit %q: unknown side %q", u.Name, u.Side)
}

// Pos returns the unit's starting coordinate.
func (u UnitSpec) Pos() world.Coord {
	return world.Coord{Col: u.Col, Row: u.Row}
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates scenario YAML.
func Parse(b []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	hasFile := s.Map.File != ""
	hasGen := s.Map.Generate != nil
	if hasFile == hasGen {
		return fmt.Errorf("scenario %q: map needs exactly one of file or generate", s.Name)
	}
	if hasGen && (s.Map.Generate.Width <= 0 || s.Map.Generate.Height <= 0) {
		return fmt.Errorf("scenario %q: generated map needs positive dimensions", s.Name)
	}
	if len(s.Units) == 0 {
		return fmt.Errorf("scenario %q: no units", s.Name)
	}

	seen := make(map[world.Coord]string)
	for _, u := range s.Units {
		if _, err := u.EngineSide(); err != nil {
			return err
		}
		if u.Strength <= 0 {
			return fmt.Errorf("unit %q: strength must be positive", u.Name)
		}
		if u.Moves <= 0 {
			return fmt.Errorf("unit %q: moves must be positive", u.Name)
		}
		pos := u.Pos()
		if prev, dup := seen[pos]; dup {
			return fmt.Errorf("unit %q: position (%d,%d) already taken by %q",
				u.Name, u.Col, u.Row, prev)
		}
		seen[pos] = u.Name
	}
	return nil
}

// EngineRules resolves the scenario's combat constants, falling back to the
// defaults for anything unset.
func (s *Scenario) EngineRules() engine.Rules {
	rules := engine.DefaultRules()
	if s.Rules != nil {
		if s.Rules.FlankingBonus != nil {
			rules.FlankingBonus = *s.Rules.FlankingBonus
		}
		if s.Rules.FlankingCap != nil {
			rules.FlankingCap = *s.Rules.FlankingCap
		}
	}
	return rules
}

// BuildMap materializes the scenario's map: decoded from disk or generated.
func (s *Scenario) BuildMap(decode func(path string) (*world.Map, error)) (*world.Map, error) {
	if s.Map.File != "" {
		return decode(s.Map.File)
	}
	g := s.Map.Generate
	cfg := world.DefaultGenConfig()
	cfg.Width = g.Width
	cfg.Height = g.Height
	cfg.Seed = g.Seed
	return world.Generate(cfg), nil
}
