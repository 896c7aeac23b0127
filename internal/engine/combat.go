package engine

import (
	"math"
	"math/rand"

	"github.com/talgya/hexfront/internal/world"
)

// Rules holds the tunable combat constants. Terrain defense bonuses live in
// the world terrain table; these cover the attacker side.
type Rules struct {
	// FlankingBonus is the fractional bonus per friendly unit (other than
	// the attacker) adjacent to the defender.
	FlankingBonus float64 `yaml:"flanking_bonus"`
	// FlankingCap limits the total flanking bonus.
	FlankingCap float64 `yaml:"flanking_cap"`
}

// DefaultRules returns the standard combat constants.
func DefaultRules() Rules {
	return Rules{
		FlankingBonus: 0.10,
		FlankingCap:   0.30,
	}
}

// Damage-roll constants from the strength-ratio model: the base damage dealt
// to the weaker unit is scaled up by m and the damage to the stronger scaled
// down by it, where m grows with the strength ratio.
const (
	damageBase   = 40.0
	damageSpread = 30.0
)

// Outcome is the result of one combat resolution. Computed and consumed
// immediately; never stored on units.
type Outcome struct {
	AttackerID   UnitID
	DefenderID   UnitID
	AttackerName string
	DefenderName string
	AttackerEff  float64 // attacker strength after flanking bonus
	DefenderEff  float64 // defender strength after terrain bonus

	TerrainBonus  float64 // defender's terrain bonus fraction
	FlankingBonus float64 // attacker's flanking bonus fraction, capped

	AttackerWon bool
	// Survivor hit points after the fight; the loser is at zero.
	AttackerHP int
	DefenderHP int
}

// Resolve computes combat between attacker and defender. Deterministic for
// identical inputs: the winner depends only on effective strengths, and the
// survivor's damage roll comes from rng alone. A nil rng uses the midpoint of
// the damage spread.
//
// The defender gets the defense bonus of its terrain; the attacker gets a
// flanking bonus per friendly unit adjacent to the defender, capped. Higher
// effective strength wins and ties go to the defender. The loser is destroyed;
// the winner never drops below 1 HP.
func Resolve(attacker, defender *Unit, m *world.Map, occupied map[world.Coord]*Unit, rules Rules, rng *rand.Rand) Outcome {
	terrainBonus := 0.0
	if cell, err := m.CellAt(defender.Pos); err == nil {
		terrainBonus = cell.Terrain.DefenseBonus()
	}

	flanking := 0.0
	for _, n := range m.Neighbors(defender.Pos) {
		o, ok := occupied[n]
		if !ok || o.ID == attacker.ID {
			continue
		}
		if o.Side == attacker.Side {
			flanking += rules.FlankingBonus
		}
	}
	if flanking > rules.FlankingCap {
		flanking = rules.FlankingCap
	}

	attackerEff := float64(attacker.Strength) * (1 + flanking)
	defenderEff := float64(defender.Strength) * (1 + terrainBonus)
	attackerWon := attackerEff > defenderEff

	out := Outcome{
		AttackerID:    attacker.ID,
		DefenderID:    defender.ID,
		AttackerName:  attacker.Name,
		DefenderName:  defender.Name,
		AttackerEff:   attackerEff,
		DefenderEff:   defenderEff,
		TerrainBonus:  terrainBonus,
		FlankingBonus: flanking,
		AttackerWon:   attackerWon,
	}

	// Damage to the survivor scales inversely with how lopsided the fight
	// was: near-even fights leave the winner badly mauled.
	var winner *Unit
	var winnerHP int
	if attackerWon {
		winner = attacker
	} else {
		winner = defender
	}
	winnerHP = winner.HP - survivorDamage(attackerEff, defenderEff, rng)
	if winnerHP < 1 {
		winnerHP = 1
	}
	if attackerWon {
		out.AttackerHP = winnerHP
		out.DefenderHP = 0
	} else {
		out.AttackerHP = 0
		out.DefenderHP = winnerHP
	}
	return out
}

// survivorDamage rolls the damage dealt to the stronger side. With
// r = strong/weak, the scale factor is m = 0.5 + (r+3)^4/512 and the stronger
// unit takes between 40/m and 70/m damage, never less than 1.
func survivorDamage(a, b float64, rng *rand.Rand) int {
	strong, weak := a, b
	if weak > strong {
		strong, weak = weak, strong
	}
	if weak <= 0 {
		weak = 1
	}
	r := strong / weak
	m := 0.5 + math.Pow(r+3, 4)/512.0
	roll := damageSpread / 2
	if rng != nil {
		roll = rng.Float64() * damageSpread
	}
	dmg := int(math.Floor((damageBase + roll) / m))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
