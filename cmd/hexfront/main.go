// Command hexfront runs a headless skirmish from a scenario file and records
// the battle log.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexfront/internal/config"
	"github.com/talgya/hexfront/internal/engine"
	"github.com/talgya/hexfront/internal/mapfile"
	"github.com/talgya/hexfront/internal/persistence"
	"github.com/talgya/hexfront/internal/world"
)

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "scenario file")
	dbPath := flag.String("db", "data/battlelog.db", "battle log database")
	turnLimit := flag.Int("turns", 20, "maximum turns to simulate")
	seed := flag.Int64("seed", 1, "random seed for AI and damage rolls")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(*scenarioPath, *dbPath, *turnLimit, *seed); err != nil {
		slog.Error("skirmish failed", "error", err)
		os.Exit(1)
	}
}

func run(scenarioPath, dbPath string, turnLimit int, seed int64) error {
	scenario, err := config.Load(scenarioPath)
	if err != nil {
		return err
	}
	slog.Info("scenario loaded", "name", scenario.Name, "units", len(scenario.Units))

	m, err := scenario.BuildMap(mapfile.DecodeFile)
	if err != nil {
		return err
	}
	slog.Info("map ready",
		"size", fmt.Sprintf("%dx%d", m.Width, m.Height),
		"cells", humanize.Comma(int64(m.CellCount())),
	)

	rng := rand.New(rand.NewSource(seed))
	game := engine.NewGame(m, scenario.EngineRules(), rng)
	for _, spec := range scenario.Units {
		side, err := spec.EngineSide()
		if err != nil {
			return err
		}
		pos, err := spawnPoint(game, spec.Pos())
		if err != nil {
			return fmt.Errorf("place unit %q: %w", spec.Name, err)
		}
		if pos != spec.Pos() {
			slog.Warn("spawn point adjusted", "unit", spec.Name,
				"requested", spec.Pos(), "actual", pos)
		}
		if _, err := game.AddUnit(spec.Name, side, pos, spec.Strength, spec.Moves); err != nil {
			return fmt.Errorf("place unit %q: %w", spec.Name, err)
		}
	}

	if err := os.MkdirAll("data", 0755); err != nil {
		return err
	}
	db, err := persistence.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	matchID := persistence.NewMatchID()
	winner := playOut(game, db, matchID, turnLimit, rng)

	match := persistence.Match{
		ID:        matchID,
		Scenario:  scenario.Name,
		MapName:   m.Name,
		MapWidth:  m.Width,
		MapHeight: m.Height,
		Turns:     game.Turn(),
		Winner:    winner,
	}
	if err := db.SaveGameLog(match, game.Events()); err != nil {
		return err
	}

	fmt.Printf("Match %s: %s after %d turns, %s units remaining.\n",
		matchID, winner, game.Turn(), humanize.Comma(int64(len(game.Units()))))
	return nil
}

// playOut alternates sides until one roster is empty or the turn limit is
// hit. Both sides are AI-driven here; an interactive front end would replace
// the player half.
func playOut(game *engine.Game, db *persistence.DB, matchID string, turnLimit int, rng *rand.Rand) string {
	for game.Turn() <= turnLimit {
		side := game.ActiveSide()
		if len(game.SideUnits(side)) == 0 {
			return side.Other().String()
		}

		for {
			unit, err := game.CycleActive()
			if err != nil {
				break // every unit exhausted or roster empty
			}
			res, err := act(game, unit, rng)
			if err != nil {
				slog.Debug("unit passed", "unit", unit.Name, "reason", err)
				if err := game.Pass(unit.ID); err != nil {
					break
				}
				continue
			}
			if res.Combat != nil {
				out := res.Combat
				rec := persistence.CombatRecord{
					MatchID:     matchID,
					Turn:        game.Turn(),
					Attacker:    out.AttackerName,
					Defender:    out.DefenderName,
					AttackerEff: out.AttackerEff,
					DefenderEff: out.DefenderEff,
					AttackerWon: out.AttackerWon,
				}
				if err := db.SaveCombat(rec); err != nil {
					slog.Error("combat log write failed", "error", err)
				}
			}
		}

		game.EndTurn()
	}
	return "draw"
}

// spawnPoint returns the requested coordinate if a unit can stand there, or
// the closest passable unoccupied cell otherwise.
func spawnPoint(game *engine.Game, want world.Coord) (world.Coord, error) {
	m := game.Map()
	bestDist := -1
	var best world.Coord
	m.Each(func(c world.Coord, cell world.Cell) {
		if cell.Terrain.Impassable() {
			return
		}
		if _, taken := game.UnitAt(c); taken {
			return
		}
		d := world.Distance(want, c)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = c
		}
	})
	if bestDist == -1 {
		return world.Coord{}, fmt.Errorf("no free passable cell on the map")
	}
	return best, nil
}

// act picks one action for a unit: attack the cheapest adjacent enemy if any,
// otherwise wander.
func act(game *engine.Game, unit *engine.Unit, rng *rand.Rand) (engine.MoveResult, error) {
	steps, err := game.Reachable(unit.ID)
	if err != nil {
		return engine.MoveResult{}, err
	}
	bestCost := -1
	var bestTarget world.Coord
	for coord, step := range steps {
		if !step.Attack {
			continue
		}
		// Tie-break on coordinates so a given seed replays identically.
		if bestCost == -1 || step.Cost < bestCost ||
			(step.Cost == bestCost && (coord.Col < bestTarget.Col ||
				(coord.Col == bestTarget.Col && coord.Row < bestTarget.Row))) {
			bestCost = step.Cost
			bestTarget = coord
		}
	}
	if bestCost >= 0 {
		return game.MoveUnit(unit.ID, bestTarget)
	}
	return engine.Wander(game, unit.ID, rng)
}
