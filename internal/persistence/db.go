// Package persistence provides the SQLite battle log: match records, turn
// events, and combat results. It records finished history only; it is not a
// save-game system.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexfront/internal/engine"
)

// DB wraps a SQLite connection for battle log storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path. ":memory:"
// works for tests.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		map_name TEXT NOT NULL,
		map_width INTEGER NOT NULL,
		map_height INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		winner TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS combats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		attacker TEXT NOT NULL,
		defender TEXT NOT NULL,
		attacker_eff REAL NOT NULL,
		defender_eff REAL NOT NULL,
		attacker_won INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_match ON events(match_id, turn);
	CREATE INDEX IF NOT EXISTS idx_combats_match ON combats(match_id, turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Match summarizes one finished game.
type Match struct {
	ID        string `db:"id"`
	Scenario  string `db:"scenario"`
	MapName   string `db:"map_name"`
	MapWidth  int    `db:"map_width"`
	MapHeight int    `db:"map_height"`
	Turns     int    `db:"turns"`
	Winner    string `db:"winner"`
}

// NewMatchID returns a fresh match identifier.
func NewMatchID() string {
	return uuid.NewString()
}

// SaveMatch writes a finished match summary.
func (db *DB) SaveMatch(m Match) error {
	_, err := db.conn.Exec(`INSERT INTO matches
		(id, scenario, map_name, map_width, map_height, turns, winner)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Scenario, m.MapName, m.MapWidth, m.MapHeight, m.Turns, m.Winner,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", m.ID, err)
	}
	return nil
}

// SaveEvents appends game events under a match.
func (db *DB) SaveEvents(matchID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (match_id, turn, category, description) VALUES (?, ?, ?, ?)",
			matchID, e.Turn, e.Category, e.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CombatRecord is one resolved combat in the log.
type CombatRecord struct {
	MatchID     string  `db:"match_id"`
	Turn        int     `db:"turn"`
	Attacker    string  `db:"attacker"`
	Defender    string  `db:"defender"`
	AttackerEff float64 `db:"attacker_eff"`
	DefenderEff float64 `db:"defender_eff"`
	AttackerWon bool    `db:"attacker_won"`
}

// SaveCombat appends one combat result.
func (db *DB) SaveCombat(c CombatRecord) error {
	_, err := db.conn.Exec(`INSERT INTO combats
		(match_id, turn, attacker, defender, attacker_eff, defender_eff, attacker_won)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.MatchID, c.Turn, c.Attacker, c.Defender, c.AttackerEff, c.DefenderEff, c.AttackerWon,
	)
	if err != nil {
		return fmt.Errorf("insert combat: %w", err)
	}
	return nil
}

// RecentEvents returns the most recent N events for a match, newest first.
func (db *DB) RecentEvents(matchID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT turn, category, description FROM events WHERE match_id = ? ORDER BY id DESC LIMIT ?",
		matchID, limit,
	)
	return events, err
}

// Combats returns every combat recorded for a match in order.
func (db *DB) Combats(matchID string) ([]CombatRecord, error) {
	var combats []CombatRecord
	err := db.conn.Select(&combats,
		`SELECT match_id, turn, attacker, defender, attacker_eff, defender_eff, attacker_won
		 FROM combats WHERE match_id = ? ORDER BY id`,
		matchID,
	)
	return combats, err
}

// SaveGameLog stores the match summary plus everything the game recorded.
func (db *DB) SaveGameLog(m Match, events []engine.Event) error {
	slog.Info("saving battle log", "match", m.ID, "events", len(events))

	if err := db.SaveMatch(m); err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	if err := db.SaveEvents(m.ID, events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}
