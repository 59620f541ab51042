// Package storage provides SQLite-based persistence for input replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/games/happyball"
)

// ErrNotFound is returned when a replay id does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Replay is a stored recording plus its metadata. Config is the game
// configuration the recording was played with; replaying under any other
// configuration would diverge.
type Replay struct {
	ID        string
	GameID    string
	Player    string
	CreatedAt time.Time
	Config    config.HappyBallConfig
	happyball.Recording
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			jumps BLOB NOT NULL,
			config BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_replays_player ON replays(player);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.addColumn("replays", "config", "BLOB")
}

// addColumn adds a column to databases created before it existed.
func (s *Store) addColumn(table, column, decl string) error {
	rows, err := s.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a recording and the configuration it was played with
// under a fresh UUID and returns the id.
func (s *Store) SaveReplay(gameID, player string, cfg config.HappyBallConfig, rec happyball.Recording) (string, error) {
	blob, err := EncodeJumps(rec.Jumps)
	if err != nil {
		return "", err
	}
	cfgDoc, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode config: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		"INSERT INTO replays (id, game_id, player, seed, ticks, jumps, config) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, gameID, player, rec.Seed, int64(rec.Ticks), blob, cfgDoc,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	return id, nil
}

// Replay loads a single replay by id.
func (s *Store) Replay(id string) (*Replay, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, player, seed, ticks, jumps, config, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	)

	r, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// RecentReplays returns up to limit replays, newest first.
func (s *Store) RecentReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, seed, ticks, jumps, config, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, err
		}
		replays = append(replays, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// DeleteReplay removes a replay. Deleting a missing id returns ErrNotFound.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountReplays returns the number of stored replays.
func (s *Store) CountReplays() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM replays").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(sc scanner) (*Replay, error) {
	var r Replay
	var ticks int64
	var blob, cfgDoc []byte
	var createdAt any

	err := sc.Scan(&r.ID, &r.GameID, &r.Player, &r.Seed, &ticks, &blob, &cfgDoc, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	jumps, err := DecodeJumps(blob)
	if err != nil {
		return nil, err
	}
	// Rows saved before configs were stored decode to the built-in defaults.
	cfg, err := config.Parse(cfgDoc)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %s has a bad config: %w", r.ID, err)
	}
	r.Config = cfg
	r.Ticks = uint64(ticks)
	r.Jumps = jumps
	r.CreatedAt = parseTime(createdAt)

	return &r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
