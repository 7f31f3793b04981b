// Package storage provides SQLite-based persistence for the few things
// fidget remembers: whether the user has ever touched a toy, a handful of
// settings, and per-toy interaction counters.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Well-known setting keys.
const (
	KeyInteracted   = "has_interacted"
	KeySound        = "sound_enabled"
	KeyReduceMotion = "reduce_motion"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Interaction is a single recorded touch of a toy.
type Interaction struct {
	ID        int64
	ToyID     string
	SessionID string
	CreatedAt time.Time
}

// InteractionStat contains aggregated interactions for one toy.
type InteractionStat struct {
	ToyID    string
	Count    int
	Sessions int
	LastUsed time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			toy_id TEXT NOT NULL,
			session_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_interactions_toy_id ON interactions(toy_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetSetting stores a value, replacing any previous one.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
	}
	return nil
}

// Setting returns a stored value. ok is false if the key was never set.
func (s *Store) Setting(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query setting %s: %w", key, err)
	}
	return value, true, nil
}

// BoolSetting returns a stored boolean, or def if the key was never set.
func (s *Store) BoolSetting(key string, def bool) (bool, error) {
	v, ok, err := s.Setting(key)
	if err != nil || !ok {
		return def, err
	}
	return v == "1", nil
}

// SetBoolSetting stores a boolean as "1" or "0".
func (s *Store) SetBoolSetting(key string, v bool) error {
	val := "0"
	if v {
		val = "1"
	}
	return s.SetSetting(key, val)
}

// HasInteracted reports whether any toy was ever touched.
func (s *Store) HasInteracted() (bool, error) {
	return s.BoolSetting(KeyInteracted, false)
}

// MarkInteracted records the first interaction. It is idempotent.
func (s *Store) MarkInteracted() error {
	return s.SetBoolSetting(KeyInteracted, true)
}

// RecordInteraction counts one touch of a toy.
// Returns the ID of the inserted record.
func (s *Store) RecordInteraction(toyID, sessionID string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO interactions (toy_id, session_id) VALUES (?, ?)",
		toyID, sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record interaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Interactions returns per-toy aggregates, most used first.
func (s *Store) Interactions() ([]InteractionStat, error) {
	rows, err := s.db.Query(
		`SELECT toy_id, COUNT(*), COUNT(DISTINCT session_id), MAX(created_at)
		 FROM interactions
		 GROUP BY toy_id
		 ORDER BY COUNT(*) DESC, toy_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query interactions: %w", err)
	}
	defer rows.Close()

	var stats []InteractionStat
	for rows.Next() {
		var st InteractionStat
		var lastUsed any
		if err := rows.Scan(&st.ToyID, &st.Count, &st.Sessions, &lastUsed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastUsed = parseTime(lastUsed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// RecentInteractions returns the latest touches across all toys.
func (s *Store) RecentInteractions(limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, toy_id, session_id, created_at
		 FROM interactions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query interactions: %w", err)
	}
	defer rows.Close()

	var entries []Interaction
	for rows.Next() {
		var e Interaction
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ToyID, &e.SessionID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearInteractions deletes all interaction records. Settings are kept.
func (s *Store) ClearInteractions() error {
	if _, err := s.db.Exec("DELETE FROM interactions"); err != nil {
		return fmt.Errorf("storage: cannot clear interactions: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or the SQLite
// text form, which it does for aggregates.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
