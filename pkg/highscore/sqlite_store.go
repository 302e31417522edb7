package highscore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/config"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the highscore table in a local SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer keeps the file lock simple
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) createTables() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS highscores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			created_unix INTEGER NOT NULL,
			UNIQUE(name, score, created_unix)
		)`)
	return err
}

// Add inserts an entry and prunes rows that fell off the table
func (s *SQLiteStore) Add(e Entry) error {
	if _, err := s.insert(e); err != nil {
		return err
	}
	return s.prune()
}

// Import copies entries, skipping exact duplicates, and returns how many were new
func (s *SQLiteStore) Import(entries []Entry) (int, error) {
	count := 0
	for _, e := range entries {
		added, err := s.insert(e)
		if err != nil {
			return count, err
		}
		if added {
			count++
		}
	}
	return count, s.prune()
}

func (s *SQLiteStore) insert(e Entry) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO highscores (name, score, level, created_unix) VALUES (?, ?, ?, ?)`,
		e.Name, e.Score, e.Level, e.Date.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save highscore: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) prune() error {
	_, err := s.db.Exec(
		`DELETE FROM highscores WHERE id NOT IN (
			SELECT id FROM highscores ORDER BY score DESC, created_unix ASC, id ASC LIMIT ?
		)`,
		config.HighscoreLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to prune highscores: %w", err)
	}
	return nil
}

// Top returns up to n entries, best first
func (s *SQLiteStore) Top(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT name, score, level, created_unix FROM highscores
		 ORDER BY score DESC, created_unix ASC, id ASC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load highscores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var unix int64
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &unix); err != nil {
			return nil, err
		}
		e.Date = time.Unix(0, unix)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
