package highscore

import (
	"database/sql"
	"fmt"

	"github.com/trytobebee/snake_deluxe/pkg/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps the highscore table in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and initializes the schema
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS highscores (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		level INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// Add inserts an entry and prunes rows that fell off the table
func (ps *PostgresStore) Add(e Entry) error {
	_, err := ps.db.Exec(
		`INSERT INTO highscores (name, score, level, created_at) VALUES ($1, $2, $3, $4)`,
		e.Name, e.Score, e.Level, e.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to save highscore: %w", err)
	}

	_, err = ps.db.Exec(
		`DELETE FROM highscores WHERE id NOT IN (
			SELECT id FROM highscores ORDER BY score DESC, created_at ASC, id ASC LIMIT $1
		)`,
		config.HighscoreLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to prune highscores: %w", err)
	}
	return nil
}

// Top returns up to n entries, best first
func (ps *PostgresStore) Top(n int) ([]Entry, error) {
	rows, err := ps.db.Query(
		`SELECT name, score, level, created_at FROM highscores
		 ORDER BY score DESC, created_at ASC, id ASC LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load highscores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the connection pool
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
